package logger_test

import (
	"bytes"
	"io"
	"log"
	"regexp"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

var (
	logLevelRegexp = regexp.MustCompile(`^\[[A-Z]+\]`)
	msgRegexp      = regexp.MustCompile(`'(.*)'`)
)

func newTestLogger(w io.Writer) *log.Logger {
	return log.New(w, "", 0)
}

func TestNewLogLevel(t *testing.T) {
	for _, tc := range []struct {
		val      string
		expected logger.LogLevel
	}{
		{"debug", logger.LogLevelDebug},
		{"INFO", logger.LogLevelInfo},
		{"Warn", logger.LogLevelWarn},
		{"ERROR", logger.LogLevelError},
		{"FATAL", logger.LogLevelFatal},
		{"LOUD", logger.LogLevelUnk},
	} {
		t.Run(tc.val, func(t *testing.T) {
			require.Equal(t, tc.expected, logger.NewLogLevel(tc.val))
		})
	}
}

func TestSwitchbackLoggerLevels(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)), logger.WithLevel(logger.LogLevelWarn))

	// Act
	l.Debug("quiet", nil)
	l.Info("quiet", nil)

	// Assert
	require.Zero(t, b.Len())

	// Act
	l.Warn("loud", nil)

	// Assert
	line := stripColor(b.String())
	require.Equal(t, "[WARN]", logLevelRegexp.FindString(line))
	require.Equal(t, "loud", msgRegexp.FindStringSubmatch(line)[1])
	require.Contains(t, line, "logger/logger_test.go")
	b.Reset()

	// Act
	l.Error("with context", &logger.LogContext{Path: "/admin"})

	// Assert
	line = stripColor(b.String())
	require.Equal(t, "[ERROR]", logLevelRegexp.FindString(line))
	require.Contains(t, line, `log_context: {"path":"/admin"}`)
}

func TestSwitchbackLoggerCaller(t *testing.T) {
	// Arrange
	b := new(bytes.Buffer)
	l := logger.New(logger.WithLogger(newTestLogger(b)))

	// Act
	l.Info("from elsewhere", &logger.LogContext{Caller: "worker/pool.go:12"})

	// Assert
	require.Contains(t, stripColor(b.String()), "worker/pool.go:12 'from elsewhere'")
}

func TestSwitchbackLoggerAddSkip(t *testing.T) {
	// Arrange
	l := logger.New()

	// Act
	sl := l.AddSkip(3)

	// Assert
	require.Equal(t, 0, l.Skip())
	require.Equal(t, 3, sl.Skip())
}

func TestNewLoggerWithoutDSN(t *testing.T) {
	// Act
	l := logger.NewLogger("", logger.WithLevel(logger.LogLevelDebug))

	// Assert
	require.IsType(t, &logger.SwitchbackLogger{}, l)
	require.Equal(t, logger.LogLevelDebug, l.LogLevel())
}

var colorRegexp = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func stripColor(s string) string { return colorRegexp.ReplaceAllString(s, "") }
