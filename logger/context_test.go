package logger_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/switchback/logger"
)

func TestLogContextMarshalText(t *testing.T) {
	// Arrange
	lc := logger.LogContext{}

	// Act
	b, err := lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, []byte("{}"), b)

	// Arrange
	lc = logger.LogContext{Data: map[string]any{"test": "data"}, Caller: "ignored.go:1"}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"data":{"test":"data"}}`, string(b))

	// Arrange
	lc = logger.LogContext{Error: errors.New("test"), Path: "/admin", Route: "admin"}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	require.Equal(t, `{"error":"test","path":"/admin","route":"admin"}`, string(b))

	// Arrange
	form := url.Values{}
	form.Set("q", "shoes")
	r := httptest.NewRequest(http.MethodPost, "https://example.com/search?page=2", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.Header.Set("X-Request-Id", "abc")
	require.Nil(t, r.ParseForm())

	expected := map[string]any{
		"request": map[string]any{
			"method":     http.MethodPost,
			"url":        "https://example.com/search?page=2",
			"request_id": "abc",
			"form": map[string]any{
				"page": []any{"2"},
				"q":    []any{"shoes"},
			},
		},
	}
	lc = logger.LogContext{Request: r}

	// Act
	b, err = lc.MarshalText()

	// Assert
	require.Nil(t, err)
	m := make(map[string]any)
	require.Nil(t, json.Unmarshal(b, &m))
	require.Equal(t, expected, m)
}

func TestLogContextString(t *testing.T) {
	// Arrange
	lc := logger.LogContext{Data: map[string]any{"bad": make(chan int)}}

	// Act
	s := lc.String()

	// Assert
	require.Contains(t, s, `"error"`)
	require.Equal(t, `{"path":"/"}`, logger.LogContext{Path: "/"}.String())
}
