package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/xy-planning-network/switchback"
	"github.com/xy-planning-network/switchback/logger"
)

// LogMaskVal replaces sensitive query values in request logs.
const LogMaskVal = "xxxxxxx"

// masked are query keys whose values never reach logs.
var masked = []string{"password", "token"}

// A LogRequestRecord describes a handled request.
type LogRequestRecord struct {
	BodySize  int    `json:"bodySize"`
	Duration  string `json:"duration"`
	ID        string `json:"id"`
	IPAddr    string `json:"ipAddr"`
	Method    string `json:"method"`
	Partial   bool   `json:"partial"`
	Path      string `json:"path"`
	Referrer  string `json:"referrer"`
	Status    int    `json:"status"`
	URI       string `json:"uri"`
	UserAgent string `json:"userAgent"`
}

// LogRequest logs the request's method, requested URL, resulting status and originating IP address
// using the enclosed implementation of logger.Logger.
//
// LogRequest scrubs the values for the following keys:
// - password
// - token
//
// if logger.Logger is nil, NoopAdapter returns and this middleware does nothing.
func LogRequest(ls logger.Logger) Adapter {
	if ls == nil {
		return NoopAdapter
	}

	return func(h http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			h.ServeHTTP(sw, r)

			rec := NewLogRequestRecord(r)
			rec.BodySize = sw.size
			rec.Duration = time.Since(start).String()
			rec.Status = sw.status

			msg := fmt.Sprintf("%s %s %d", rec.Method, rec.URI, rec.Status)
			if rec.IPAddr != "" {
				msg = rec.IPAddr + " " + msg
			}

			ls.Info(msg, &logger.LogContext{Caller: "middleware/log_request.go", Data: map[string]any{"request": rec}})
		})
	}
}

// NewLogRequestRecord captures the parts of r worth logging.
func NewLogRequestRecord(r *http.Request) LogRequestRecord {
	q := r.URL.Query()
	for _, key := range masked {
		if q.Has(key) {
			q.Set(key, LogMaskVal)
		}
	}

	uri := r.URL.Path
	if query := q.Encode(); query != "" {
		uri += "?" + query
	}

	rec := LogRequestRecord{
		Method:    r.Method,
		Partial:   switchback.IsPartial(r.Context()),
		Path:      r.URL.Path,
		Referrer:  r.Referer(),
		URI:       uri,
		UserAgent: r.UserAgent(),
	}

	rec.ID, _ = r.Context().Value(switchback.RequestIDKey).(string)
	rec.IPAddr, _ = r.Context().Value(switchback.IpAddrKey).(string)

	return rec
}

// statusWriter records the status code and body size written through it.
type statusWriter struct {
	http.ResponseWriter
	status      int
	size        int
	wroteHeader bool
}

func (sw *statusWriter) WriteHeader(code int) {
	if !sw.wroteHeader {
		sw.status = code
		sw.wroteHeader = true
	}

	sw.ResponseWriter.WriteHeader(code)
}

func (sw *statusWriter) Write(b []byte) (int, error) {
	sw.wroteHeader = true
	n, err := sw.ResponseWriter.Write(b)
	sw.size += n
	return n, err
}

// Unwrap exposes the underlying http.ResponseWriter to http.ResponseController.
func (sw *statusWriter) Unwrap() http.ResponseWriter { return sw.ResponseWriter }
