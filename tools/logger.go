package tools

import (
	"io"
	"net/http"
	"os"
	"time"

	"github.com/hashicorp/go-hclog"
)

// NewLogger returns a structured logger with the specified name and level.
// Unknown levels fall back to info. If json is set the log lines are
// written as JSON objects.
func NewLogger(name, level string, json bool, out io.Writer) hclog.Logger {
	// ensure output
	if out == nil {
		out = os.Stderr
	}

	// parse level
	lvl := hclog.LevelFromString(level)
	if lvl == hclog.NoLevel {
		lvl = hclog.Info
	}

	return hclog.New(&hclog.LoggerOptions{
		Name:       name,
		Level:      lvl,
		Output:     out,
		JSONFormat: json,
	})
}

// NewRequestLogger constructs a middleware that logs incoming requests with
// the specified logger.
func NewRequestLogger(logger hclog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// wrap response writer
			wrw := wrapResponseWriter(w)

			// save start
			start := time.Now()

			// call next handler
			next.ServeHTTP(wrw, r)

			// log request
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", wrw.status,
				"duration", time.Since(start).String(),
			)
		})
	}
}

type wrappedResponseWriter struct {
	status int
	http.ResponseWriter
}

func wrapResponseWriter(res http.ResponseWriter) *wrappedResponseWriter {
	// default the status code to 200
	return &wrappedResponseWriter{200, res}
}

func (w *wrappedResponseWriter) Write(data []byte) (int, error) {
	return w.ResponseWriter.Write(data)
}

func (w *wrappedResponseWriter) WriteHeader(statusCode int) {
	// Store the status code
	w.status = statusCode

	// Write the status code onward.
	w.ResponseWriter.WriteHeader(statusCode)
}

func (w *wrappedResponseWriter) Unwrap() http.ResponseWriter {
	return w.ResponseWriter
}
