package middleware

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/preston-bernstein/ops-console-service/internal/http/requestutil"
	"github.com/preston-bernstein/ops-console-service/internal/logging"
	"github.com/preston-bernstein/ops-console-service/internal/metrics"
)

// LoggingMiddleware tags every request with an id and a scoped logger, then logs
// and records the outcome. Server errors log at error level, client errors at warn.
func LoggingMiddleware(baseLogger *slog.Logger, recorder *metrics.Recorder, next http.Handler) http.Handler {
	if baseLogger == nil {
		baseLogger = slog.Default()
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		reqID := requestutil.RequestID(r)
		w.Header().Set(requestutil.HeaderRequestID, reqID)

		logger := baseLogger.With(
			slog.String(logging.FieldRequestID, reqID),
			slog.String(logging.FieldMethod, r.Method),
			slog.String(logging.FieldPath, r.URL.Path),
			slog.String("client_ip", requestutil.ClientIP(r)),
		)
		if r.URL.RawQuery != "" {
			logger = logger.With(slog.String("query", r.URL.RawQuery))
		}

		ctx := withRequestID(logging.WithLogger(r.Context(), logger), reqID)
		sw := &statusWriter{ResponseWriter: w}
		next.ServeHTTP(sw, r.WithContext(ctx))

		status := sw.Status()
		elapsed := time.Since(start)
		recorder.RecordHTTPRequest(r.Method, normalizePath(r.URL.Path), status, elapsed)

		logger.Log(ctx, levelFor(status), "request complete",
			slog.Int(logging.FieldStatusCode, status),
			slog.Int64(logging.FieldDurationMS, elapsed.Milliseconds()),
			slog.Int("bytes", sw.written),
		)
	})
}

func levelFor(status int) slog.Level {
	switch {
	case status >= 500:
		return slog.LevelError
	case status >= 400:
		return slog.LevelWarn
	default:
		return slog.LevelInfo
	}
}

// statusWriter remembers the status and body size written by the handler.
type statusWriter struct {
	http.ResponseWriter
	status  int
	written int
}

func (w *statusWriter) WriteHeader(status int) {
	if w.status == 0 {
		w.status = status
	}
	w.ResponseWriter.WriteHeader(status)
}

func (w *statusWriter) Write(b []byte) (int, error) {
	if w.status == 0 {
		w.status = http.StatusOK
	}
	n, err := w.ResponseWriter.Write(b)
	w.written += n
	return n, err
}

// Status defaults to 200 when the handler never wrote a header.
func (w *statusWriter) Status() int {
	if w.status == 0 {
		return http.StatusOK
	}
	return w.status
}

func (w *statusWriter) Unwrap() http.ResponseWriter { return w.ResponseWriter }
