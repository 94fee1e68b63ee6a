package logger

import (
	"net/http"
	"time"
)

// HTTPLogger logs one line per request and tags the request context so
// handler logs carry the same request id.
func HTTPLogger(l Logger, requestID func(r *http.Request) string) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			ctx := r.Context()
			if requestID != nil {
				if id := requestID(r); id != "" {
					ctx = l.WithContext(ctx, "request_id", id)
				}
			}

			ww := &responseWriter{ResponseWriter: w, statusCode: http.StatusOK}
			next.ServeHTTP(ww, r.WithContext(ctx))

			l.Infof(ctx, "HTTP %s %s - status: %d, duration_ms: %d, remote_addr: %s",
				r.Method,
				r.URL.Path,
				ww.statusCode,
				time.Since(start).Milliseconds(),
				r.RemoteAddr,
			)
		})
	}
}

type responseWriter struct {
	http.ResponseWriter
	statusCode int
}

func (rw *responseWriter) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}
