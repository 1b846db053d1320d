package middleware

import (
	"net/http"
	"time"

	"github.com/medbotlabs/medscribe/logger"
)

// RequestLogger returns middleware that logs every request with method,
// path, status code, and duration. Health probes are silently skipped.
func RequestLogger(log *logger.Logger) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if isHealthEndpoint(r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			start := time.Now()
			sw := newStatusWriter(w)
			next.ServeHTTP(sw, r)
			duration := time.Since(start)

			fields := map[string]interface{}{
				"method":      r.Method,
				"path":        r.URL.Path,
				"status":      sw.status,
				"duration_ms": duration.Milliseconds(),
			}
			if id := r.Header.Get(RequestIDHeader); id != "" {
				fields["request_id"] = id
			}
			if duration > 30*time.Second {
				fields["slow"] = true
			}

			logByStatus(log, fields, sw.status)
		})
	}
}

// isHealthEndpoint reports whether the path is a health probe. The service
// root doubles as the original health check, so GET / is skipped too.
func isHealthEndpoint(path string) bool {
	switch path {
	case "/", "/health":
		return true
	}
	return false
}

// logByStatus logs request fields at the level matching the HTTP status.
func logByStatus(log *logger.Logger, fields map[string]interface{}, status int) {
	switch {
	case status >= 500:
		log.Error("Request completed", fields)
	case status >= 400:
		log.Warn("Request completed", fields)
	default:
		log.Info("Request completed", fields)
	}
}
