package middleware

import (
	"net/http"

	"github.com/medbotlabs/medscribe/util"
)

const defaultMaxBodySize = 50 * 1024 * 1024 // consultation recordings run long

// BodySizeLimit returns middleware that restricts the request body to the
// given size string (e.g. "50MB", "512KB", "1GB"). Oversized uploads fail
// inside the handler's multipart read with a 413 from http.MaxBytesReader.
func BodySizeLimit(maxSize string) Middleware {
	size := util.ParseSize(maxSize, defaultMaxBodySize)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, size)
			next.ServeHTTP(w, r)
		})
	}
}
