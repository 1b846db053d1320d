// Package errors provides unified error handling for the medscribe service.
// It implements structured error types with machine-readable codes, HTTP
// status mapping, and retryable detection. The HTTP layer is the sole place
// where these errors are translated to response status codes.
package errors
