package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// AppError is the unified application error type.
type AppError struct {
	// Code is a machine-readable error code.
	Code ErrorCode `json:"code"`
	// Message is a human-readable error message.
	Message string `json:"message"`
	// Retryable indicates if the operation can be retried.
	Retryable bool `json:"retryable"`
	// HTTPStatus is the recommended HTTP status code for this error.
	HTTPStatus int `json:"-"`
	// Details contains additional context for the error.
	Details map[string]any `json:"details,omitempty"`
	// Cause is the underlying error that caused this error.
	Cause error `json:"-"`
}

// Error returns the string representation of the error.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause of the error.
func (e *AppError) Unwrap() error { return e.Cause }

// WithCause sets the underlying cause of the error and returns the receiver.
func (e *AppError) WithCause(cause error) *AppError {
	e.Cause = cause
	return e
}

// WithDetail sets a single detail key-value pair and returns the receiver.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// New creates a new AppError with automatic retryable detection.
func New(code ErrorCode, message string, httpStatus int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		Retryable:  IsRetryableCode(code),
	}
}

// --- Common Error Constructors ---

// UnsupportedFormat creates a new AppError for an upload whose extension is
// not in the allow-list. The allowed extensions are carried in the details so
// the caller can report them.
func UnsupportedFormat(ext string, allowed []string) *AppError {
	return &AppError{
		Code: ErrCodeUnsupportedFormat, Message: fmt.Sprintf("Unsupported file format. Allowed formats: %s", strings.Join(allowed, ", ")),
		HTTPStatus: http.StatusBadRequest, Retryable: false,
		Details: map[string]any{"extension": ext, "allowed": allowed},
	}
}

// EmptyUpload creates a new AppError for an uploaded file with no content.
func EmptyUpload() *AppError {
	return &AppError{
		Code: ErrCodeEmptyUpload, Message: "Uploaded file is empty",
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// InvalidInput creates a new AppError for invalid request input.
func InvalidInput(reason string) *AppError {
	return &AppError{
		Code: ErrCodeInvalidInput, Message: reason,
		HTTPStatus: http.StatusBadRequest, Retryable: false,
	}
}

// Storage creates a new AppError for a temp-file write or verification failure.
func Storage(reason string, cause error) *AppError {
	return &AppError{
		Code: ErrCodeStorage, Message: reason,
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// Transcode creates a new AppError wrapping an audio conversion failure.
func Transcode(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscode, Message: "Failed to convert audio format",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// Transcription creates a new AppError for a failed or unusable transcription.
func Transcription(cause error) *AppError {
	return &AppError{
		Code: ErrCodeTranscription, Message: "Transcription failed",
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}

// ServiceUnavailable creates a new AppError for an optional capability that is
// not configured or not reachable.
func ServiceUnavailable(service, hint string) *AppError {
	msg := fmt.Sprintf("%s is not available.", service)
	if hint != "" {
		msg = msg + " " + hint
	}
	return &AppError{
		Code: ErrCodeServiceUnavailable, Message: msg,
		HTTPStatus: http.StatusServiceUnavailable, Retryable: true,
		Details: map[string]any{"service": service},
	}
}

// MissingCredential creates a new AppError for an absent external credential.
func MissingCredential(name string) *AppError {
	return &AppError{
		Code: ErrCodeMissingCredential, Message: fmt.Sprintf("%s not configured in environment", name),
		HTTPStatus: http.StatusInternalServerError, Retryable: false,
		Details: map[string]any{"credential": name},
	}
}

// Upstream creates a new AppError for a failed remote API call. The upstream
// status code is forwarded when known; 502 is used otherwise.
func Upstream(service string, status int, cause error) *AppError {
	if status < 400 {
		status = http.StatusBadGateway
	}
	return &AppError{
		Code: ErrCodeUpstream, Message: fmt.Sprintf("The %s service encountered an error. Please try again.", service),
		HTTPStatus: status, Retryable: true,
		Details: map[string]any{"service": service}, Cause: cause,
	}
}

// Internal creates a new AppError for an unexpected internal error. The causal
// message is surfaced; no stack trace is returned to the caller.
func Internal(cause error) *AppError {
	msg := "An unexpected error occurred."
	if cause != nil {
		msg = cause.Error()
	}
	return &AppError{
		Code: ErrCodeInternal, Message: msg,
		HTTPStatus: http.StatusInternalServerError, Retryable: false, Cause: cause,
	}
}
