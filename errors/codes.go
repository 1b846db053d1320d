package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Upload validation errors
const (
	// ErrCodeUnsupportedFormat indicates the uploaded file extension is not allowed.
	ErrCodeUnsupportedFormat ErrorCode = "UNSUPPORTED_FORMAT"
	// ErrCodeEmptyUpload indicates the uploaded file had no content.
	ErrCodeEmptyUpload ErrorCode = "EMPTY_UPLOAD"
	// ErrCodeInvalidInput indicates the request input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
)

// Processing errors
const (
	// ErrCodeStorage indicates a temporary-file write or verification failure.
	ErrCodeStorage ErrorCode = "STORAGE_ERROR"
	// ErrCodeTranscode indicates the audio format conversion failed.
	ErrCodeTranscode ErrorCode = "TRANSCODE_ERROR"
	// ErrCodeTranscription indicates the speech recognition model returned no usable text.
	ErrCodeTranscription ErrorCode = "TRANSCRIPTION_ERROR"
)

// Availability/configuration errors
const (
	// ErrCodeServiceUnavailable indicates an optional capability is not configured.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeMissingCredential indicates a required external credential is absent.
	ErrCodeMissingCredential ErrorCode = "MISSING_CREDENTIAL"
	// ErrCodeUpstream indicates a remote API call failed or returned no usable result.
	ErrCodeUpstream ErrorCode = "UPSTREAM_ERROR"
	// ErrCodeInternal indicates an unexpected internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeUpstream:           true,
	ErrCodeStorage:            false,
	ErrCodeTranscode:          false,
	ErrCodeTranscription:      false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
