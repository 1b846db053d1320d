package process

import "time"

// Result holds the output and status of a completed subprocess.
type Result struct {
	// Stdout is the captured standard output.
	Stdout []byte
	// Stderr is the captured standard error. Tools like ffmpeg write
	// their diagnostics here, so callers should surface it on failure.
	Stderr []byte
	// ExitCode is the process exit code, or -1 if it never ran or was
	// killed by a signal.
	ExitCode int
	// Duration is how long the process ran.
	Duration time.Duration
}
