package process

import (
	"io"
	"time"
)

// Command describes a subprocess invocation.
type Command struct {
	// Binary is the executable path or name (resolved via PATH).
	Binary string
	// Args are the command-line arguments.
	Args []string
	// Dir is the working directory. Empty means the current directory.
	Dir string
	// Env holds additional environment variables (key=value), merged
	// on top of os.Environ.
	Env []string
	// Stdin provides input to the process. May be nil.
	Stdin io.Reader
	// GracePeriod is how long to wait after SIGTERM before SIGKILL.
	// Zero means 5 seconds.
	GracePeriod time.Duration
}
