// Package process runs external tools (ffmpeg in particular) as
// subprocesses with captured output, context cancellation, and a
// SIGTERM-then-SIGKILL shutdown of the whole process group.
package process
