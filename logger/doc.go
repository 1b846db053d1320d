// Package logger provides structured logging for the medscribe service built
// on zerolog. It supports console and JSON output, component-tagged child
// loggers, and a process-wide global logger initialized once at startup.
package logger
