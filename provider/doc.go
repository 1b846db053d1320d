// Package provider defines the base interface shared by all external model
// backends (transcription, diarization, completion) and a generic registry
// for constructing them from configuration.
package provider
