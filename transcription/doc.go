// Package transcription defines the transcription provider interface and
// common types for interacting with speech-to-text backends. The backing
// model is treated as a black box: it maps an audio file path to full text
// plus an ordered sequence of timestamped segments.
package transcription
