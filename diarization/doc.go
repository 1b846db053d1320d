// Package diarization defines the diarization provider interface and common
// types for interacting with speaker diarization backends. The backing model
// is a black box mapping an audio file path to speaker-attributed time
// intervals; the adapter is optional and the service degrades gracefully
// when it is not configured.
package diarization
