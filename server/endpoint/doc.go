// Package endpoint implements the API handlers: health, transcription,
// diarized transcription, and clinical note generation.
package endpoint
