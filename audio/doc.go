// Package audio handles uploaded consultation recordings before any model
// sees them: format validation against the supported extension allow-list,
// temp-file staging on local disk, and ffmpeg transcoding to the mono
// 16 kHz WAV the diarization pipeline expects.
package audio
