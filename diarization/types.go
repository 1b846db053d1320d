package diarization

// DiarizationRequest holds parameters for a diarization call.
type DiarizationRequest struct {
	// AudioPath is the path to the audio file to diarize. The file must
	// already be in the sample format the backend requires (mono 16 kHz WAV
	// for Pyannote).
	AudioPath string `json:"audio_path"`
	// NumSpeakers is the exact number of speakers (0 = auto-detect).
	NumSpeakers int `json:"num_speakers,omitempty"`
	// MinSpeakers is the minimum expected number of speakers.
	MinSpeakers int `json:"min_speakers,omitempty"`
	// MaxSpeakers is the maximum expected number of speakers.
	MaxSpeakers int `json:"max_speakers,omitempty"`
}

// DiarizationResponse holds the result of a diarization call.
type DiarizationResponse struct {
	// Turns contains speaker-attributed time intervals. The collection is
	// not guaranteed sorted or non-overlapping, and may leave temporal gaps.
	Turns []Turn `json:"turns"`
}

// Turn represents a time interval attributed to one diarized speaker.
type Turn struct {
	// Speaker is the raw speaker identity emitted by the model.
	Speaker string `json:"speaker"`
	// Start is the turn start time in seconds.
	Start float64 `json:"start"`
	// End is the turn end time in seconds.
	End float64 `json:"end"`
}
