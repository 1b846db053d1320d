// Package alignment merges timestamped transcript segments with diarized
// speaker turns into a speaker-labeled transcript. It is a pure function of
// its two inputs: no model handles, no hidden state, fully deterministic.
package alignment
