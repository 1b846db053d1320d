package alignment

import (
	"fmt"
	"sort"
	"strings"

	"github.com/medbotlabs/medscribe/diarization"
	"github.com/medbotlabs/medscribe/transcription"
)

// UnknownSpeaker is the sentinel label for segments whose midpoint falls
// inside no diarized turn (silence, cross-talk, diarization gaps).
const UnknownSpeaker = "Unknown"

// LabeledSegment is a transcript segment attributed to a display speaker.
type LabeledSegment struct {
	// Start is the segment start time in seconds.
	Start float64 `json:"start"`
	// End is the segment end time in seconds.
	End float64 `json:"end"`
	// Text is the segment text, trimmed of surrounding whitespace.
	Text string `json:"text"`
	// Speaker is the display name ("Person 1", ...) or UnknownSpeaker.
	Speaker string `json:"speaker"`
}

// Result holds the aligned, speaker-labeled transcript for one request.
type Result struct {
	// Segments holds one labeled segment per input transcript segment,
	// in the original order.
	Segments []LabeledSegment `json:"segments"`
	// FormattedTranscript groups consecutive same-speaker segments into
	// paragraphs separated by a blank line.
	FormattedTranscript string `json:"formatted_transcript"`
	// NumSpeakers is the number of distinct diarized speakers.
	NumSpeakers int `json:"num_speakers"`
	// Speakers lists the display names in label order.
	Speakers []string `json:"speakers"`
}

// LabelMap assigns stable display names to the distinct raw speaker ids in
// the turn collection. Ids are sorted lexicographically and named
// "Person 1", "Person 2", ... in that order; the mapping does not depend on
// the turns' arrival order. Display-name order is not guaranteed to match
// first-speaking-time order.
func LabelMap(turns []diarization.Turn) map[string]string {
	seen := make(map[string]bool, len(turns))
	ids := make([]string, 0, len(turns))
	for _, t := range turns {
		if !seen[t.Speaker] {
			seen[t.Speaker] = true
			ids = append(ids, t.Speaker)
		}
	}
	sort.Strings(ids)

	labels := make(map[string]string, len(ids))
	for i, id := range ids {
		labels[id] = fmt.Sprintf("Person %d", i+1)
	}
	return labels
}

// Align attributes each transcript segment to a speaker by midpoint
// containment: the first turn in encounter order whose interval contains the
// segment midpoint (inclusive on both bounds) wins. Overlapping turns are an
// accepted ambiguity; the encounter-order tie-break is deliberate and must
// not be replaced by longest-overlap or closest-start policies, which would
// change output on ambiguous inputs.
func Align(segments []transcription.Segment, turns []diarization.Turn) *Result {
	labels := LabelMap(turns)

	labeled := make([]LabeledSegment, len(segments))
	for i, seg := range segments {
		mid := (seg.Start + seg.End) / 2

		speaker := UnknownSpeaker
		for _, turn := range turns {
			if turn.Start <= mid && mid <= turn.End {
				speaker = labels[turn.Speaker]
				break
			}
		}

		labeled[i] = LabeledSegment{
			Start:   seg.Start,
			End:     seg.End,
			Text:    strings.TrimSpace(seg.Text),
			Speaker: speaker,
		}
	}

	speakers := make([]string, len(labels))
	for i := range speakers {
		speakers[i] = fmt.Sprintf("Person %d", i+1)
	}

	return &Result{
		Segments:            labeled,
		FormattedTranscript: FormatTranscript(labeled),
		NumSpeakers:         len(labels),
		Speakers:            speakers,
	}
}

// FormatTranscript renders labeled segments as a readable transcript.
// Consecutive segments sharing a speaker collapse into one paragraph of
// "<speaker>: <space-joined texts>"; paragraphs are separated by a blank
// line. Empty input yields an empty string.
func FormatTranscript(segments []LabeledSegment) string {
	var b strings.Builder
	currentSpeaker := ""
	var currentText []string

	flush := func() {
		if currentSpeaker == "" {
			return
		}
		if b.Len() > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(currentSpeaker)
		b.WriteString(": ")
		b.WriteString(strings.Join(currentText, " "))
	}

	for _, seg := range segments {
		if seg.Speaker != currentSpeaker {
			flush()
			currentSpeaker = seg.Speaker
			currentText = currentText[:0]
		}
		currentText = append(currentText, seg.Text)
	}
	flush()

	return strings.TrimSpace(b.String())
}
