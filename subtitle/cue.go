package subtitle

import (
	"fmt"
	"strconv"
	"strings"
)

// Cue is a single transcript word with its display window.
type Cue struct {
	Text  string
	Start float64
	End   float64
}

// cueTail is how long the final cue is held past its start.
const cueTail = 1.0

// ParseCues converts a "word/start/word/start/..." transcript into cues.
// Each cue ends where the next one starts; the final cue is held for one
// extra second. A non-numeric start time is a hard parse failure. An odd
// trailing token (a word with no start time) is dropped: partial
// transcripts from upstream aligners still render instead of failing the
// whole job.
func ParseCues(s string) ([]Cue, error) {
	parts := strings.Split(s, "/")

	var cues []Cue
	for i := 0; i+1 < len(parts); i += 2 {
		start, err := strconv.ParseFloat(strings.TrimSpace(parts[i+1]), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid start time %q for word %q", parts[i+1], parts[i])
		}
		cues = append(cues, Cue{Text: parts[i], Start: start})
	}

	for i := 0; i < len(cues)-1; i++ {
		cues[i].End = cues[i+1].Start
	}
	if len(cues) > 0 {
		cues[len(cues)-1].End = cues[len(cues)-1].Start + cueTail
	}

	return cues, nil
}
