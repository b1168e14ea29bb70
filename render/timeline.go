package render

import (
	"fmt"
	"strconv"
	"strings"

	"reelforge/config"
)

// ImageSlot pairs a source image with its place on the timeline.
type ImageSlot struct {
	Path     string
	Index    int
	Start    float64
	Duration float64
}

// ParseStartTimes reads a whitespace- or comma-separated list of seconds.
func ParseStartTimes(s string) ([]float64, error) {
	fields := strings.Fields(strings.ReplaceAll(s, ",", " "))
	out := make([]float64, 0, len(fields))
	for _, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid image start time %q", f)
		}
		out = append(out, v)
	}
	return out, nil
}

// ReconcileStartTimes fits a start-time list to the image count. A
// mismatch is a defined reconciliation, not an error: excess times are
// truncated, missing ones continue at a fixed 3-second stride from the
// last known value.
func ReconcileStartTimes(starts []float64, imageCount int) []float64 {
	out := make([]float64, 0, imageCount)
	out = append(out, starts...)
	if len(out) > imageCount {
		out = out[:imageCount]
	}

	if len(out) == 0 && imageCount > 0 {
		out = append(out, 0)
	}
	for len(out) < imageCount {
		out = append(out, out[len(out)-1]+config.StartTimeStride)
	}
	return out
}

// BuildTimeline derives per-image display durations. Each image runs
// until the next one starts; the last image runs to the end of the
// narration. A negative duration means the timing list does not fit the
// audio and the render cannot proceed.
func BuildTimeline(paths []string, starts []float64, audioDuration float64) ([]ImageSlot, error) {
	starts = ReconcileStartTimes(starts, len(paths))

	slots := make([]ImageSlot, len(paths))
	for i, p := range paths {
		var d float64
		if i < len(paths)-1 {
			d = starts[i+1] - starts[i]
		} else {
			d = audioDuration - starts[i]
		}
		if d < 0 {
			return nil, fmt.Errorf("image %d starts at %.2fs, past its %.2fs window", i, starts[i], audioDuration)
		}
		slots[i] = ImageSlot{Path: p, Index: i, Start: starts[i], Duration: d}
	}
	return slots, nil
}
