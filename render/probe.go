package render

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strconv"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// ProbeFunc reports a media file's duration in seconds.
type ProbeFunc func(path string) (float64, error)

// ProbeDuration inspects a media file with ffprobe and returns its
// container duration in seconds.
func ProbeDuration(path string) (float64, error) {
	out, err := ffmpeg.Probe(path)
	if err != nil {
		return 0, fmt.Errorf("ffprobe %s: %w", filepath.Base(path), err)
	}

	var probe struct {
		Format struct {
			Duration string `json:"duration"`
		} `json:"format"`
	}
	if err := json.Unmarshal([]byte(out), &probe); err != nil {
		return 0, fmt.Errorf("parse ffprobe output for %s: %w", filepath.Base(path), err)
	}

	d, err := strconv.ParseFloat(probe.Format.Duration, 64)
	if err != nil {
		return 0, fmt.Errorf("ffprobe reported no duration for %s", filepath.Base(path))
	}
	return d, nil
}
