package render

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"reelforge/config"
	"reelforge/subtitle"
)

// Request is one fully staged render: every path references a local file,
// with the subtitle document and fonts materialized under WorkDir.
type Request struct {
	Images         []string
	Audio          string
	Transcript     string
	StartTimes     []float64
	Style          subtitle.StyleID
	BaseColor      string
	HighlightColor string
	PanZoom        bool
	Chromatic      bool
	MusicPath      string // empty = narration only
	WorkDir        string
	OutputPath     string
}

// Renderer compiles filter graphs and drives ffmpeg for staged requests.
//
// The invocation assembles the argument vector directly rather than going
// through ffmpeg-go's stream DAG: the graph here is pre-serialized with
// explicit output labels, and ffmpeg-go emits positional -map entries for
// every raw input, which would pull the unanimated image streams into the
// output alongside [outv].
type Renderer struct {
	FFmpegPath string        // "" = "ffmpeg" on PATH
	Timeout    time.Duration // 0 = unbounded
	Choose     Chooser       // nil = DefaultChooser
	Probe      ProbeFunc     // nil = ProbeDuration
}

// Render writes the subtitle document, probes the narration, compiles the
// filter graph and runs ffmpeg synchronously. A non-zero exit, or the
// timeout forcing termination, is returned as an error.
func (r *Renderer) Render(ctx context.Context, req Request) error {
	cues, err := subtitle.ParseCues(req.Transcript)
	if err != nil {
		return err
	}

	subPath := filepath.Join(req.WorkDir, config.SubtitleFileName)
	colors := subtitle.Colors{Base: req.BaseColor, Highlight: req.HighlightColor}
	if err := subtitle.WriteFile(subPath, cues, req.Style, colors); err != nil {
		return err
	}

	probe := r.Probe
	if probe == nil {
		probe = ProbeDuration
	}
	audioDuration, err := probe(req.Audio)
	if err != nil {
		return err
	}

	slots, err := BuildTimeline(req.Images, req.StartTimes, audioDuration)
	if err != nil {
		return err
	}

	graph := BuildGraph(GraphSpec{
		Slots:        slots,
		Width:        config.VideoWidth,
		Height:       config.VideoHeight,
		FPS:          config.VideoFPS,
		SubtitlePath: subPath,
		FontsDir:     req.WorkDir,
		WithMusic:    req.MusicPath != "",
		PanZoom:      req.PanZoom,
		Chromatic:    req.Chromatic,
		Choose:       r.Choose,
	})

	if r.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.Timeout)
		defer cancel()
	}

	ffmpegPath := r.FFmpegPath
	if ffmpegPath == "" {
		ffmpegPath = "ffmpeg"
	}

	cmd := exec.CommandContext(ctx, ffmpegPath, buildArgs(req, slots, graph)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("ffmpeg timed out after %s", r.Timeout)
		}
		return fmt.Errorf("ffmpeg failed: %v: %s", err, tailLines(stderr.String(), 5))
	}
	return nil
}

// buildArgs assembles the full ffmpeg argument vector: one looped input
// per image trimmed to its display duration, the narration, the optional
// music track, then the graph and the fixed encode settings.
func buildArgs(req Request, slots []ImageSlot, graph *Graph) []string {
	args := []string{"-y"}
	for _, slot := range slots {
		args = append(args, "-loop", "1", "-t", formatSeconds(slot.Duration), "-i", slot.Path)
	}
	args = append(args, "-i", req.Audio)
	if req.MusicPath != "" {
		args = append(args, "-i", req.MusicPath)
	}
	args = append(args,
		"-filter_complex", graph.String(),
		"-map", "[outv]",
		"-map", "[audio_out]",
		"-c:v", config.VideoCodec,
		"-pix_fmt", config.PixelFormat,
		"-r", strconv.Itoa(config.VideoFPS),
		"-shortest",
		req.OutputPath,
	)
	return args
}

// formatSeconds renders a duration without trailing zeros.
func formatSeconds(d float64) string {
	return strconv.FormatFloat(d, 'f', -1, 64)
}

// tailLines returns the last n non-empty lines of s on a single line.
func tailLines(s string, n int) string {
	lines := strings.Split(strings.TrimSpace(s), "\n")
	kept := make([]string, 0, n)
	for _, l := range lines {
		if strings.TrimSpace(l) != "" {
			kept = append(kept, strings.TrimSpace(l))
		}
	}
	if len(kept) > n {
		kept = kept[len(kept)-n:]
	}
	return strings.Join(kept, " | ")
}
