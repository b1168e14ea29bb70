package render

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"reelforge/subtitle"
)

func TestBuildArgs(t *testing.T) {
	req := Request{
		Images:     []string{"a.png", "b.png"},
		Audio:      "voice.mp3",
		OutputPath: "out.mp4",
	}
	slots := []ImageSlot{
		{Path: "a.png", Index: 0, Duration: 2},
		{Path: "b.png", Index: 1, Duration: 3.5},
	}
	g := &Graph{}
	g.Add(Chain{Inputs: []string{"0:v"}, Filters: []string{"null"}, Outputs: []string{"outv"}})

	args := buildArgs(req, slots, g)
	joined := strings.Join(args, " ")

	if args[0] != "-y" {
		t.Errorf("expected -y first, got %v", args[0])
	}
	for _, want := range []string{
		"-loop 1 -t 2 -i a.png",
		"-loop 1 -t 3.5 -i b.png",
		"-i voice.mp3",
		"-map [outv] -map [audio_out]",
		"-c:v libx264",
		"-pix_fmt yuv420p",
		"-r 60",
		"-shortest out.mp4",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("args missing %q: %s", want, joined)
		}
	}
	if strings.Contains(joined, "music") {
		t.Errorf("no music input expected: %s", joined)
	}
}

func TestBuildArgsWithMusic(t *testing.T) {
	req := Request{
		Images:     []string{"a.png"},
		Audio:      "voice.mp3",
		MusicPath:  "tonight.mp3",
		OutputPath: "out.mp4",
	}
	slots := []ImageSlot{{Path: "a.png", Index: 0, Duration: 2}}

	args := buildArgs(req, slots, &Graph{})
	joined := strings.Join(args, " ")
	if !strings.Contains(joined, "-i voice.mp3 -i tonight.mp3") {
		t.Errorf("music input must follow narration: %s", joined)
	}
}

func TestRenderProbeFailureStopsEarly(t *testing.T) {
	dir := t.TempDir()
	r := &Renderer{
		Probe: func(path string) (float64, error) {
			return 0, fmt.Errorf("probe exploded")
		},
	}
	err := r.Render(context.Background(), Request{
		Images:     []string{"a.png"},
		Audio:      "voice.mp3",
		Transcript: "hi/0.0",
		Style:      subtitle.StyleRoughCaps,
		WorkDir:    dir,
		OutputPath: dir + "/out.mp4",
	})
	if err == nil || !strings.Contains(err.Error(), "probe exploded") {
		t.Fatalf("expected probe error, got %v", err)
	}
}

func TestRenderBadTranscriptStopsEarly(t *testing.T) {
	dir := t.TempDir()
	r := &Renderer{
		Probe: func(path string) (float64, error) {
			t.Fatal("probe should not run for a bad transcript")
			return 0, nil
		},
	}
	err := r.Render(context.Background(), Request{
		Images:     []string{"a.png"},
		Audio:      "voice.mp3",
		Transcript: "hi/nope",
		Style:      subtitle.StyleRoughCaps,
		WorkDir:    dir,
		OutputPath: dir + "/out.mp4",
	})
	if err == nil {
		t.Fatal("expected transcript parse error")
	}
}

func TestFormatSeconds(t *testing.T) {
	cases := map[float64]string{
		2:    "2",
		3.5:  "3.5",
		0.25: "0.25",
	}
	for in, want := range cases {
		if got := formatSeconds(in); got != want {
			t.Errorf("formatSeconds(%v) = %q, want %q", in, got, want)
		}
	}
}

func TestTailLines(t *testing.T) {
	out := tailLines("a\nb\n\nc\nd\ne\nf\n", 3)
	if out != "d | e | f" {
		t.Errorf("tailLines = %q", out)
	}
}
