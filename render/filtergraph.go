package render

import (
	"fmt"

	"reelforge/config"
)

// GraphSpec carries everything the compiler needs to emit one render
// graph. Positional inputs are the images in index order, then the
// narration track, then the optional music track.
type GraphSpec struct {
	Slots        []ImageSlot
	Width        int
	Height       int
	FPS          int
	SubtitlePath string
	FontsDir     string
	WithMusic    bool
	PanZoom      bool
	Chromatic    bool
	Choose       Chooser
}

// BuildGraph compiles the complete filter graph: per-image scale, pad and
// animation chains, the concat of all image streams, the subtitle
// overlay, and the audio mix.
func BuildGraph(spec GraphSpec) *Graph {
	choose := spec.Choose
	if choose == nil {
		choose = DefaultChooser
	}

	g := &Graph{}

	for _, slot := range spec.Slots {
		frames := int(slot.Duration * float64(spec.FPS))
		frag := animationFragment(slot.Index, frames, spec.Width, spec.Height, slot.Duration, spec.PanZoom, spec.Chromatic, choose)

		filters := []string{
			fmt.Sprintf("scale=%d:%d:force_original_aspect_ratio=decrease", spec.Width, spec.Height),
			fmt.Sprintf("pad=%d:%d:(ow-iw)/2:(oh-ih)/2", spec.Width, spec.Height),
			"format=" + config.PixelFormat,
		}
		g.Add(Chain{
			Inputs:  []string{fmt.Sprintf("%d:v", slot.Index)},
			Filters: append(filters, frag.filters...),
			Outputs: frag.outputs,
		})
		for _, c := range frag.extra {
			g.Add(c)
		}
	}

	concat := Chain{
		Filters: []string{fmt.Sprintf("concat=n=%d:v=1:a=0", len(spec.Slots))},
		Outputs: []string{"vid"},
	}
	for _, slot := range spec.Slots {
		concat.Inputs = append(concat.Inputs, vLabel(slot.Index))
	}
	g.Add(concat)

	g.Add(Chain{
		Inputs: []string{"vid"},
		Filters: []string{fmt.Sprintf("ass='%s':fontsdir='%s'",
			escapeFilterPath(spec.SubtitlePath), escapeFilterPath(spec.FontsDir))},
		Outputs: []string{"outv"},
	})

	narration := len(spec.Slots)
	if spec.WithMusic {
		g.Add(Chain{
			Inputs:  []string{fmt.Sprintf("%d:a", narration)},
			Filters: []string{"volume=1.0"},
			Outputs: []string{"voice"},
		})
		g.Add(Chain{
			Inputs:  []string{fmt.Sprintf("%d:a", narration+1)},
			Filters: []string{fmt.Sprintf("volume=%.2f", config.MusicVolume)},
			Outputs: []string{"music"},
		})
		g.Add(Chain{
			Inputs:  []string{"voice", "music"},
			Filters: []string{"amix=inputs=2:duration=shortest"},
			Outputs: []string{"audio_out"},
		})
	} else {
		g.Add(Chain{
			Inputs:  []string{fmt.Sprintf("%d:a", narration)},
			Filters: []string{"volume=1.0"},
			Outputs: []string{"audio_out"},
		})
	}

	return g
}
