package render

import (
	"fmt"
	"math/rand"
)

// Chooser picks one of n animation presets. The default chooser draws
// from the process-wide math/rand source, so two renders of the same
// input may animate differently; tests inject a fixed chooser instead.
type Chooser func(n int) int

// DefaultChooser is the unseeded random chooser.
func DefaultChooser(n int) int {
	return rand.Intn(n)
}

// animationPresets is the number of pan-zoom presets to choose from.
const animationPresets = 3

// chromaticStrips is how many vertical strips the chromatic effect cuts
// the frame into.
const chromaticStrips = 5

// fragment describes how one image's chain ends: filters appended to the
// image chain, the labels that chain emits, and any follow-on chains.
type fragment struct {
	filters []string
	outputs []string
	extra   []Chain
}

// animationFragment builds the filter fragment that animates one image
// and leaves its frames on the [v{index}] label. With pan-zoom disabled
// the image is simply trimmed to its display duration.
func animationFragment(index, frames, width, height int, duration float64, panZoom, chromatic bool, choose Chooser) fragment {
	var f fragment

	if panZoom {
		f.filters = append(f.filters, panZoomFilters(choose(animationPresets), frames, width, height, duration)...)
	}
	f.filters = append(f.filters, fmt.Sprintf("trim=duration=%s", formatSeconds(duration)))

	if chromatic {
		cf := chromaticFragment(index)
		f.filters = append(f.filters, cf.filters...)
		f.outputs = cf.outputs
		f.extra = cf.extra
	} else {
		f.filters = append(f.filters, "null")
		f.outputs = []string{vLabel(index)}
	}
	return f
}

// panZoomFilters returns one of the three fixed motion presets. All three
// upscale the source 3x so the moving crop never runs out of pixels.
func panZoomFilters(preset, frames, width, height int, duration float64) []string {
	d := formatSeconds(duration)
	switch preset {
	case 0: // continuous zoom-in on the centre
		return []string{
			"scale=iw*3:ih*3",
			fmt.Sprintf("zoompan=z='zoom+0.002':x='iw/2-(iw/zoom/2)':y='ih/2-(ih/zoom/2)':d=%d:s=%dx%d", frames, width, height),
		}
	case 1: // horizontal pan, left to right
		return []string{
			"scale=iw*3:ih*3",
			fmt.Sprintf("crop=in_w*0.90:in_h*0.90:(in_w*0.10)/%s*t:108", d),
			fmt.Sprintf("scale=%d:%d", width, height),
		}
	default: // vertical pan, top to bottom
		return []string{
			"scale=iw*3:ih*3",
			fmt.Sprintf("crop=in_w*0.90:in_h*0.90:((in_w - in_w*0.90) / 2):in_h*0.10 - (in_h*0.10)/%s*t", d),
			fmt.Sprintf("scale=%d:%d", width, height),
		}
	}
}

// chromaticFragment splits the frame into vertical strips and applies a
// periodic red/blue channel shift, each strip's active window offset
// 0.04s from its neighbour, then restacks the strips. The leading scale
// makes the width divisible by the strip count so hstack lines up.
func chromaticFragment(index int) fragment {
	var f fragment
	f.filters = []string{
		fmt.Sprintf("scale=iw-mod(iw\\,%d):ih", chromaticStrips),
		fmt.Sprintf("split=%d", chromaticStrips),
	}
	for k := 0; k < chromaticStrips; k++ {
		f.outputs = append(f.outputs, fmt.Sprintf("v%d_%d", index, k))
	}

	stack := Chain{
		Filters: []string{fmt.Sprintf("hstack=inputs=%d", chromaticStrips)},
		Outputs: []string{vLabel(index)},
	}
	for k := 0; k < chromaticStrips; k++ {
		enable := "lt(mod(t,0.2),0.1)"
		if k > 0 {
			enable = fmt.Sprintf("lt(mod(t+%.2f,0.2),0.1)", 0.04*float64(k))
		}
		f.extra = append(f.extra, Chain{
			Inputs: []string{fmt.Sprintf("v%d_%d", index, k)},
			Filters: []string{
				fmt.Sprintf("crop=iw/%d:ih:%d*iw/%d:0", chromaticStrips, k, chromaticStrips),
				fmt.Sprintf("rgbashift=rh=7:bh=-7:enable='%s'", enable),
			},
			Outputs: []string{fmt.Sprintf("c%d_%d", index, k)},
		})
		stack.Inputs = append(stack.Inputs, fmt.Sprintf("c%d_%d", index, k))
	}
	f.extra = append(f.extra, stack)
	return f
}

func vLabel(index int) string {
	return fmt.Sprintf("v%d", index)
}
