package subtitle

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"
)

// Canvas resolution for all rendered subtitle documents.
const (
	playResX = 1080
	playResY = 1920
)

// WriteDocument renders cues into a complete ASS document for the given
// preset. Cues whose text is exactly a single space are pause markers from
// the aligner and never become dialogue events.
func WriteDocument(w io.Writer, cues []Cue, id StyleID, colors Colors) error {
	p, err := PresetFor(id)
	if err != nil {
		return err
	}

	bw := bufio.NewWriter(w)
	writeHeader(bw)

	fmt.Fprintln(bw, p.styleLine(colors))
	if p.Boxed {
		fmt.Fprintln(bw, boxStyleLine)
	}
	fmt.Fprintln(bw)

	fmt.Fprintln(bw, "[Events]")
	fmt.Fprintln(bw, "Format: Layer, Start, End, Style, Name, MarginL, MarginR, MarginV, Effect, Text")

	if p.GroupSize > 1 {
		writeGroupedEvents(bw, cues, p, colors)
	} else {
		writeWordEvents(bw, cues, p)
	}

	return bw.Flush()
}

// WriteFile renders the document to path, creating or truncating it.
func WriteFile(path string, cues []Cue, id StyleID, colors Colors) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create subtitle file: %w", err)
	}
	if err := WriteDocument(f, cues, id, colors); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeHeader(w io.Writer) {
	fmt.Fprintln(w, "[Script Info]")
	fmt.Fprintln(w, "Title: Auto-generated subtitles")
	fmt.Fprintln(w, "ScriptType: v4.00+")
	fmt.Fprintln(w, "WrapStyle: 0")
	fmt.Fprintf(w, "PlayResX: %d\n", playResX)
	fmt.Fprintf(w, "PlayResY: %d\n", playResY)
	fmt.Fprintln(w, "ScaledBorderAndShadow: yes")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "[V4+ Styles]")
	fmt.Fprintln(w, "Format: Name, Fontname, Fontsize, PrimaryColour, SecondaryColour, OutlineColour, BackColour, Bold, Italic, Underline, StrikeOut, ScaleX, ScaleY, Spacing, Angle, BorderStyle, Outline, Shadow, Alignment, MarginL, MarginR, MarginV, Encoding")
}

// writeWordEvents emits one dialogue event per cue (GroupSize 1 presets).
func writeWordEvents(w io.Writer, cues []Cue, p Preset) {
	for _, cue := range cues {
		if cue.Text == " " {
			continue
		}
		word := cue.Text
		if p.Uppercase {
			word = strings.ToUpper(word)
		}
		switch p.emphasis {
		case emphasisPop:
			word = `{\t(0,100,\fs110)}` + word
		case emphasisBlurPop:
			word = `{\blur10\t(0,100,\fs110)}` + word
		}
		fmt.Fprintf(w, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n",
			FormatTime(cue.Start), FormatTime(cue.End), word)
	}
}

// writeGroupedEvents emits windows of GroupSize cues rendered together,
// one event per cue in the window with only that cue's word emphasised.
// StyleBoxed additionally emits a Box-layer event directly before each
// text event, sharing its start and end.
func writeGroupedEvents(w io.Writer, cues []Cue, p Preset, colors Colors) {
	for i := 0; i < len(cues); i += p.GroupSize {
		end := i + p.GroupSize
		if end > len(cues) {
			end = len(cues)
		}

		group := make([]Cue, 0, p.GroupSize)
		for _, c := range cues[i:end] {
			if c.Text != " " {
				group = append(group, c)
			}
		}
		if len(group) == 0 {
			continue
		}

		for j, cue := range group {
			text, boxText := windowLine(group, j, p, colors)
			start, stop := FormatTime(cue.Start), FormatTime(cue.End)
			if p.Boxed {
				// {\1a&HFF&} makes the box layer's fill invisible so only
				// the outline box shows behind the text layer.
				fmt.Fprintf(w, "Dialogue: 0,%s,%s,Box,,0,0,0,,{\\1a&HFF&}%s\n", start, stop, boxText)
				fmt.Fprintf(w, "Dialogue: 1,%s,%s,Default,,0,0,0,,%s\n", start, stop, text)
			} else {
				fmt.Fprintf(w, "Dialogue: 0,%s,%s,Default,,0,0,0,,%s\n", start, stop, text)
			}
		}
	}
}

// windowLine renders one window with the word at position active carrying
// the preset's emphasis. For StyleBoxed the second return value is the
// matching Box-layer text.
func windowLine(group []Cue, active int, p Preset, colors Colors) (string, string) {
	parts := make([]string, 0, len(group))
	boxParts := make([]string, 0, len(group))

	for k, c := range group {
		word := c.Text
		if p.Uppercase {
			word = strings.ToUpper(word)
		}

		if k == active {
			switch p.emphasis {
			case emphasisHighlight:
				parts = append(parts, fmt.Sprintf("{\\blur10\\c%s&}%s{\\r}", colors.Highlight, word))
			case emphasisHighlightPop:
				parts = append(parts, fmt.Sprintf("{\\blur10\\t(0,50,\\fs110)\\c%s&}%s{\\r}", colors.Highlight, word))
			case emphasisBox:
				parts = append(parts, word)
				boxParts = append(boxParts, fmt.Sprintf("{\\bord7\\3c%s&\\3a&H00&}%s{\\r}", colors.Highlight, word))
			}
			continue
		}

		switch p.emphasis {
		case emphasisHighlight, emphasisHighlightPop:
			parts = append(parts, "{\\blur10}"+word)
		case emphasisBox:
			parts = append(parts, word)
			boxParts = append(boxParts, word)
		}
	}

	return strings.Join(parts, " "), strings.Join(boxParts, " ")
}

// FormatTime renders seconds as H:MM:SS.CC. Centiseconds truncate rather
// than round so an event never starts ahead of its audio.
func FormatTime(seconds float64) string {
	whole := int(seconds)
	hours := whole / 3600
	minutes := (whole % 3600) / 60
	secs := whole % 60
	centis := int((seconds - math.Floor(seconds)) * 100)
	return fmt.Sprintf("%d:%02d:%02d.%02d", hours, minutes, secs, centis)
}
