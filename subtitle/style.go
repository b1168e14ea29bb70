package subtitle

import "fmt"

// StyleID selects one of the fixed caption presets. The set is closed:
// presets are recipes tuned against the output canvas, not user data.
type StyleID int

const (
	StyleRoughCaps  StyleID = 1 // single word, uppercase, Prohibition Rough
	StylePopIn      StyleID = 2 // single word, size pop-in
	StyleKomikaWave StyleID = 3 // 3-word window, blurred highlight, Komika Axis
	StyleBoldWave   StyleID = 4 // 3-word window, blurred highlight, Montserrat
	StyleBoldPop    StyleID = 5 // 3-word window, highlight pops to 110pt
	StyleBoxed      StyleID = 6 // 3-word window with a highlight box layer
	StyleBlurPop    StyleID = 7 // single word, uppercase, blur + pop-in
)

// emphasisKind is how the currently spoken word is formatted.
type emphasisKind int

const (
	emphasisNone      emphasisKind = iota // plain text
	emphasisPop                           // \t(0,100,\fs110) grow-in
	emphasisHighlight                     // \blur10 + highlight colour
	emphasisHighlightPop                  // highlight colour + \t(0,50,\fs110)
	emphasisBox                           // outline box on a separate layer
	emphasisBlurPop                       // \blur10 + \t(0,100,\fs110)
)

// Colors are the caller-supplied colour slots in ASS &HAABBGGRR notation.
// Base fills the primary colour slot (or the secondary slot for presets
// that keep a fixed white primary); Highlight marks the spoken word.
type Colors struct {
	Base      string
	Highlight string
}

// Preset is the immutable rendering template behind a StyleID.
type Preset struct {
	ID           StyleID
	Font         string
	Size         int
	Outline      int
	Shadow       int
	GroupSize    int  // 1 = one cue per event, 3 = 3-cue windows
	Uppercase    bool // words are uppercased before rendering
	WhitePrimary bool // primary stays white, Base moves to the secondary slot
	Boxed        bool // emit the Box layer alongside the text layer

	emphasis emphasisKind
}

var presets = map[StyleID]Preset{
	StyleRoughCaps:  {ID: StyleRoughCaps, Font: "Prohibition Rough", Size: 90, Outline: 9, Shadow: 6, GroupSize: 1, Uppercase: true, emphasis: emphasisNone},
	StylePopIn:      {ID: StylePopIn, Font: "Montserrat Black", Size: 90, Outline: 11, Shadow: 6, GroupSize: 1, emphasis: emphasisPop},
	StyleKomikaWave: {ID: StyleKomikaWave, Font: "Komika Axis", Size: 110, Outline: 7, Shadow: 6, GroupSize: 3, Uppercase: true, WhitePrimary: true, emphasis: emphasisHighlight},
	StyleBoldWave:   {ID: StyleBoldWave, Font: "Montserrat ExtraBold", Size: 110, Outline: 8, Shadow: 6, GroupSize: 3, Uppercase: true, emphasis: emphasisHighlight},
	StyleBoldPop:    {ID: StyleBoldPop, Font: "Montserrat ExtraBold", Size: 90, Outline: 8, Shadow: 4, GroupSize: 3, Uppercase: true, emphasis: emphasisHighlightPop},
	StyleBoxed:      {ID: StyleBoxed, Font: "Montserrat ExtraBold", Size: 110, Outline: 0, Shadow: 7, GroupSize: 3, Boxed: true, emphasis: emphasisBox},
	StyleBlurPop:    {ID: StyleBlurPop, Font: "Montserrat ExtraBold", Size: 90, Outline: 8, Shadow: 4, GroupSize: 1, Uppercase: true, emphasis: emphasisBlurPop},
}

// PresetFor resolves a StyleID to its preset. Unknown ids are rejected at
// submission time, before a job record exists.
func PresetFor(id StyleID) (Preset, error) {
	p, ok := presets[id]
	if !ok {
		return Preset{}, fmt.Errorf("unknown caption style %d", int(id))
	}
	return p, nil
}

// styleLine renders the preset's [V4+ Styles] definition.
func (p Preset) styleLine(c Colors) string {
	primary, secondary := c.Base, "&H000000FF"
	if p.WhitePrimary {
		primary, secondary = "&H00FFFFFF", c.Base
	}
	return fmt.Sprintf(
		"Style: Default,%s,%d,%s,%s,&H00000000,&H00000000,0,0,0,0,100,100,0,0,1,%d,%d,5,10,10,10,1",
		p.Font, p.Size, primary, secondary, p.Outline, p.Shadow)
}

// boxStyleLine is the filled companion style for StyleBoxed: border style 3
// draws an opaque box behind the glyphs.
const boxStyleLine = "Style: Box,Montserrat ExtraBold,110,&H00FFFFFF,&H000000FF,&H00000000,&H00000000,0,0,0,0,100,100,0,0,3,0,0,5,10,10,10,1"
