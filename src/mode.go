package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Description of the supported SSTV modes.
 *
 * Description:	Everything that differs between modes lives in one
 *		table so the scanline encoder and the overlay code can
 *		both be driven by it.
 *
 *		A mode sends its lines in groups of one or two.  Two line
 *		modes share one pair of chroma lines between both luma
 *		lines.  The segment list is played once per group.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

type ModeID int

const (
	Robot36 ModeID = 36
	Robot72 ModeID = 72
	MP73    ModeID = 73
	MP115   ModeID = 115
)

type SegmentKind int

const (
	SegmentTone SegmentKind = iota
	SegmentLuma
	SegmentChromaR
	SegmentChromaB
)

type Segment struct {
	Kind     SegmentKind
	Freq     int // SegmentTone only
	Line     int // SegmentLuma: which line of the group
	Duration time.Duration
}

// OverlayPlacement draws one band of a slot into one block.
type OverlayPlacement struct {
	Block int
	Slot  OverlaySlot
	Part  int
}

type Mode struct {
	ID      ModeID
	Name    string
	VIS     uint16
	VISBits int

	// Blocks of text height per frame, 15 or 16.  16 line modes
	// start with a black header block 0.
	TextLines int

	GroupLines int
	Segments   []Segment
	Overlays   []OverlayPlacement
}

// Blocks numbered 1 .. maxImageBlock carry picture data.
const maxImageBlock = 15

// Picture lines in a frame.
const frameLines = maxImageBlock * BlockHeight

func toneSegment(freq int, us int) Segment {
	return Segment{Kind: SegmentTone, Freq: freq, Duration: time.Duration(us) * time.Microsecond}
}

func lumaSegment(line int, us int) Segment {
	return Segment{Kind: SegmentLuma, Line: line, Duration: time.Duration(us) * time.Microsecond}
}

func chromaSegment(kind SegmentKind, us int) Segment {
	return Segment{Kind: kind, Duration: time.Duration(us) * time.Microsecond}
}

var overlays15 = []OverlayPlacement{
	{1, OverlayHeader, 0},
	{15, OverlayFooter, 0},
	{3, OverlayTitle, 0},
	{4, OverlayTitle, 1},
	{5, OverlayTitle, 2},
	{14, OverlayCall, 0},
	{15, OverlayCall, 1},
}

var overlays16 = []OverlayPlacement{
	{0, OverlayHeader, 0},
	{15, OverlayFooter, 0},
	{2, OverlayTitle, 0},
	{3, OverlayTitle, 1},
	{4, OverlayTitle, 2},
	{14, OverlayCall, 0},
	{15, OverlayCall, 1},
}

func mpSegments(us int) []Segment {
	return []Segment{
		toneSegment(1200, 9000),
		toneSegment(1500, 1000),
		lumaSegment(0, us),
		chromaSegment(SegmentChromaR, us),
		chromaSegment(SegmentChromaB, us),
		lumaSegment(1, us),
	}
}

var modes = []*Mode{
	{
		ID: Robot36, Name: "Robot36", VIS: 0x88, VISBits: 8,
		TextLines: 15, GroupLines: 2,
		Segments: []Segment{
			toneSegment(1200, 9000),
			toneSegment(1500, 3000),
			lumaSegment(0, 88000),
			toneSegment(1500, 4500),
			toneSegment(1900, 1500),
			chromaSegment(SegmentChromaR, 44000),
			toneSegment(1200, 9000),
			toneSegment(1500, 3000),
			lumaSegment(1, 88000),
			toneSegment(2300, 4500),
			toneSegment(1900, 1500),
			chromaSegment(SegmentChromaB, 44000),
		},
		Overlays: overlays15,
	},
	{
		ID: Robot72, Name: "Robot72", VIS: 0x0c, VISBits: 8,
		TextLines: 15, GroupLines: 1,
		Segments: []Segment{
			toneSegment(1200, 9000),
			toneSegment(1500, 3000),
			lumaSegment(0, 138000),
			toneSegment(1500, 4500),
			toneSegment(1900, 1500),
			chromaSegment(SegmentChromaR, 69000),
			toneSegment(2300, 4500),
			toneSegment(1900, 1500),
			chromaSegment(SegmentChromaB, 69000),
		},
		Overlays: overlays15,
	},
	{
		ID: MP73, Name: "MP73", VIS: 0x2523, VISBits: 16,
		TextLines: 16, GroupLines: 2,
		Segments: mpSegments(140000),
		Overlays: overlays16,
	},
	{
		ID: MP115, Name: "MP115", VIS: 0x2923, VISBits: 16,
		TextLines: 16, GroupLines: 2,
		Segments: mpSegments(223000),
		Overlays: overlays16,
	},
}

// LookupMode returns the mode for id, or Robot36 for anything unknown.
func LookupMode(id ModeID) *Mode {
	for _, m := range modes {
		if m.ID == id {
			return m
		}
	}
	return modes[0]
}

// ParseMode accepts a mode name, case insensitive, or its number.
func ParseMode(s string) (*Mode, error) {
	for _, m := range modes {
		if strings.EqualFold(s, m.Name) {
			return m, nil
		}
	}

	if n, err := strconv.Atoi(s); err == nil {
		for _, m := range modes {
			if m.ID == ModeID(n) {
				return m, nil
			}
		}
	}

	return nil, fmt.Errorf("%w: unknown SSTV mode %q", ErrConfiguration, s)
}

func Modes() []*Mode {
	return modes
}

// HasHeaderBlock reports whether a black block 0 precedes the picture.
func (m *Mode) HasHeaderBlock() bool {
	return m.TextLines == 16
}

// Placements returns the overlay bands drawn into block index.
func (m *Mode) Placements(index int) []OverlayPlacement {
	var out []OverlayPlacement
	for _, p := range m.Overlays {
		if p.Block == index {
			out = append(out, p)
		}
	}
	return out
}
