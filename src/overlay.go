package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Text printed over the transmitted picture.
 *
 * Description:	There are four slots, each with its own width, zoom
 *		and colour:
 *
 *			header	39 chars, 1x, white, top of the frame
 *			footer	39 chars, 1x, white, bottom of the frame
 *			title	13 chars, 3x, yellow, upper part
 *			call	19 chars, 2x, red, bottom right
 *
 *		Pixels of a glyph cell that are not part of the glyph
 *		have the picture under them halved in brightness, which
 *		gives a shadow box that keeps the text readable on any
 *		background.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"strings"
)

type OverlaySlot int

const (
	OverlayHeader OverlaySlot = iota
	OverlayFooter
	OverlayTitle
	OverlayCall

	overlaySlots
)

type overlayStyle struct {
	name  string
	width int
	zoom  int
	color uint32
	right bool
}

var overlayStyles = [overlaySlots]overlayStyle{
	OverlayHeader: {"header", 39, 1, 0xFFFFFF, false},
	OverlayFooter: {"footer", 39, 1, 0xFFFFFF, false},
	OverlayTitle:  {"title", 13, 3, 0xFFFF00, false},
	OverlayCall:   {"call", 19, 2, 0xFF4040, true},
}

// Padding for right aligned slots.  Outside the font, so never drawn.
const overlayBlank = 0xFF

// First pixel column of the text.
const overlayLeft = 3

// Overlays holds the text for all slots.  It belongs to the caller and
// outlives any one playback.  The zero value has every slot empty.
type Overlays struct {
	cells [overlaySlots][]byte
}

// ParseOverlaySlot accepts a slot name: header, footer, title or call.
func ParseOverlaySlot(s string) (OverlaySlot, error) {
	for i, st := range overlayStyles {
		if strings.EqualFold(s, st.name) {
			return OverlaySlot(i), nil
		}
	}
	return 0, fmt.Errorf("%w: unknown overlay slot %q", ErrConfiguration, s)
}

func (s OverlaySlot) String() string {
	if s < 0 || s >= overlaySlots {
		return fmt.Sprintf("OverlaySlot(%d)", int(s))
	}
	return overlayStyles[s].name
}

/*------------------------------------------------------------------
 *
 * Name:	Set
 *
 * Purpose:	Set the text of one slot.
 *
 * Inputs:	slot	- Which slot.
 *
 *		text	- Truncated to the slot width.  Empty clears the
 *			  slot.  The call sign slot is right aligned.
 *
 *----------------------------------------------------------------*/

func (o *Overlays) Set(slot OverlaySlot, text string) error {
	if slot < 0 || slot >= overlaySlots {
		return fmt.Errorf("%w: overlay slot %d", ErrConfiguration, int(slot))
	}

	var st = overlayStyles[slot]

	if len(text) > st.width {
		text = text[:st.width]
	}

	var cells []byte
	if st.right {
		cells = make([]byte, st.width)
		for i := range cells {
			cells[i] = overlayBlank
		}
		copy(cells[st.width-len(text):], text)
	} else {
		cells = []byte(text)
	}

	o.cells[slot] = cells

	return nil
}

// Text returns the slot text as set, after truncation.
func (o *Overlays) Text(slot OverlaySlot) string {
	if slot < 0 || slot >= overlaySlots {
		return ""
	}
	var cells = o.cells[slot]
	for len(cells) > 0 && cells[0] == overlayBlank {
		cells = cells[1:]
	}
	return string(cells)
}

/*------------------------------------------------------------------
 *
 * Name:	Render
 *
 * Purpose:	Draw one horizontal band of a slot into a block.
 *
 * Inputs:	blk	- Modified in place.
 *
 *		slot	- Which text.
 *
 *		part	- Which band of a zoomed text this block gets.
 *			  A 3x title is 39 pixels high and spans three
 *			  blocks, parts 0, 1 and 2.
 *
 *----------------------------------------------------------------*/

func (o *Overlays) Render(blk *Block, slot OverlaySlot, part int) {
	if slot < 0 || slot >= overlaySlots {
		return
	}

	var st = overlayStyles[slot]
	var text = o.cells[slot]

	var cw = fontWidth * st.zoom
	var r, g, b = uint8(st.color >> 16), uint8(st.color >> 8), uint8(st.color)

	for n, x := 0, overlayLeft; x <= ImageWidth-cw; n, x = n+1, x+cw {
		var chr byte
		if n < len(text) {
			chr = text[n]
		}
		if chr < fontFirst || chr > fontLast {
			continue
		}

		var glyph = &font8x13[chr]

		for i := range BlockHeight {
			var line = i/st.zoom + part*(BlockHeight/st.zoom)
			if line >= fontHeight {
				continue
			}

			var row = i
			if st.zoom == 1 {
				row++ // no zoom, one pixel down
			}

			var d = glyph[line]
			for j := range cw {
				var p = blk.Pix[(row*ImageWidth+x+j)*3:]
				if d&0x80 != 0 {
					p[0], p[1], p[2] = r, g, b
				} else {
					p[0] >>= 1
					p[1] >>= 1
					p[2] >>= 1
				}
				if j%st.zoom == st.zoom-1 {
					d <<= 1
				}
			}
		}
	}
}

// Apply draws every band that mode m places in blk.
func (o *Overlays) Apply(blk *Block, m *Mode) {
	for _, p := range m.Placements(blk.Index) {
		o.Render(blk, p.Slot, p.Part)
	}
}
