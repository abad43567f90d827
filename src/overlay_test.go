package satcam

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func pixel(blk *Block, x, y int) [3]uint8 {
	var p = blk.Row(y)[x*3:]
	return [3]uint8{p[0], p[1], p[2]}
}

func TestOverlaySetTruncates(t *testing.T) {
	var o Overlays

	require.NoError(t, o.Set(OverlayHeader, strings.Repeat("x", 50)))
	assert.Len(t, o.Text(OverlayHeader), 39)

	require.NoError(t, o.Set(OverlayTitle, "SATELLITE CAMERA"))
	assert.Equal(t, "SATELLITE CAM", o.Text(OverlayTitle))

	require.NoError(t, o.Set(OverlayTitle, ""))
	assert.Empty(t, o.Text(OverlayTitle))

	assert.ErrorIs(t, o.Set(OverlaySlot(7), "x"), ErrConfiguration)
}

func TestOverlayCallRightAligned(t *testing.T) {
	var o Overlays
	require.NoError(t, o.Set(OverlayCall, "N0CALL"))

	assert.Equal(t, "N0CALL", o.Text(OverlayCall))
	assert.Len(t, o.cells[OverlayCall], 19)

	var blk = grayBlock(255)
	o.Render(blk, OverlayCall, 0)

	// Padding is not drawn, so the left part of the block is untouched.
	for x := range 3 + 13*16 {
		for y := range BlockHeight {
			require.Equal(t, [3]uint8{255, 255, 255}, pixel(blk, x, y), "x %d y %d", x, y)
		}
	}

	// The text cells shade the background.
	assert.Equal(t, [3]uint8{127, 127, 127}, pixel(blk, 3+13*16, 0))
}

func TestOverlaySpaceShadesCell(t *testing.T) {
	var o Overlays
	require.NoError(t, o.Set(OverlayHeader, " "))

	var blk = grayBlock(200)
	o.Render(blk, OverlayHeader, 0)

	assert.Equal(t, [3]uint8{200, 200, 200}, pixel(blk, 3, 0), "zoom 1 starts one row down")
	assert.Equal(t, [3]uint8{200, 200, 200}, pixel(blk, 2, 5), "left margin")
	assert.Equal(t, [3]uint8{100, 100, 100}, pixel(blk, 3, 1))
	assert.Equal(t, [3]uint8{100, 100, 100}, pixel(blk, 10, 13))
	assert.Equal(t, [3]uint8{200, 200, 200}, pixel(blk, 11, 5), "next cell is empty")
	assert.Equal(t, [3]uint8{200, 200, 200}, pixel(blk, 3, 14))
}

func TestOverlayGlyphColor(t *testing.T) {
	var o Overlays
	require.NoError(t, o.Set(OverlayTitle, "H"))

	var blk = grayBlock(0)
	o.Render(blk, OverlayTitle, 0)

	var lit = 0
	for y := range BlockHeight {
		for x := 3; x < 3+24; x++ {
			switch pixel(blk, x, y) {
			case [3]uint8{0xff, 0xff, 0x00}:
				lit++
			case [3]uint8{0, 0, 0}:
			default:
				assert.Fail(t, "unexpected colour", "x %d y %d %v", x, y, pixel(blk, x, y))
			}
		}
	}
	assert.NotZero(t, lit, "title is drawn in yellow")
	assert.Zero(t, lit%3, "every lit pixel is tripled")
}

func TestOverlayApply(t *testing.T) {
	var o Overlays
	require.NoError(t, o.Set(OverlayHeader, "HEADER"))
	require.NoError(t, o.Set(OverlayFooter, "FOOTER"))

	var plain = grayBlock(90)

	var blk = grayBlock(90)
	blk.Index = 8
	o.Apply(blk, LookupMode(Robot36))
	assert.Equal(t, plain.Pix, blk.Pix, "nothing placed in block 8")

	blk.Index = 1
	o.Apply(blk, LookupMode(Robot36))
	assert.NotEqual(t, plain.Pix, blk.Pix, "header in block 1")

	var mp = grayBlock(90)
	mp.Index = 0
	o.Apply(mp, LookupMode(MP73))
	assert.Equal(t, blk.Pix, mp.Pix, "same header in block 0 of a 16 line mode")
}

func TestOverlaySetIdempotent(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var slot = OverlaySlot(rapid.IntRange(0, int(overlaySlots)-1).Draw(t, "slot"))
		var text = string(rapid.SliceOfN(rapid.ByteRange(' ', '~'), 0, 60).Draw(t, "text"))

		var a, b Overlays
		require.NoError(t, a.Set(slot, text))
		require.NoError(t, b.Set(slot, text))
		require.NoError(t, b.Set(slot, text))
		assert.Equal(t, a, b)

		var got = a.Text(slot)
		assert.True(t, strings.HasPrefix(text, got), "%q is not a prefix of %q", got, text)
		assert.LessOrEqual(t, len(got), overlayStyles[slot].width)

		var blkA, blkB = grayBlock(77), grayBlock(77)
		a.Render(blkA, slot, 0)
		b.Render(blkB, slot, 0)
		assert.Equal(t, blkA.Pix, blkB.Pix)
	})
}

func TestParseOverlaySlot(t *testing.T) {
	var s, err = ParseOverlaySlot("Call")
	require.NoError(t, err)
	assert.Equal(t, OverlayCall, s)
	assert.Equal(t, "call", s.String())

	_, err = ParseOverlaySlot("subtitle")
	assert.ErrorIs(t, err, ErrConfiguration)
}
