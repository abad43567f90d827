package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Bitmap font for the text overlay.
 *
 * Description:	Cells are 8 x 13 pixels, one byte per row, leftmost
 *		pixel in the most significant bit.  The glyphs come from
 *		the 7x13 X11 face in golang.org/x/image, placed one pixel
 *		in from the left edge of the cell.
 *
 *		Codes 31 .. 127 are drawn.  Codes without a glyph draw
 *		as a blank cell, which still shades the background.
 *
 *---------------------------------------------------------------*/

import (
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	fontWidth  = 8
	fontHeight = 13

	fontFirst = 31
	fontLast  = 127
)

var font8x13 = buildFont()

func buildFont() *[128][fontHeight]uint8 {
	var f = new([128][fontHeight]uint8)
	var face = basicfont.Face7x13

	for c := fontFirst; c <= fontLast; c++ {
		var dr, mask, maskp, _, ok = face.Glyph(fixed.P(0, face.Ascent), rune(c))
		if !ok {
			continue
		}

		for y := 0; y < dr.Dy() && dr.Min.Y+y < fontHeight; y++ {
			for x := 0; x < dr.Dx() && dr.Min.X+x+1 < fontWidth; x++ {
				var _, _, _, a = mask.At(maskp.X+x, maskp.Y+y).RGBA()
				if a >= 0x8000 {
					f[c][dr.Min.Y+y] |= 0x80 >> (dr.Min.X + x + 1)
				}
			}
		}
	}

	return f
}
