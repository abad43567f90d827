package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Turn one decoded block into SSTV audio.
 *
 * Description:	Luma is Y = (30 R + 59 G + 11 B) / 100.  The colour
 *		difference lines carry (C - Y + 255) / 2 so that a grey
 *		pixel lands in the middle of the range.  In two line
 *		modes Y and C are averaged over both lines of the group
 *		first.
 *
 *---------------------------------------------------------------*/

// Offsets of the colour channels within an RGB pixel.
const (
	chromaRY = 0
	chromaBY = 2
)

func Luma(r, g, b uint8) uint8 {
	return uint8((uint16(r)*30 + uint16(g)*59 + uint16(b)*11) / 100)
}

// Chroma is the colour difference of channel value c against luma y.
func Chroma(c, y uint8) uint8 {
	return uint8((int(c) - int(y) + 255) / 2)
}

// scanlines is the per group working storage.
type scanlines struct {
	luma   [2][ImageWidth]uint8
	chroma [ImageWidth]uint8
}

func (s *scanlines) computeLuma(blk *Block, y int, lines int) {
	for l := range lines {
		var row = blk.Row(y + l)
		for x := range ImageWidth {
			s.luma[l][x] = Luma(row[x*3+0], row[x*3+1], row[x*3+2])
		}
	}
}

func (s *scanlines) computeChroma(blk *Block, y int, lines int, channel int) {
	var row0 = blk.Row(y)

	if lines == 1 {
		for x := range ImageWidth {
			s.chroma[x] = Chroma(row0[x*3+channel], s.luma[0][x])
		}
		return
	}

	var row1 = blk.Row(y + 1)
	for x := range ImageWidth {
		var yy = uint8((uint16(s.luma[0][x]) + uint16(s.luma[1][x])) / 2)
		var c = uint8((uint16(row0[x*3+channel]) + uint16(row1[x*3+channel])) / 2)
		s.chroma[x] = Chroma(c, yy)
	}
}

/*------------------------------------------------------------------
 *
 * Name:	EncodeBlock
 *
 * Purpose:	Send all lines of a block in the given mode.
 *
 * Inputs:	m	- Mode descriptor.
 *
 *		blk	- Picture data, overlay already applied.
 *
 *		volume	- Peak amplitude.
 *
 *----------------------------------------------------------------*/

func (e *Encoder) EncodeBlock(m *Mode, blk *Block, volume Q15) {
	var s scanlines

	for y := 0; y+m.GroupLines <= BlockHeight; y += m.GroupLines {
		s.computeLuma(blk, y, m.GroupLines)

		for _, seg := range m.Segments {
			var n = e.Samples(seg.Duration)

			switch seg.Kind {
			case SegmentTone:
				e.Tone(n, seg.Freq, volume)
			case SegmentLuma:
				e.Line(n, s.luma[seg.Line][:], volume)
			case SegmentChromaR:
				s.computeChroma(blk, y, m.GroupLines, chromaRY)
				e.Line(n, s.chroma[:], volume)
			case SegmentChromaB:
				s.computeChroma(blk, y, m.GroupLines, chromaBY)
				e.Line(n, s.chroma[:], volume)
			}
		}
	}
}
