package satcam

// TestPattern is a 320 x 240 picture of colour bars for lining up a
// receiver: seven 75% bars over most of the frame, a grey ramp below.
type TestPattern struct{}

var barColors = [7][3]uint8{
	{192, 192, 192}, // grey
	{192, 192, 0},   // yellow
	{0, 192, 192},   // cyan
	{0, 192, 0},     // green
	{192, 0, 192},   // magenta
	{192, 0, 0},     // red
	{0, 0, 192},     // blue
}

// Blocks from this one on carry the ramp.
const testPatternRampBlock = 12

func (TestPattern) Width() int {
	return ImageWidth
}

func (TestPattern) Decompress(c BlockConsumer) error {
	var blk Block
	var barWidth = ImageWidth / len(barColors)

	for blk.Index = 1; blk.Index <= maxImageBlock; blk.Index++ {
		for y := range BlockHeight {
			var row = blk.Row(y)
			for x := range ImageWidth {
				var p = row[x*3 : x*3+3]
				if blk.Index >= testPatternRampBlock {
					var v = uint8(x * 255 / (ImageWidth - 1))
					p[0], p[1], p[2] = v, v, v
					continue
				}
				var bar = min(x/barWidth, len(barColors)-1)
				p[0], p[1], p[2] = barColors[bar][0], barColors[bar][1], barColors[bar][2]
			}
		}

		if err := c.ConsumeBlock(&blk); err != nil {
			return err
		}
	}

	return nil
}
