package satcam

const (
	ImageWidth  = 320
	BlockHeight = 16

	blockBytes = ImageWidth * BlockHeight * 3
)

// Block is a horizontal slice of the picture, RGB888, rows top to bottom.
// Index counts blocks from the top of the transmitted frame.
type Block struct {
	Index int
	Pix   [blockBytes]uint8
}

// Row returns the RGB bytes of one row, 0 .. BlockHeight-1.
func (b *Block) Row(y int) []uint8 {
	return b.Pix[y*ImageWidth*3 : (y+1)*ImageWidth*3]
}

func (b *Block) Fill(r, g, bl uint8) {
	for i := 0; i < len(b.Pix); i += 3 {
		b.Pix[i+0] = r
		b.Pix[i+1] = g
		b.Pix[i+2] = bl
	}
}

// BlockConsumer receives decoded blocks in order.  Returning an error
// stops the decoder, which passes that error back to its caller.
type BlockConsumer interface {
	ConsumeBlock(b *Block) error
}

type BlockConsumerFunc func(b *Block) error

func (f BlockConsumerFunc) ConsumeBlock(b *Block) error {
	return f(b)
}

// BlockSource produces a picture one Block at a time.
type BlockSource interface {
	// Width of the picture in pixels, known before decoding starts.
	Width() int

	// Decompress hands every complete block to c, top to bottom.
	// The Block passed is reused for the next call.
	Decompress(c BlockConsumer) error
}
