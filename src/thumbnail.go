package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Send the stored thumbnails as one picture.
 *
 * Description:	Sixteen thumbnails of 80 x 60 pixels, RGB888, are kept
 *		in storage, number n at byte offset (2n + 1) * 64 KiB.
 *		They are arranged four by four into a 320 x 240 picture
 *		and read a row at a time, so no JPEG decoding is needed.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
)

const (
	ThumbWidth  = ImageWidth / 4
	ThumbHeight = 60
	ThumbCount  = 16

	thumbsPerRow = 4
	thumbBytes   = ThumbWidth * ThumbHeight * 3
	thumbRow     = ThumbWidth * 3
)

// ThumbnailOffset is where thumbnail n starts in storage.
func ThumbnailOffset(n int) int64 {
	return int64(n*2+1) << 16
}

type ThumbnailGrid struct {
	r io.ReaderAt
}

func NewThumbnailGrid(r io.ReaderAt) *ThumbnailGrid {
	return &ThumbnailGrid{r: r}
}

func (g *ThumbnailGrid) Width() int {
	return ImageWidth
}

func (g *ThumbnailGrid) Decompress(c BlockConsumer) error {
	var blk Block

	for row := range ThumbCount / thumbsPerRow {
		for y := range ThumbHeight {
			var line = row*ThumbHeight + y
			var dst = blk.Row(line % BlockHeight)

			for col := range thumbsPerRow {
				var n = row*thumbsPerRow + col
				var off = ThumbnailOffset(n) + int64(y*thumbRow)

				// A full read may still come with io.EOF at the end of storage.
				if got, err := g.r.ReadAt(dst[col*thumbRow:(col+1)*thumbRow], off); got < thumbRow {
					if err == nil {
						err = io.ErrUnexpectedEOF
					}
					return fmt.Errorf("%w: thumbnail %d line %d: %w", ErrDecode, n, y, err)
				}
			}

			if line%BlockHeight == BlockHeight-1 {
				blk.Index = line/BlockHeight + 1
				if err := c.ConsumeBlock(&blk); err != nil {
					return err
				}
			}
		}
	}

	return nil
}

// WriteThumbnail stores thumbnail n, as made by MakeThumbnail.
func WriteThumbnail(w io.WriterAt, n int, thumb []byte) error {
	if n < 0 || n >= ThumbCount {
		return fmt.Errorf("%w: thumbnail number %d, want 0 .. %d", ErrConfiguration, n, ThumbCount-1)
	}
	if len(thumb) != thumbBytes {
		return fmt.Errorf("%w: thumbnail is %d bytes, want %d", ErrConfiguration, len(thumb), thumbBytes)
	}

	if _, err := w.WriteAt(thumb, ThumbnailOffset(n)); err != nil {
		return fmt.Errorf("write thumbnail %d: %w", n, err)
	}

	return nil
}

// ThumbnailStorageSize is the smallest storage holding all thumbnails.
func ThumbnailStorageSize() int64 {
	return ThumbnailOffset(ThumbCount-1) + thumbBytes
}
