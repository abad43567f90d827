package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Feed a JPEG picture to the SSTV encoder block by block.
 *
 * Description:	PrepareJPEG decodes the whole picture, optionally scaled
 *		down by a power of two, so a damaged file is refused
 *		before anything is transmitted.  Decompress then hands
 *		the picture over in 16 line blocks.
 *		Rows left over at the bottom that do not fill a block
 *		are not sent, and neither is anything past the last
 *		block of the frame.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"image"
	"image/jpeg"
	"io"

	"golang.org/x/image/draw"
)

const maxJPEGScale = 3

type JPEGSource struct {
	img *image.RGBA

	// Before scaling.
	srcWidth int
}

/*------------------------------------------------------------------
 *
 * Name:	PrepareJPEG
 *
 * Inputs:	r	- Compressed picture.
 *
 *		scale	- 0 for full size, 1 .. 3 for 1/2, 1/4, 1/8.
 *
 * Returns:	ErrDecode if any part of the picture cannot be decoded.
 *
 *----------------------------------------------------------------*/

func PrepareJPEG(r io.Reader, scale int) (*JPEGSource, error) {
	if scale < 0 || scale > maxJPEGScale {
		return nil, fmt.Errorf("%w: jpeg scale %d, want 0 .. %d", ErrConfiguration, scale, maxJPEGScale)
	}

	var img, err = jpeg.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("%w: jpeg: %w", ErrDecode, err)
	}

	var b = img.Bounds()
	var dst = image.NewRGBA(image.Rect(0, 0, b.Dx()>>scale, b.Dy()>>scale))
	if scale == 0 {
		draw.Draw(dst, dst.Bounds(), img, b.Min, draw.Src)
	} else {
		draw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, b, draw.Src, nil)
	}

	return &JPEGSource{img: dst, srcWidth: b.Dx()}, nil
}

// Width is the width after scaling.
func (s *JPEGSource) Width() int {
	return s.img.Bounds().Dx()
}

func (s *JPEGSource) Height() int {
	return s.img.Bounds().Dy()
}

func (s *JPEGSource) Decompress(c BlockConsumer) error {
	var img = s.img

	if img.Bounds().Dx() != ImageWidth {
		return widthError(img.Bounds().Dx())
	}

	var blk Block
	for top := 0; top+BlockHeight <= img.Bounds().Dy(); top += BlockHeight {
		blk.Index = top/BlockHeight + 1
		if blk.Index > maxImageBlock {
			break
		}

		for y := range BlockHeight {
			var src = img.Pix[(top+y)*img.Stride:]
			var dst = blk.Row(y)
			for x := range ImageWidth {
				dst[x*3+0] = src[x*4+0]
				dst[x*3+1] = src[x*4+1]
				dst[x*3+2] = src[x*4+2]
			}
		}

		if err := c.ConsumeBlock(&blk); err != nil {
			return err
		}
	}

	return nil
}

// widthError is both a configuration and a decode problem: the
// picture decoded fine, but not into something we can send.
func widthError(width int) error {
	return fmt.Errorf("%w: %w: picture is %d pixels wide, need %d", ErrConfiguration, ErrDecode, width, ImageWidth)
}

/*------------------------------------------------------------------
 *
 * Name:	MakeThumbnail
 *
 * Purpose:	Reduce a full width JPEG picture to a thumbnail.
 *
 * Returns:	ThumbWidth x ThumbHeight pixels, RGB888.
 *
 *----------------------------------------------------------------*/

func MakeThumbnail(r io.Reader) ([]byte, error) {
	var src, err = PrepareJPEG(r, 2)
	if err != nil {
		return nil, err
	}

	if src.srcWidth != ImageWidth {
		return nil, widthError(src.srcWidth)
	}

	var img = src.img

	var thumb = make([]byte, thumbBytes)
	for y := 0; y < ThumbHeight && y < img.Bounds().Dy(); y++ {
		var row = img.Pix[y*img.Stride:]
		for x := range ThumbWidth {
			thumb[(y*ThumbWidth+x)*3+0] = row[x*4+0]
			thumb[(y*ThumbWidth+x)*3+1] = row[x*4+1]
			thumb[(y*ThumbWidth+x)*3+2] = row[x*4+2]
		}
	}

	return thumb, nil
}
