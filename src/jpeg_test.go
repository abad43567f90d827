package satcam

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func solidJPEG(t *testing.T, w, h int, c color.RGBA) []byte {
	t.Helper()

	var img = image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			img.SetRGBA(x, y, c)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 100}))
	return buf.Bytes()
}

// collectBlocks decodes src and returns copies of all blocks.
func collectBlocks(t *testing.T, src BlockSource) []Block {
	t.Helper()

	var out []Block
	require.NoError(t, src.Decompress(BlockConsumerFunc(func(b *Block) error {
		out = append(out, *b)
		return nil
	})))
	return out
}

func blockIndices(blocks []Block) []int {
	var out []int
	for _, b := range blocks {
		out = append(out, b.Index)
	}
	return out
}

func TestPrepareJPEG(t *testing.T) {
	var src, err = PrepareJPEG(bytes.NewReader(solidJPEG(t, 320, 240, color.RGBA{10, 20, 30, 255})), 0)
	require.NoError(t, err)

	assert.Equal(t, 320, src.Width())
	assert.Equal(t, 240, src.Height())
}

func TestPrepareJPEGErrors(t *testing.T) {
	var _, err = PrepareJPEG(bytes.NewReader([]byte("not a jpeg")), 0)
	assert.ErrorIs(t, err, ErrDecode)

	_, err = PrepareJPEG(bytes.NewReader(solidJPEG(t, 320, 240, color.RGBA{})), 6)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestPrepareJPEGTruncated(t *testing.T) {
	var data = solidJPEG(t, 320, 240, color.RGBA{70, 140, 210, 255})

	// The header is intact, the scan data is not.
	var _, err = PrepareJPEG(bytes.NewReader(data[:len(data)*3/4]), 0)
	assert.ErrorIs(t, err, ErrDecode)
}

func TestJPEGDecompressBlocks(t *testing.T) {
	for _, tc := range []struct {
		w, h   int
		scale  int
		blocks int
	}{
		{320, 240, 0, 15},
		{320, 256, 0, 15}, // frame is full after 15
		{320, 250, 0, 15}, // partial block dropped
		{320, 100, 0, 6},
		{640, 480, 1, 15},
		{1280, 960, 2, 15},
	} {
		var src, err = PrepareJPEG(bytes.NewReader(solidJPEG(t, tc.w, tc.h, color.RGBA{200, 100, 50, 255})), tc.scale)
		require.NoError(t, err)
		require.Equal(t, ImageWidth, src.Width())

		var blocks = collectBlocks(t, src)
		require.Len(t, blocks, tc.blocks, "%dx%d scale %d", tc.w, tc.h, tc.scale)

		for i, b := range blocks {
			assert.Equal(t, i+1, b.Index)
		}

		var p = pixel(&blocks[0], 160, 8)
		assert.InDelta(t, 200, int(p[0]), 6)
		assert.InDelta(t, 100, int(p[1]), 6)
		assert.InDelta(t, 50, int(p[2]), 6)
	}
}

func TestJPEGDecompressWrongWidth(t *testing.T) {
	var src, err = PrepareJPEG(bytes.NewReader(solidJPEG(t, 200, 240, color.RGBA{})), 0)
	require.NoError(t, err)

	err = src.Decompress(BlockConsumerFunc(func(*Block) error {
		assert.Fail(t, "no block expected")
		return nil
	}))
	assert.ErrorIs(t, err, ErrDecode)
	assert.ErrorIs(t, err, ErrConfiguration)
}

func TestJPEGConsumerErrorStops(t *testing.T) {
	var src, err = PrepareJPEG(bytes.NewReader(solidJPEG(t, 320, 240, color.RGBA{})), 0)
	require.NoError(t, err)

	var n = 0
	err = src.Decompress(BlockConsumerFunc(func(*Block) error {
		n++
		if n == 3 {
			return ErrInvariant
		}
		return nil
	}))
	assert.ErrorIs(t, err, ErrInvariant)
	assert.Equal(t, 3, n)
}

func TestMakeThumbnail(t *testing.T) {
	var thumb, err = MakeThumbnail(bytes.NewReader(solidJPEG(t, 320, 240, color.RGBA{40, 120, 220, 255})))
	require.NoError(t, err)
	require.Len(t, thumb, ThumbWidth*ThumbHeight*3)

	for i := 0; i < len(thumb); i += 3 {
		require.InDelta(t, 40, int(thumb[i+0]), 6, "pixel %d", i/3)
		require.InDelta(t, 120, int(thumb[i+1]), 6, "pixel %d", i/3)
		require.InDelta(t, 220, int(thumb[i+2]), 6, "pixel %d", i/3)
	}

	_, err = MakeThumbnail(bytes.NewReader(solidJPEG(t, 640, 480, color.RGBA{})))
	assert.ErrorIs(t, err, ErrConfiguration)
}
