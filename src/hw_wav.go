package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Send the generated audio to a .WAV file rather than a
 *		sound card or DAC.
 *
 * Description:	Samples are collected in memory while the drain runs and
 *		written out, 8 bit unsigned mono, when the file is
 *		closed.  A complete SSTV picture is only a few megabytes
 *		at the usual sample rate.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

const wavFormatPCM = 1

type WAVHardware struct {
	CaptureHardware

	path string
	rate int
}

func NewWAVHardware(path string, sampleRate int) *WAVHardware {
	return &WAVHardware{path: path, rate: sampleRate}
}

// Close writes everything played so far to the file.
func (h *WAVHardware) Close() (rerr error) {
	var f, err = os.Create(h.path)
	if err != nil {
		return fmt.Errorf("wav output: %w", err)
	}
	defer func() {
		if err := f.Close(); err != nil && rerr == nil {
			rerr = fmt.Errorf("wav output: %w", err)
		}
	}()

	var enc = wav.NewEncoder(f, h.rate, 8, 1, wavFormatPCM)

	var data = make([]int, len(h.Output))
	for i, v := range h.Output {
		data[i] = int(v)
	}

	var buf = &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: 1, SampleRate: h.rate},
		Data:           data,
		SourceBitDepth: 8,
	}

	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wav output: %w", err)
	}

	if err := enc.Close(); err != nil {
		return fmt.Errorf("wav output: %w", err)
	}

	return nil
}
