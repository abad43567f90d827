package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	BPSK31 style text transmission.
 *
 * Description:	A 1 bit keeps the carrier phase for a whole symbol.
 *		A 0 bit reverses it.  The reversal is done by sweeping
 *		the amplitude along a cosine from full scale through
 *		zero to full scale of the opposite sign, so the spectrum
 *		stays narrow.
 *
 *		START and STOP are half reversals: START spends the back
 *		half of a symbol rising from zero, STOP spends the front
 *		half falling to zero.
 *
 *		A message is framed as
 *
 *			START
 *			about 1 second of 0 bits	(receiver sync)
 *			CR, text, CR
 *			space			(lets the last CR decode)
 *			about 1 second of 1 bits	(idle)
 *			STOP
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
)

type PSKSymbol int

const (
	PSKZero PSKSymbol = iota
	PSKOne
	PSKStart
	PSKStop
)

const DefaultPSKFreq = 800

const DefaultPSKBaud = 125

const (
	minToneFreq = 100
	maxToneFreq = 5000
)

// PSKSymbolSamples is the symbol length for one of the supported speeds.
// 31 and 63 stand for 31.25 and 62.5 baud.  Anything else gets 125 baud.
func PSKSymbolSamples(sampleRate int, baud int) int {
	switch baud {
	case 31:
		return int(float64(sampleRate) / 31.25)
	case 63:
		return int(float64(sampleRate) / 62.5)
	case 250, 500, 1000:
		return sampleRate / baud
	default:
		return sampleRate / DefaultPSKBaud
	}
}

func (e *Encoder) PSKSymbol(samples int, freq int, sym PSKSymbol, volume Q15) {
	if sym == PSKOne {
		e.Tone(samples, freq, volume*e.invert)
		return
	}

	if sym == PSKStart {
		e.invert = 1
	}

	var start, stop = 0, samples
	if sym == PSKStart {
		start = samples / 2
	}
	if sym == PSKStop {
		stop = samples / 2
	}

	for i := start; i < stop; i++ {
		var ampl = Q15((int32(volume) * int32(CosQ15(Q15((0x4000*i)/samples)))) >> 15)
		e.emit(freq, ampl*e.invert)
	}

	e.invert = -e.invert
}

// PSKChar sends the separator and Varicode for one character.
func (e *Encoder) PSKChar(samples int, freq int, c byte, volume Q15) {
	for _, one := range VaricodeBits(c) {
		if one {
			e.PSKSymbol(samples, freq, PSKOne, volume)
		} else {
			e.PSKSymbol(samples, freq, PSKZero, volume)
		}
	}
}

/*------------------------------------------------------------------
 *
 * Name:	PSKText
 *
 * Purpose:	Send a complete framed message.
 *
 * Inputs:	ctx	- The deadline is checked before each character.
 *
 *		baud	- 31, 63, 125, 250, 500 or 1000.
 *
 *		freq	- Carrier in Hz.  Outside 100 .. 5000 the
 *			  default is used.
 *
 * Returns:	ErrTimeout if the deadline cut the text short, or
 *		context.Canceled if ctx was cancelled.  The framing
 *		after the text is sent either way.
 *
 *----------------------------------------------------------------*/

func (e *Encoder) PSKText(ctx context.Context, baud int, freq int, text string, volume Q15) error {
	if freq < minToneFreq || freq > maxToneFreq {
		freq = DefaultPSKFreq
	}

	var samples = PSKSymbolSamples(e.rate, baud)
	var syncLen = e.rate / samples

	e.PSKSymbol(samples, freq, PSKStart, volume)
	for range syncLen {
		e.PSKSymbol(samples, freq, PSKZero, volume)
	}
	e.PSKChar(samples, freq, '\r', volume)

	var err error
	for i := 0; i < len(text); i++ {
		if ctx.Err() != nil {
			err = fmt.Errorf("psk stopped after %d of %d characters: %w", i, len(text), stopReason(ctx))
			break
		}
		e.PSKChar(samples, freq, text[i], volume)
	}

	e.PSKChar(samples, freq, '\r', volume)
	e.PSKChar(samples, freq, ' ', volume)
	for range syncLen {
		e.PSKSymbol(samples, freq, PSKOne, volume)
	}
	e.PSKSymbol(samples, freq, PSKStop, volume)

	return err
}
