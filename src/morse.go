package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Generate audio for morse code.
 *
 * Description:	Timing is in units of one dot.  With the usual PARIS
 *		reference word a unit lasts 1.2 / wpm seconds:
 *
 *			dot			1 unit
 *			dash			3 units
 *			gap between elements	1 unit
 *			gap between characters	3 units
 *			gap between words	7 units
 *
 *		Each key down rises and falls along the PSK START and
 *		STOP half symbols of 10 ms, taken out of the element so
 *		its total length is still exact.  The phase restarts
 *		at zero for every element; CW has no reason to be
 *		coherent across gaps.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"fmt"
)

const (
	morseDit = 1
	morseDah = 3
	morseIEG = 1
	morseICG = 3
	morseIWG = 7
)

const (
	DefaultMorseWPM  = 25
	DefaultMorseFreq = 800

	minMorseWPM = 5
	maxMorseWPM = 40
)

// Rise and fall time of each element.
const morseShapingDivisor = 100 // 10 ms

type morse_s struct {
	ch  byte
	enc string
}

var morseTable = []morse_s{
	{'A', ".-"},
	{'B', "-..."},
	{'C', "-.-."},
	{'D', "-.."},
	{'E', "."},
	{'F', "..-."},
	{'G', "--."},
	{'H', "...."},
	{'I', ".."},
	{'J', ".---"},
	{'K', "-.-"},
	{'L', ".-.."},
	{'M', "--"},
	{'N', "-."},
	{'O', "---"},
	{'P', ".--."},
	{'Q', "--.-"},
	{'R', ".-."},
	{'S', "..."},
	{'T', "-"},
	{'U', "..-"},
	{'V', "...-"},
	{'W', ".--"},
	{'X', "-..-"},
	{'Y', "-.--"},
	{'Z', "--.."},
	{'1', ".----"},
	{'2', "..---"},
	{'3', "...--"},
	{'4', "....-"},
	{'5', "....."},
	{'6', "-...."},
	{'7', "--..."},
	{'8', "---.."},
	{'9', "----."},
	{'0', "-----"},
	{'.', ".-.-.-"},
	{',', "--..--"},
	{'?', "..--.."},
	{'/', "-..-."},
	{'=', "-...-"},
	{'-', "-....-"},
	{')', "-.--.-"},
	{'(', "-.--."},
	{':', "---..."},
	{';', "-.-.-."},
	{'"', ".-..-."},
	{'\'', ".----."},
	{'!', "-.-.--"},
	{'&', ".-..."},
	{'+', ".-.-."},
	{'_', "..--.-"},
	{'@', ".--.-."},

	/* Prosigns, as sent by the command layer. */
	{'#', "...-.-"}, // SK
	{'$', ".-.-."},  // AR
}

// morseEmpty is a code with no elements left, only the stop marker.
const morseEmpty = 0x80

/*
 * Codes are packed one per byte, read from the left.  0 is a dot, 1 a
 * dash.  The element list is followed by a single 1 bit and zeros, so
 * 'A' .- is 01100000.  After each element the byte shifts left, and
 * the character is done when only the marker remains.
 */
var morseCodes = func() [128]byte {
	var codes [128]byte
	for i := range codes {
		codes[i] = morseEmpty
	}

	for _, m := range morseTable {
		Assert(len(m.enc) < 8)

		var code byte
		for j, el := range m.enc {
			if el == '-' {
				code |= 0x80 >> j
			}
		}
		code |= 0x80 >> len(m.enc)

		codes[m.ch] = code
		if m.ch >= 'A' && m.ch <= 'Z' {
			codes[m.ch-'A'+'a'] = code
		}
	}

	return codes
}()

func morseCode(c byte) byte {
	if c >= 0x80 {
		return morseEmpty
	}
	return morseCodes[c]
}

// MorseUnit returns the length of a dot in samples.
// wpm is clamped to 5 .. 40.
func MorseUnit(sampleRate int, wpm int) int {
	wpm = max(minMorseWPM, min(wpm, maxMorseWPM))
	return (sampleRate * 6) / (5 * wpm)
}

// MorseUnits is the length of text in dot units, gaps included.
func MorseUnits(text string) int {
	var n = 0
	for i := 0; i < len(text); i++ {
		if text[i] == ' ' {
			n += morseIWG - morseICG
			continue
		}
		for code := morseCode(text[i]); code != morseEmpty; code <<= 1 {
			if code&0x80 != 0 {
				n += morseDah
			} else {
				n += morseDit
			}
			n += morseIEG
		}
		n += morseICG - morseIEG
	}
	return n
}

func (e *Encoder) morseKey(samples int, freq int, volume Q15) {
	var shaping = e.rate / morseShapingDivisor

	e.PSKSymbol(shaping, freq, PSKStart, volume)
	e.PSKSymbol(samples-shaping, freq, PSKOne, volume)
	e.PSKSymbol(shaping, freq, PSKStop, volume)

	e.synth.Reset()
}

/*------------------------------------------------------------------
 *
 * Name:	MorseText
 *
 * Purpose:	Given a string, generate appropriate lengths of
 *		tone and silence.
 *
 * Inputs:	ctx	- The deadline is checked before each character.
 *
 *		wpm	- Speed, clamped to 5 .. 40.
 *
 *		freq	- Tone in Hz.  Outside 100 .. 5000 the default
 *			  is used.
 *
 *		text	- Letters are case insensitive.  Characters
 *			  without a code are sent as a character gap.
 *
 * Returns:	ErrTimeout if the deadline cut the text short, or
 *		context.Canceled if ctx was cancelled.
 *
 *----------------------------------------------------------------*/

func (e *Encoder) MorseText(ctx context.Context, wpm int, freq int, text string, volume Q15) error {
	if freq < minToneFreq || freq > maxToneFreq {
		freq = DefaultMorseFreq
	}

	var unit = MorseUnit(e.rate, wpm)

	e.synth.Reset()

	for i := 0; i < len(text); i++ {
		if ctx.Err() != nil {
			return fmt.Errorf("morse stopped after %d of %d characters: %w", i, len(text), stopReason(ctx))
		}

		if text[i] == ' ' {
			// The character gap was already sent after the previous character.
			e.Silence((morseIWG - morseICG) * unit)
			continue
		}

		for code := morseCode(text[i]); code != morseEmpty; code <<= 1 {
			if code&0x80 != 0 {
				e.morseKey(morseDah*unit, freq, volume)
			} else {
				e.morseKey(morseDit*unit, freq, volume)
			}
			e.Silence(morseIEG * unit)
		}

		e.Silence((morseICG - morseIEG) * unit)
	}

	return nil
}
