package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Fixed point helpers for the waveform generator.
 *
 * Description:	Q15 is a signed 16 bit fraction, Q31 a signed 32 bit
 *		fraction.  Angles are expressed as a Q15 fraction of one
 *		full turn, so 0 .. 0x7fff covers 0 .. 2*pi.
 *
 *		The sine is a 512 entry table with linear interpolation
 *		between neighbours.  The truncation of every step matters:
 *		generated audio must be bit exact from one build to the next.
 *
 *---------------------------------------------------------------*/

import "math"

type Q15 int16

type Q31 int32

const Q15One = 0x7fff

const sineTableSize = 512

// Number of low angle bits below the table index.
const sineTableShift = 6

var sineTable [sineTableSize + 1]Q15

func init() {
	for j := range sineTable {
		var s = math.Round(math.Sin(2*math.Pi*float64(j)/sineTableSize) * 32768)
		if s > 32767 {
			s = 32767
		}
		if s < -32768 {
			s = -32768
		}
		sineTable[j] = Q15(s)
	}
}

/*------------------------------------------------------------------
 *
 * Name:	SinQ15
 *
 * Purpose:	Sine of an angle.
 *
 * Inputs:	x	- Angle as Q15 fraction of a turn.  Values outside
 *			  0 .. 0x7fff are wrapped.
 *
 * Returns:	Sine as Q15.
 *
 *----------------------------------------------------------------*/

func SinQ15(x Q15) Q15 {
	var ux = int32(uint16(x) & 0x7fff)

	var index = ux >> sineTableShift
	var fract = (ux - index<<sineTableShift) << 9

	var a = int32(sineTable[index])
	var b = int32(sineTable[index+1])

	var s = int16(((0x8000 - fract) * a) >> 16)
	s = int16(((int32(s) << 16) + fract*b) >> 16)

	return Q15(s << 1)
}

// CosQ15 is SinQ15 advanced by a quarter turn.
func CosQ15(x Q15) Q15 {
	return SinQ15(Q15((uint16(x) + 0x2000) & 0x7fff))
}

// Q15FromFloat converts a fraction of full scale, 0.0 .. 1.0, to Q15.
// Out of range values are clamped.
func Q15FromFloat(f float64) Q15 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return Q15One
	}
	return Q15(f * Q15One)
}
