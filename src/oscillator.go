package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Direct digital synthesis of one audio sample at a time.
 *
 * Description:	The phase accumulator is a Q31 fraction of one cycle,
 *		always kept in 0 .. 0x7fffffff.  The upper 15 bits index
 *		the sine table.
 *
 *		The increment for a frequency is computed as
 *
 *			(2**31 / sample_rate) * freq
 *
 *		with the division done first, in integers.  That loses
 *		a little frequency accuracy (about 0.1 Hz at 800 Hz and
 *		20 kHz) but the receivers expect exactly this.
 *
 *---------------------------------------------------------------*/

// Sample is one unsigned 8 bit DAC code.
type Sample uint8

// SampleBias is the mid rail value, a zero crossing of the carrier.
const SampleBias Sample = 0x80

const phaseMask = 0x7fffffff

// Synth produces one sample for a frequency and amplitude.
// The encoders talk to a Synth so that tests can record what they ask for.
type Synth interface {
	Next(freq int, ampl Q15) Sample
	Reset()
}

// Oscillator is the phase accumulating Synth.
type Oscillator struct {
	rate  int
	phase Q31
}

func NewOscillator(sampleRate int) *Oscillator {
	return &Oscillator{rate: sampleRate}
}

// Increment returns the per sample phase step for freq.
func (o *Oscillator) Increment(freq int) Q31 {
	return Q31((1<<31)/int64(o.rate)) * Q31(freq)
}

func (o *Oscillator) Phase() Q31 {
	return o.phase
}

func (o *Oscillator) Reset() {
	o.phase = 0
}

/*------------------------------------------------------------------
 *
 * Name:	Next
 *
 * Purpose:	Advance the phase and return the next sample.
 *
 * Inputs:	freq	- Tone frequency in Hz.  0 holds the phase.
 *
 *		ampl	- Peak amplitude.  Negative values invert
 *			  the carrier, as used for BPSK.
 *
 * Returns:	Sample biased around SampleBias.
 *
 *----------------------------------------------------------------*/

func (o *Oscillator) Next(freq int, ampl Q15) Sample {
	o.phase = Q31((int64(o.phase) + int64(o.Increment(freq))) & phaseMask)

	var y = int8((int32(SinQ15(Q15(o.phase>>16))) * int32(ampl)) >> 23)

	return Sample(uint8(y) ^ 0x80)
}
