package satcam

import "time"

// Encoder holds everything one playback needs to turn symbols into
// samples.  A new one is made for each playback and thrown away after.
type Encoder struct {
	synth Synth
	out   SampleSink
	rate  int

	// Carrier polarity for PSK, +1 or -1.
	invert Q15
}

func NewEncoder(synth Synth, out SampleSink, sampleRate int) *Encoder {
	return &Encoder{
		synth:  synth,
		out:    out,
		rate:   sampleRate,
		invert: 1,
	}
}

func (e *Encoder) SampleRate() int {
	return e.rate
}

// Samples converts a duration to a whole number of samples, truncating.
func (e *Encoder) Samples(d time.Duration) int {
	return int(int64(e.rate) * d.Microseconds() / 1_000_000)
}

func (e *Encoder) emit(freq int, ampl Q15) {
	e.out.Feed(e.synth.Next(freq, ampl))
}

// Tone plays a steady carrier.  A zero frequency holds the phase, which
// after a phase reset gives silence at the bias level.
func (e *Encoder) Tone(samples int, freq int, volume Q15) {
	for range samples {
		e.emit(freq, volume)
	}
}

// Silence holds the output at the bias level.
func (e *Encoder) Silence(samples int) {
	e.Tone(samples, 0, 0)
}

/*------------------------------------------------------------------
 *
 * Name:	Line
 *
 * Purpose:	Sonify one row of pixel intensities.
 *
 * Inputs:	samples	- Length of the segment.
 *
 *		row	- Intensities 0 .. 255, any width.
 *
 * Description:	Sample i reads column i*width/samples, so a row is
 *		stretched or squeezed to fill the segment exactly.
 *
 *----------------------------------------------------------------*/

func (e *Encoder) Line(samples int, row []uint8, volume Q15) {
	var width = len(row)
	for i := range samples {
		e.emit(LineFrequency(row[i*width/samples]), volume)
	}
}

// LineFrequency maps an intensity onto 1500 .. 2300 Hz.
func LineFrequency(v uint8) int {
	return 1500 + (2300-1500)*int(v)/255
}
