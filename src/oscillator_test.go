package satcam

import (
	"math/cmplx"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/dsp/fourier"
	"pgregory.net/rapid"
)

func TestOscillatorIncrement(t *testing.T) {
	var o = NewOscillator(20000)

	assert.Equal(t, Q31(107374*800), o.Increment(800), "division happens before the multiply")
	assert.Equal(t, Q31(0), o.Increment(0))
}

func TestOscillatorPhaseStaysInRange(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var rate = rapid.SampledFrom([]int{8000, 11025, 20000, 44100, 48000}).Draw(t, "rate")
		var freqs = rapid.SliceOfN(rapid.IntRange(0, 5000), 1, 200).Draw(t, "freqs")

		var o = NewOscillator(rate)
		for _, f := range freqs {
			o.Next(f, Q15One)
			assert.GreaterOrEqual(t, o.Phase(), Q31(0))
			assert.LessOrEqual(t, o.Phase(), Q31(phaseMask))
		}
	})
}

func TestOscillatorPhaseAdvance(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var freq = rapid.IntRange(1, 5000).Draw(t, "freq")
		var n = rapid.IntRange(1, 1000).Draw(t, "n")

		var o = NewOscillator(20000)
		for range n {
			o.Next(freq, Q15One)
		}

		var want = (int64(o.Increment(freq)) * int64(n)) & phaseMask
		assert.Equal(t, Q31(want), o.Phase())
	})
}

func TestOscillatorZeroAmplitudeIsBias(t *testing.T) {
	var o = NewOscillator(20000)
	for range 100 {
		assert.Equal(t, SampleBias, o.Next(1234, 0))
	}
}

func TestOscillatorReset(t *testing.T) {
	var o = NewOscillator(20000)
	o.Next(800, Q15One)
	require.NotZero(t, o.Phase())

	o.Reset()
	assert.Zero(t, o.Phase())

	// Holding a zero frequency after a reset stays on the bias.
	assert.Equal(t, SampleBias, o.Next(0, Q15One))
}

func TestOscillatorNegativeAmplitudeInverts(t *testing.T) {
	var a, b = NewOscillator(20000), NewOscillator(20000)

	for range 200 {
		var pos = int(a.Next(800, 16384)) - int(SampleBias)
		var neg = int(b.Next(800, -16384)) - int(SampleBias)
		assert.InDelta(t, -pos, neg, 1)
	}
}

// peakFrequency is the strongest frequency in the samples, in Hz.
func peakFrequency(samples []Sample, sampleRate int) float64 {
	var seq = make([]float64, len(samples))
	for i, v := range samples {
		seq[i] = float64(int(v) - int(SampleBias))
	}

	var fft = fourier.NewFFT(len(seq))
	var coeff = fft.Coefficients(nil, seq)

	var best = 1
	for i := 1; i < len(coeff); i++ {
		if cmplx.Abs(coeff[i]) > cmplx.Abs(coeff[best]) {
			best = i
		}
	}

	return fft.Freq(best) * float64(sampleRate)
}

func TestOscillatorTone(t *testing.T) {
	const rate = 20000

	for _, freq := range []int{800, 1200, 1500, 1900, 2300} {
		var o = NewOscillator(rate)
		var out = make([]Sample, rate)
		for i := range out {
			out[i] = o.Next(freq, Q15FromFloat(0.9))
		}

		assert.InDelta(t, float64(freq), peakFrequency(out, rate), 1.5, "tone %d Hz", freq)
	}
}
