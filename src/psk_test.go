package satcam

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestPSKSymbolSamples(t *testing.T) {
	for baud, want := range map[int]int{
		31:   640,
		63:   320,
		125:  160,
		250:  80,
		500:  40,
		1000: 20,
		300:  160,
		0:    160,
	} {
		assert.Equal(t, want, PSKSymbolSamples(20000, baud), "baud %d", baud)
	}
}

func TestPSKSymbolShapes(t *testing.T) {
	var e, r = newRecordingEncoder(20000)
	const n = 160
	const vol = 10000

	e.PSKSymbol(n, 800, PSKStart, vol)
	require.Len(t, r.calls, n/2, "START is the back half of a reversal")
	assert.Equal(t, Q15(0), r.calls[0].ampl, "starts from zero")
	assert.Less(t, r.calls[n/2-1].ampl, Q15(-9990), "ends near full scale")

	r.calls = nil
	e.PSKSymbol(n, 800, PSKOne, vol)
	assert.Equal(t, []toneRun{{800, -vol, n}}, runs(r.calls), "a 1 keeps the phase")

	r.calls = nil
	e.PSKSymbol(n, 800, PSKZero, vol)
	require.Len(t, r.calls, n)
	assert.Equal(t, Q15(-9999), r.calls[0].ampl)
	assert.Greater(t, r.calls[n-1].ampl, Q15(9990), "a 0 reverses the phase")

	r.calls = nil
	e.PSKSymbol(n, 800, PSKStop, vol)
	require.Len(t, r.calls, n/2, "STOP is the front half of a reversal")
	assert.Greater(t, r.calls[0].ampl, Q15(9990))
	assert.InDelta(t, 0, int(r.calls[n/2-1].ampl), 200, "ends near zero")
}

// decodePSK recovers the bits of a framed message from the amplitudes:
// a symbol whose sign changes is a 0.
func decodePSK(t require.TestingT, calls []synthCall, samples int) string {
	require.GreaterOrEqual(t, len(calls), samples)

	// Skip the START half symbol and the STOP half symbol.
	var body = calls[samples/2 : len(calls)-samples/2]
	require.Zero(t, len(body)%samples, "whole number of symbols")

	var d VaricodeDecoder
	for i := 0; i < len(body); i += samples {
		var first, last = body[i].ampl, body[i+samples-1].ampl
		d.Bit((first < 0) == (last < 0))
	}
	return d.String()
}

func pskFrameSamples(sampleRate int, baud int, text string) int {
	var n = PSKSymbolSamples(sampleRate, baud)
	var sync = sampleRate / n

	var bits = len(VaricodeBits('\r'))*2 + len(VaricodeBits(' '))
	for i := 0; i < len(text); i++ {
		bits += len(VaricodeBits(text[i]))
	}

	return n/2 + sync*n + bits*n + sync*n + n/2
}

func TestPSKTextFrame(t *testing.T) {
	var e, r = newRecordingEncoder(20000)

	require.NoError(t, e.PSKText(context.Background(), 125, 800, "CQ PSAT", 10000))

	assert.Len(t, r.calls, pskFrameSamples(20000, 125, "CQ PSAT"))
	assert.Equal(t, "\rCQ PSAT\r", decodePSK(t, r.calls, 160))
	for _, c := range r.calls {
		require.Equal(t, 800, c.freq)
	}
}

func TestPSKTextRoundTrip(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var baud = rapid.SampledFrom([]int{31, 63, 125, 250, 500, 1000}).Draw(t, "baud")
		var text = string(rapid.SliceOfN(rapid.ByteRange(0, 127), 0, 20).Draw(t, "text"))

		var e, r = newRecordingEncoder(20000)
		require.NoError(t, e.PSKText(context.Background(), baud, 1000, text, 12000))

		assert.Len(t, r.calls, pskFrameSamples(20000, baud, text))
		assert.Equal(t, "\r"+text+"\r", decodePSK(t, r.calls, PSKSymbolSamples(20000, baud)))
	})
}

func TestPSKTextBadFrequency(t *testing.T) {
	for _, freq := range []int{0, 99, 5001} {
		var e, r = newRecordingEncoder(20000)
		require.NoError(t, e.PSKText(context.Background(), 1000, freq, "x", 10000))
		assert.Equal(t, DefaultPSKFreq, r.calls[0].freq, "freq %d", freq)
	}
}

func TestPSKTextTimeout(t *testing.T) {
	var ctx, cancel = context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	var e, r = newRecordingEncoder(20000)
	var err = e.PSKText(ctx, 250, 800, "never sent", 10000)

	assert.ErrorIs(t, err, ErrTimeout)
	assert.ErrorIs(t, err, context.DeadlineExceeded)

	// Still properly framed, just without the text.
	assert.Len(t, r.calls, pskFrameSamples(20000, 250, ""))
	assert.Equal(t, "\r\r", decodePSK(t, r.calls, 80))
}

func TestPSKTextCancelled(t *testing.T) {
	var ctx, cancel = context.WithCancel(context.Background())
	cancel()

	var e, r = newRecordingEncoder(20000)
	var err = e.PSKText(ctx, 250, 800, "never sent", 10000)

	assert.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrTimeout)
	assert.Len(t, r.calls, pskFrameSamples(20000, 250, ""))
}
