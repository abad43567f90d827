package satcam

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"
)

func TestSinQ15_KnownAngles(t *testing.T) {
	assert.Equal(t, Q15(0), SinQ15(0))
	assert.Equal(t, Q15(32766), SinQ15(0x2000), "quarter turn")
	assert.Equal(t, Q15(0), SinQ15(0x4000), "half turn")
	assert.Equal(t, Q15(-32768), SinQ15(0x6000), "three quarter turn")
	assert.Equal(t, Q15(23170), SinQ15(0x1000), "eighth turn")
}

func TestCosQ15_KnownAngles(t *testing.T) {
	assert.Equal(t, Q15(32766), CosQ15(0))
	assert.Equal(t, Q15(-32768), CosQ15(0x4000))
	assert.Equal(t, SinQ15(0x3000), CosQ15(0x1000))
}

func TestSinQ15_Wraps(t *testing.T) {
	assert.Equal(t, SinQ15(0x1234), SinQ15(Q15(-0x8000+0x1234)))
}

func TestSinQ15_CloseToSine(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		var x = rapid.IntRange(0, 0x7fff).Draw(t, "x")

		var want = math.Sin(2*math.Pi*float64(x)/0x8000) * 32768
		var got = float64(SinQ15(Q15(x)))

		assert.InDelta(t, want, got, 8, "angle %#x", x)
	})
}

func TestQ15FromFloat(t *testing.T) {
	assert.Equal(t, Q15(0), Q15FromFloat(-1))
	assert.Equal(t, Q15(0), Q15FromFloat(0))
	assert.Equal(t, Q15(16383), Q15FromFloat(0.5))
	assert.Equal(t, Q15(Q15One), Q15FromFloat(1))
	assert.Equal(t, Q15(Q15One), Q15FromFloat(3))
}
