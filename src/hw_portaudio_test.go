package satcam

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// The callback is driven by hand here; no sound card is opened.

func TestPortAudioCallbackWaitsForFilledHalf(t *testing.T) {
	var buf = make([]Sample, BufferLen)
	for i := range buf {
		buf[i] = SampleBias + 1
	}

	var h = NewPortAudioHardware(8000, -1)
	h.reset(buf)

	var out = make([]int16, halfBufferLen+10)
	h.callback(out)

	assert.Equal(t, int16(1<<8), out[0])
	assert.Equal(t, int16(1<<8), out[halfBufferLen-1])
	assert.Equal(t, []int16{0, 0, 0, 0, 0, 0, 0, 0, 0, 0}, out[halfBufferLen:], "second half not handed over")
	assert.Equal(t, SecondHalf, h.Draining())
	assert.Equal(t, halfBufferLen, h.pos)

	h.Filled(SecondHalf)
	h.callback(out[:halfBufferLen])

	assert.Equal(t, int16(1<<8), out[0])
	assert.Equal(t, int16(1<<8), out[halfBufferLen-1])
	assert.Equal(t, FirstHalf, h.Draining(), "wrapped")
	assert.Equal(t, 0, h.pos)
}

func TestPortAudioCallbackSignals(t *testing.T) {
	var h = NewPortAudioHardware(8000, -1)
	h.reset(make([]Sample, BufferLen))
	h.running.Store(true)

	h.callback(make([]int16, halfBufferLen))

	var done = make(chan struct{})
	go func() {
		h.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		require.Fail(t, "half complete signal not raised")
	}
	assert.True(t, h.Running())
}

func TestPortAudioStall(t *testing.T) {
	var h = NewPortAudioHardware(8000, -1)
	h.poll = time.Millisecond
	h.reset(make([]Sample, BufferLen))
	h.running.Store(true)

	for range portAudioMaxMissedPolls - 1 {
		h.Wait()
	}
	assert.True(t, h.Running(), "a few quiet polls are fine")

	h.Wait()
	assert.False(t, h.Running(), "stream counts as dead")

	// Nothing to halt: the stream was never opened.
	h.running.Store(false)
	assert.NoError(t, h.StopDrain())
}
