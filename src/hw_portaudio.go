package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Play the sample ring on a sound card through PortAudio.
 *
 * Description:	The PortAudio callback stands in for the DMA engine.
 *		It reads the ring in order, converts each 8 bit code to
 *		a signed 16 bit sample and raises the half complete and
 *		full complete signals exactly where the DMA would.
 *
 *		The callback runs on another thread.  The producer
 *		publishes each half it has written by bumping an atomic
 *		count, and the callback loads that count before it
 *		reads the half.  A half that has not been published
 *		yet is not played; silence goes out until it is.
 *
 *		If no signal arrives for several polls in a row the
 *		stream is taken to be dead and Running turns false,
 *		so a waiting producer gives up instead of hanging.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gordonklaus/portaudio"
)

const portAudioFramesPerBuffer = 256

const portAudioWaitPoll = 500 * time.Millisecond

// Polls without a signal before the stream counts as dead.
const portAudioMaxMissedPolls = 4

type PortAudioHardware struct {
	rate   int
	device int

	stream *portaudio.Stream
	poll   time.Duration

	buf      []Sample
	pos      int
	draining atomic.Int32
	running  atomic.Bool
	stalled  atomic.Bool
	signal   chan struct{}

	// Halves published by the producer and halves started by the
	// callback since StartDrain.
	filled  atomic.Uint64
	started uint64

	missed int
}

// NewPortAudioHardware plays on the given output device index, or on
// the default output device when device is negative.
func NewPortAudioHardware(sampleRate int, device int) *PortAudioHardware {
	return &PortAudioHardware{
		rate:   sampleRate,
		device: device,
		poll:   portAudioWaitPoll,
		signal: make(chan struct{}, 1),
	}
}

func (h *PortAudioHardware) StartDrain(buf []Sample) error {
	if err := portaudio.Initialize(); err != nil {
		return fmt.Errorf("portaudio: %w", err)
	}

	h.reset(buf)

	var stream, err = h.open()
	if err != nil {
		portaudio.Terminate() //nolint:errcheck
		return err
	}

	h.stream = stream
	h.running.Store(true)

	if err := stream.Start(); err != nil {
		h.running.Store(false)
		stream.Close()        //nolint:errcheck
		portaudio.Terminate() //nolint:errcheck
		return fmt.Errorf("portaudio: start stream: %w", err)
	}

	return nil
}

// reset gets ready to play buf, first half already filled.
func (h *PortAudioHardware) reset(buf []Sample) {
	h.buf = buf
	h.pos = 0
	h.started = 0
	h.missed = 0
	h.stalled.Store(false)
	h.draining.Store(int32(FirstHalf))
	h.filled.Store(1)
}

func (h *PortAudioHardware) open() (*portaudio.Stream, error) {
	if h.device < 0 {
		var stream, err = portaudio.OpenDefaultStream(0, 1, float64(h.rate), portAudioFramesPerBuffer, h.callback)
		if err != nil {
			return nil, fmt.Errorf("portaudio: open default stream: %w", err)
		}
		return stream, nil
	}

	var devices, err = portaudio.Devices()
	if err != nil {
		return nil, fmt.Errorf("portaudio: list devices: %w", err)
	}

	if h.device >= len(devices) {
		return nil, fmt.Errorf("%w: audio device %d does not exist, %d available", ErrConfiguration, h.device, len(devices))
	}

	var device = devices[h.device]

	var params = portaudio.StreamParameters{
		Output: portaudio.StreamDeviceParameters{
			Device:   device,
			Channels: 1,
			Latency:  device.DefaultHighOutputLatency,
		},
		SampleRate:      float64(h.rate),
		FramesPerBuffer: portAudioFramesPerBuffer,
	}

	stream, err := portaudio.OpenStream(params, h.callback)
	if err != nil {
		return nil, fmt.Errorf("portaudio: open %s: %w", device.Name, err)
	}

	return stream, nil
}

func (h *PortAudioHardware) callback(out []int16) {
	for i := range out {
		if h.pos%halfBufferLen == 0 {
			var filled = h.filled.Load()
			if filled <= h.started {
				out[i] = 0
				continue
			}
			h.started++
		}

		out[i] = int16(int(h.buf[h.pos])-int(SampleBias)) << 8
		h.pos++

		switch h.pos {
		case halfBufferLen:
			h.draining.Store(int32(SecondHalf))
			h.notify()
		case BufferLen:
			h.pos = 0
			h.draining.Store(int32(FirstHalf))
			h.notify()
		}
	}
}

func (h *PortAudioHardware) Filled(Half) {
	h.filled.Add(1)
}

func (h *PortAudioHardware) notify() {
	select {
	case h.signal <- struct{}{}:
	default:
	}
}

func (h *PortAudioHardware) StopDrain() error {
	if !h.running.Swap(false) {
		return nil
	}

	var err = h.stream.Stop()
	if cerr := h.stream.Close(); err == nil {
		err = cerr
	}
	if terr := portaudio.Terminate(); err == nil {
		err = terr
	}

	if err != nil {
		return fmt.Errorf("portaudio: stop: %w", err)
	}
	return nil
}

func (h *PortAudioHardware) Running() bool {
	return h.running.Load() && !h.stalled.Load()
}

func (h *PortAudioHardware) Draining() Half {
	return Half(h.draining.Load())
}

func (h *PortAudioHardware) Wait() {
	select {
	case <-h.signal:
		h.missed = 0
	case <-time.After(h.poll):
		h.missed++
		if h.missed >= portAudioMaxMissedPolls {
			h.stalled.Store(true)
		}
	}
}
