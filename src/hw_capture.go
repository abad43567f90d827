package satcam

import "fmt"

// CaptureHardware plays the sample ring into memory instead of a DAC.
//
// Time only moves when the Sink waits: every Wait completes the half
// being drained, appends it to Output and moves on to the other half.
// A drain that never advances would hang a real transmitter, so the
// Sink is expected to call Wait only at its two buffer boundaries.
type CaptureHardware struct {
	Output []Sample

	buf       []Sample
	running   bool
	draining  Half
	handed    [2]bool
	underruns int
	starts    int
}

func NewCaptureHardware() *CaptureHardware {
	return &CaptureHardware{}
}

func (h *CaptureHardware) StartDrain(buf []Sample) error {
	if len(buf) != BufferLen {
		return fmt.Errorf("%w: drain buffer has %d samples, want %d", ErrInvariant, len(buf), BufferLen)
	}
	h.buf = buf
	h.running = true
	h.draining = FirstHalf
	h.handed = [2]bool{true, false}
	h.starts++
	return nil
}

func (h *CaptureHardware) Filled(half Half) {
	h.handed[half] = true
}

// StopDrain lets the half in progress finish, then halts.
func (h *CaptureHardware) StopDrain() error {
	if h.running {
		h.complete()
	}
	h.running = false
	return nil
}

func (h *CaptureHardware) Running() bool {
	return h.running
}

func (h *CaptureHardware) Draining() Half {
	return h.draining
}

func (h *CaptureHardware) Wait() {
	if h.running {
		h.complete()
	}
}

// Consumed is the number of samples played so far.
func (h *CaptureHardware) Consumed() int {
	return len(h.Output)
}

// Underruns counts halves played before the producer handed them over.
func (h *CaptureHardware) Underruns() int {
	return h.underruns
}

// Starts counts StartDrain calls.
func (h *CaptureHardware) Starts() int {
	return h.starts
}

func (h *CaptureHardware) complete() {
	if !h.handed[h.draining] {
		h.underruns++
	}
	h.handed[h.draining] = false

	var off = int(h.draining) * halfBufferLen
	h.Output = append(h.Output, h.buf[off:off+halfBufferLen]...)

	if h.draining == FirstHalf {
		h.draining = SecondHalf
	} else {
		h.draining = FirstHalf
	}
}
