package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Double buffered sample output.
 *
 * Description:	The hardware drains a ring of BufferLen samples on its
 *		own, raising a signal each time it finishes a half.
 *		We fill one half while the other one is being played.
 *
 *		  idx == half:	If the drain is not running yet, start
 *				it.  Otherwise hand the first half over
 *				and wait until the hardware has moved
 *				on to it.
 *
 *		  idx == len:	Hand the second half over, wait until
 *				the hardware is playing it, then wrap
 *				to zero.
 *
 *		The producer can therefore never be more than half a
 *		buffer ahead of what the hardware is playing, and the
 *		hardware never plays a half we are still writing.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
)

const BufferLen = 4096

const halfBufferLen = BufferLen / 2

// Half identifies one half of the sample ring.
type Half int

const (
	FirstHalf Half = iota
	SecondHalf
)

// Hardware is the asynchronous drain behind a Sink.
type Hardware interface {
	// StartDrain begins cyclic playback of buf from index 0.  The
	// first half is already filled and is being played when it returns.
	StartDrain(buf []Sample) error

	// Filled hands over a half the producer has just written.  The
	// drain must not play a half before it has been handed over.
	Filled(half Half)

	// StopDrain halts playback.  It is also called after the drain
	// stopped on its own.
	StopDrain() error

	// Running reports whether a drain is in progress.
	Running() bool

	// Draining tells which half is being played right now.
	Draining() Half

	// Wait blocks until the next half complete or full complete signal.
	Wait()
}

// SampleSink accepts samples in emission order.
type SampleSink interface {
	Feed(v Sample)
}

type Sink struct {
	hw  Hardware
	ptt *PTT

	buf []Sample
	idx int

	// StartDrain has been called since Start.
	started bool

	fed uint64
	err error
}

func NewSink(hw Hardware, ptt *PTT) *Sink {
	return &Sink{
		hw:  hw,
		ptt: ptt,
		buf: make([]Sample, BufferLen),
	}
}

/*------------------------------------------------------------------
 *
 * Name:	Start
 *
 * Purpose:	Begin a transmission.
 *
 * Description:	Rises from 0 to the bias level along half a cosine
 *		over one buffer length so the transmitter does not
 *		hear a click, then keys the transmitter.
 *
 *----------------------------------------------------------------*/

func (s *Sink) Start() error {
	if s.hw.Running() {
		return fmt.Errorf("%w: drain already running at start", ErrInvariant)
	}

	s.idx = 0
	s.fed = 0
	s.err = nil
	s.started = false

	const step = 0x4000 / BufferLen

	for i := range BufferLen {
		var theta = Q15(i * step)
		var ramp = int32(CosQ15(theta+0x4000))/2 + 0x4000
		s.Feed(Sample(ramp >> 8))
	}

	if err := s.ptt.Set(true); err != nil {
		s.fail(err)
	}

	return s.err
}

func (s *Sink) Feed(v Sample) {
	s.buf[s.idx] = v
	s.idx++
	s.fed++

	switch s.idx {
	case halfBufferLen:
		if !s.started {
			s.started = true
			if err := s.hw.StartDrain(s.buf); err != nil {
				s.fail(err)
			}
			return
		}
		s.hw.Filled(FirstHalf)
		s.waitWhile(SecondHalf)

	case BufferLen:
		s.hw.Filled(SecondHalf)
		s.waitWhile(FirstHalf)
		s.idx = 0
	}
}

// waitWhile blocks until the hardware leaves the half it is playing.
func (s *Sink) waitWhile(busy Half) {
	for s.hw.Running() && s.hw.Draining() == busy {
		s.hw.Wait()
	}
	if !s.hw.Running() {
		s.fail(fmt.Errorf("%w: drain stopped with %d samples queued", ErrInvariant, s.idx))
	}
}

/*------------------------------------------------------------------
 *
 * Name:	Stop
 *
 * Purpose:	End a transmission.
 *
 * Description:	Falls from the bias level back to 0, then feeds a
 *		full buffer of zeros so everything meaningful has been
 *		played before the drain is halted and the transmitter
 *		unkeyed.
 *
 * Returns:	The first error seen since Start, if any.
 *
 *----------------------------------------------------------------*/

func (s *Sink) Stop() error {
	const step = 0x4000 / BufferLen

	for i := range BufferLen {
		var theta = Q15(i * step)
		var ramp = int32(CosQ15(theta))/2 + 0x4000
		s.Feed(Sample(ramp >> 8))
	}

	for range BufferLen {
		s.Feed(0)
	}

	if s.started {
		if err := s.hw.StopDrain(); err != nil {
			s.fail(err)
		}
	}

	if err := s.ptt.Set(false); err != nil {
		s.fail(err)
	}

	return s.err
}

// Fed is the number of samples accepted since Start.
func (s *Sink) Fed() uint64 {
	return s.fed
}

// Err returns the first hardware or invariant error since Start.
func (s *Sink) Err() error {
	return s.err
}

func (s *Sink) fail(err error) {
	if s.err == nil {
		s.err = err
	}
}
