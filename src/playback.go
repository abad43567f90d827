package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Top level of the transmitter: one call sends one
 *		complete picture, text message or Morse message.
 *
 * Description:	Each playback
 *
 *			checks its arguments,
 *			keys the transmitter and ramps up (Sink.Start),
 *			sends the content,
 *			ramps down and unkeys (Sink.Stop).
 *
 *		Once the ramp up has started the ramp down always
 *		follows, whatever goes wrong in between, so the radio
 *		is never left transmitting.
 *
 *		A picture is sent as
 *
 *			VOX start tones
 *			VIS header
 *			black header block (16 line modes only)
 *			picture blocks, each with its overlay applied
 *			VOX stop tones
 *
 *		Only one playback may run at a time on a Player.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

const DefaultSampleRate = 20000

const DefaultTimeout = 150 * time.Second

// Levels are the peak amplitudes of each kind of transmission.
type Levels struct {
	SSTV Q15
	PSK  Q15
	CW   Q15
}

var DefaultLevels = Levels{
	SSTV: Q15FromFloat(0.9),
	PSK:  Q15FromFloat(0.4),
	CW:   Q15FromFloat(0.9),
}

type Player struct {
	hw         Hardware
	ptt        *PTT
	rate       int
	levels     Levels
	timeout    time.Duration
	overlays   *Overlays
	thumbnails io.ReaderAt
	logger     *log.Logger
	metrics    *Metrics

	newSynth func(sampleRate int) Synth
}

type PlayerOption func(*Player)

func WithPTT(p *PTT) PlayerOption {
	return func(pl *Player) { pl.ptt = p }
}

func WithSampleRate(rate int) PlayerOption {
	return func(pl *Player) { pl.rate = rate }
}

func WithLevels(l Levels) PlayerOption {
	return func(pl *Player) { pl.levels = l }
}

// WithTimeout limits how long a text or Morse message may run.
func WithTimeout(d time.Duration) PlayerOption {
	return func(pl *Player) { pl.timeout = d }
}

// WithOverlays shares overlay text owned by the caller.
func WithOverlays(o *Overlays) PlayerOption {
	return func(pl *Player) { pl.overlays = o }
}

// WithThumbnailStorage is where PlayImage reads thumbnails from when
// it is given no picture.
func WithThumbnailStorage(r io.ReaderAt) PlayerOption {
	return func(pl *Player) { pl.thumbnails = r }
}

func WithLogger(l *log.Logger) PlayerOption {
	return func(pl *Player) { pl.logger = l }
}

func WithMetrics(m *Metrics) PlayerOption {
	return func(pl *Player) { pl.metrics = m }
}

func NewPlayer(hw Hardware, opts ...PlayerOption) *Player {
	var p = &Player{
		hw:       hw,
		rate:     DefaultSampleRate,
		levels:   DefaultLevels,
		timeout:  DefaultTimeout,
		overlays: new(Overlays),
		newSynth: func(rate int) Synth { return NewOscillator(rate) },
	}

	for _, opt := range opts {
		opt(p)
	}

	if p.logger == nil {
		p.logger = discardLogger()
	}

	return p
}

func (p *Player) SetOverlay(slot OverlaySlot, text string) error {
	if err := p.overlays.Set(slot, text); err != nil {
		return err
	}
	p.logger.Debug("overlay set", "slot", slot, "text", p.overlays.Text(slot))
	return nil
}

func (p *Player) Overlays() *Overlays {
	return p.overlays
}

// playback is the state of one transmission, dropped when it ends.
type playback struct {
	id     string
	kind   string
	sink   *Sink
	enc    *Encoder
	logger *log.Logger
	start  time.Time
}

func (p *Player) begin(kind string) (*playback, error) {
	var pb = &playback{
		id:    uuid.NewString(),
		kind:  kind,
		sink:  NewSink(p.hw, p.ptt),
		start: time.Now(),
	}
	pb.enc = NewEncoder(p.newSynth(p.rate), pb.sink, p.rate)
	pb.logger = p.logger.With("id", pb.id, "kind", kind)

	pb.logger.Info("playback start")

	if err := pb.sink.Start(); err != nil {
		// Whatever made it out must still be ramped down.
		var stopErr = pb.sink.Stop()
		return nil, errors.Join(err, stopErr)
	}

	return pb, nil
}

func (p *Player) end(pb *playback, err error) error {
	if stopErr := pb.sink.Stop(); stopErr != nil {
		err = errors.Join(err, stopErr)
	}

	p.metrics.observe(pb.kind, err, pb.sink.Fed(), p.rate)

	var audio = time.Duration(pb.sink.Fed()) * time.Second / time.Duration(p.rate)
	if err != nil {
		pb.logger.Error("playback failed", "err", err, "audio", audio, "elapsed", time.Since(pb.start))
	} else {
		pb.logger.Info("playback done", "audio", audio, "elapsed", time.Since(pb.start))
	}

	return err
}

// refuse counts a picture turned away before anything was sent.
func (p *Player) refuse(err error) error {
	p.metrics.observe("sstv", err, 0, p.rate)
	return err
}

/*------------------------------------------------------------------
 *
 * Name:	PlayImage
 *
 * Purpose:	Send a picture as SSTV.
 *
 * Inputs:	src	- Picture, 320 pixels wide.  nil sends the
 *			  thumbnail grid from thumbnail storage.
 *
 *		id	- SSTV mode.  Unknown modes fall back to Robot36.
 *
 * Returns:	ErrConfiguration and ErrDecode, with nothing sent, if
 *		the picture has the wrong width.  ErrDecode if decoding
 *		fails part way; the blocks before that have been sent.
 *
 *----------------------------------------------------------------*/

func (p *Player) PlayImage(src BlockSource, id ModeID) error {
	var mode = LookupMode(id)

	if src == nil {
		if p.thumbnails == nil {
			return p.refuse(fmt.Errorf("%w: no picture and no thumbnail storage", ErrConfiguration))
		}
		src = NewThumbnailGrid(p.thumbnails)
	}

	if w := src.Width(); w != ImageWidth {
		p.logger.Warn("picture refused", "width", w, "mode", mode.Name)
		return p.refuse(widthError(w))
	}

	if tall, ok := src.(interface{ Height() int }); ok && tall.Height() > frameLines {
		p.logger.Warn("picture taller than the frame, bottom rows not sent",
			"height", tall.Height(), "lines", frameLines, "mode", mode.Name)
	}

	var pb, err = p.begin("sstv")
	if err != nil {
		return err
	}
	pb.logger.Info("sstv", "mode", mode.Name, "vis", fmt.Sprintf("%#x", mode.VIS))

	var volume = p.levels.SSTV

	pb.enc.VOXStart(volume)
	pb.enc.VIS(mode.VIS, mode.VISBits, volume)

	var send = func(blk *Block) error {
		p.overlays.Apply(blk, mode)
		pb.enc.EncodeBlock(mode, blk, volume)
		p.metrics.block(mode)
		pb.logger.Debug("block sent", "index", blk.Index, "samples", pb.sink.Fed())
		return pb.sink.Err()
	}

	if mode.HasHeaderBlock() {
		var blk Block
		err = send(&blk)
	}

	if err == nil {
		err = src.Decompress(BlockConsumerFunc(send))
		if err != nil && !errors.Is(err, ErrDecode) && !errors.Is(err, ErrInvariant) {
			err = fmt.Errorf("%w: %w", ErrDecode, err)
		}
	}

	pb.enc.VOXStop(volume)

	return p.end(pb, err)
}

/*------------------------------------------------------------------
 *
 * Name:	PlayText
 *
 * Purpose:	Send text as BPSK with Varicode.
 *
 * Inputs:	ctx	- May cancel early.  The Player's timeout
 *			  applies in any case.
 *
 *		baud	- 31, 63, 125, 250, 500 or 1000.
 *
 *		freq	- Carrier frequency in Hz.
 *
 * Returns:	ErrTimeout if the Player's timeout or a deadline on
 *		ctx cut the text short, context.Canceled if ctx was
 *		cancelled.  The message is still properly terminated.
 *
 *----------------------------------------------------------------*/

func (p *Player) PlayText(ctx context.Context, baud int, freq int, text string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var pb, err = p.begin("psk")
	if err != nil {
		return err
	}
	pb.logger.Info("psk", "baud", baud, "freq", freq, "chars", len(text))

	err = pb.enc.PSKText(ctx, baud, freq, text, p.levels.PSK)

	return p.end(pb, err)
}

// PlayMorse sends text in Morse code.  See PlayText for ctx.
func (p *Player) PlayMorse(ctx context.Context, wpm int, freq int, text string) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	var pb, err = p.begin("cw")
	if err != nil {
		return err
	}
	pb.logger.Info("cw", "wpm", wpm, "freq", freq, "chars", len(text))

	err = pb.enc.MorseText(ctx, wpm, freq, text, p.levels.CW)

	return p.end(pb, err)
}

func resultLabel(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrTimeout):
		return "timeout"
	case errors.Is(err, context.Canceled):
		return "cancelled"
	case errors.Is(err, ErrInvariant):
		return "invariant"
	case errors.Is(err, ErrConfiguration):
		return "configuration"
	case errors.Is(err, ErrDecode):
		return "decode"
	default:
		return "error"
	}
}
