package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	satcam-tx - send a picture, text or Morse message
 *		to a .WAV file or a sound card.
 *
 * Description:	Settings come from satcam.yaml, see config.go, and
 *		command line options override them.
 *
 *---------------------------------------------------------------*/

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/lestrrat-go/strftime"
	"github.com/spf13/pflag"
)

func TxMain() {
	os.Exit(RunTx(os.Args[0], os.Args[1:]))
}

// RunTx is TxMain without the exit, returning the exit status.
func RunTx(name string, args []string) int {
	var flags = pflag.NewFlagSet(name, pflag.ContinueOnError)

	var configFile = flags.StringP("config", "c", "", "Configuration file.  Default is satcam.yaml if it exists.")
	var mode = flags.StringP("mode", "m", "", "SSTV mode name or number.  See the modes command.")
	var scale = flags.IntP("scale", "s", 0, "Shrink the picture by 2, 4 or 8 before sending: 1, 2 or 3.")
	var thumbnails = flags.StringP("thumbnails", "T", "", "Thumbnail storage image, made by satcam-thumbs.")
	var outputFile = flags.StringP("output-file", "o", "", "Send output to .wav file.")
	var audioDevice = flags.IntP("audio-device", "d", -1, "Play on this sound card instead of writing a file.  -1 is the default card.")
	var sampleRate = flags.IntP("audio-sample-rate", "r", DefaultSampleRate, "Audio sample rate.")
	var baud = flags.IntP("baud", "b", DefaultPSKBaud, "PSK speed: 31, 63, 125, 250, 500 or 1000.")
	var freq = flags.IntP("freq", "f", DefaultPSKFreq, "PSK or Morse tone frequency in Hz.")
	var wpm = flags.IntP("wpm", "w", DefaultMorseWPM, "Morse speed in words per minute.")
	var header = flags.String("header", "", "Header overlay.  strftime patterns are expanded.")
	var footer = flags.String("footer", "", "Footer overlay.")
	var title = flags.String("title", "", "Title overlay.")
	var call = flags.String("call", "", "Call sign overlay, bottom right.")
	var logLevel = flags.StringP("log-level", "l", "", "debug, info, warn or error.")
	var metricsFile = flags.String("metrics-textfile", "", "Write Prometheus metrics to this file when done.")
	var version = flags.BoolP("version", "v", false, "Print version and exit.  With -l debug also list library versions.")
	var help = flags.BoolP("help", "h", false, "Display help text.")

	flags.Usage = func() {
		fmt.Fprintf(os.Stderr, "%s - Generate SSTV, PSK and Morse transmissions.\n", name)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Usage: %s [options] command [arguments]\n", name)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Commands:\n")
		fmt.Fprintf(os.Stderr, "    image file.jpg    Send a 320 pixel wide JPEG as SSTV.\n")
		fmt.Fprintf(os.Stderr, "    thumbs            Send the stored thumbnails as one picture.\n")
		fmt.Fprintf(os.Stderr, "    pattern           Send colour bars.\n")
		fmt.Fprintf(os.Stderr, "    psk text...       Send text as BPSK.\n")
		fmt.Fprintf(os.Stderr, "    cw text...        Send text as Morse code.\n")
		fmt.Fprintf(os.Stderr, "    modes             List the SSTV modes.\n")
		fmt.Fprintf(os.Stderr, "\n")
		flags.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "Example:  %s -o x.wav -m MP73 --call N0CALL image picture.jpg\n", name)
	}

	if err := flags.Parse(args); err != nil {
		return 1
	}

	if *help {
		flags.Usage()
		return 0
	}

	if *version {
		printVersion(os.Stdout, *logLevel == "debug")
		return 0
	}

	if flags.NArg() < 1 {
		flags.Usage()
		return 1
	}

	var command = flags.Arg(0)
	var rest = flags.Args()[1:]

	if command == "modes" {
		printModes(os.Stdout)
		return 0
	}

	var cfg, err = LoadConfig(*configFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	if flags.Changed("mode") {
		cfg.SSTV.Mode = *mode
	}
	if flags.Changed("thumbnails") {
		cfg.SSTV.Thumbnails = *thumbnails
	}
	if flags.Changed("output-file") {
		cfg.Output.Kind = OutputWAV
		cfg.Output.Path = *outputFile
	}
	if flags.Changed("audio-device") {
		cfg.Output.Kind = OutputPortAudio
		cfg.Output.Device = *audioDevice
	}
	if flags.Changed("audio-sample-rate") {
		cfg.SampleRate = *sampleRate
	}
	if flags.Changed("baud") {
		cfg.PSK.Baud = *baud
	}
	if flags.Changed("freq") {
		cfg.PSK.Freq = *freq
		cfg.CW.Freq = *freq
	}
	if flags.Changed("wpm") {
		cfg.CW.WPM = *wpm
	}
	if flags.Changed("header") {
		cfg.Overlay.Header = *header
	}
	if flags.Changed("footer") {
		cfg.Overlay.Footer = *footer
	}
	if flags.Changed("title") {
		cfg.Overlay.Title = *title
	}
	if flags.Changed("call") {
		cfg.Overlay.Call = *call
	}
	if flags.Changed("log-level") {
		cfg.Log.Level = *logLevel
	}
	if flags.Changed("metrics-textfile") {
		cfg.Metrics.Textfile = *metricsFile
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	logger, err := NewLogger(os.Stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		return 1
	}

	var ctx, stop = signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := transmit(ctx, cfg, logger, command, rest, *scale); err != nil {
		logger.Error("transmit failed", "command", command, "err", err)
		return 1
	}

	return 0
}

func printModes(w io.Writer) {
	fmt.Fprintf(w, "%-8s  %4s  %-6s  %s\n", "MODE", "ID", "VIS", "LINES")
	for _, m := range Modes() {
		fmt.Fprintf(w, "%-8s  %4d  %#-6x  %d\n", m.Name, m.ID, m.VIS, m.TextLines*BlockHeight)
	}
}

// transmit sets up the output for one command and runs it.
func transmit(ctx context.Context, cfg *Config, logger *log.Logger, command string, args []string, scale int) (rerr error) {
	var run func(p *Player) error

	switch command {
	case "image":
		if len(args) != 1 {
			return fmt.Errorf("%w: image needs exactly one file", ErrConfiguration)
		}
		var src, err = openJPEG(args[0], scale)
		if err != nil {
			return err
		}
		run = func(p *Player) error { return p.PlayImage(src, cfg.sstvMode()) }

	case "thumbs":
		run = func(p *Player) error { return p.PlayImage(nil, cfg.sstvMode()) }

	case "pattern":
		run = func(p *Player) error { return p.PlayImage(TestPattern{}, cfg.sstvMode()) }

	case "psk":
		var text = strings.Join(args, " ")
		run = func(p *Player) error { return p.PlayText(ctx, cfg.PSK.Baud, cfg.PSK.Freq, text) }

	case "cw":
		var text = strings.Join(args, " ")
		run = func(p *Player) error { return p.PlayMorse(ctx, cfg.CW.WPM, cfg.CW.Freq, text) }

	default:
		return fmt.Errorf("%w: unknown command %q", ErrConfiguration, command)
	}

	var overlays, err = cfg.Overlay.build(time.Now())
	if err != nil {
		return err
	}

	ptt, err := cfg.PTT.Open()
	if err != nil {
		return err
	}
	defer func() {
		if err := ptt.Close(); err != nil && rerr == nil {
			rerr = err
		}
	}()

	var metrics = NewMetrics()

	var opts = []PlayerOption{
		WithPTT(ptt),
		WithSampleRate(cfg.SampleRate),
		WithLevels(cfg.Levels()),
		WithTimeout(cfg.Timeout),
		WithOverlays(overlays),
		WithLogger(logger),
		WithMetrics(metrics),
	}

	if cfg.SSTV.Thumbnails != "" {
		var f, err = os.Open(cfg.SSTV.Thumbnails)
		if err != nil {
			return fmt.Errorf("%w: thumbnail storage: %w", ErrConfiguration, err)
		}
		defer f.Close() //nolint:errcheck
		opts = append(opts, WithThumbnailStorage(f))
	}

	switch cfg.Output.Kind {
	case OutputPortAudio:
		err = run(NewPlayer(NewPortAudioHardware(cfg.SampleRate, cfg.Output.Device), opts...))

	default:
		var hw = NewWAVHardware(cfg.Output.Path, cfg.SampleRate)
		err = run(NewPlayer(hw, opts...))
		if cerr := hw.Close(); cerr != nil {
			err = errors.Join(err, cerr)
		} else {
			logger.Info("wrote", "file", cfg.Output.Path, "samples", hw.Consumed())
		}
	}

	if cfg.Metrics.Textfile != "" {
		if merr := metrics.WriteTextfile(cfg.Metrics.Textfile); merr != nil {
			err = errors.Join(err, merr)
		}
	}

	return err
}

func openJPEG(path string, scale int) (*JPEGSource, error) {
	var f, err = os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConfiguration, err)
	}
	defer f.Close() //nolint:errcheck

	return PrepareJPEG(f, scale)
}

func (c *Config) sstvMode() ModeID {
	var m, err = ParseMode(c.SSTV.Mode)
	if err != nil {
		return Robot36
	}
	return m.ID
}

// build fills in the overlay slots, expanding strftime patterns in
// the header against now.
func (c OverlayConfig) build(now time.Time) (*Overlays, error) {
	var header, err = strftime.Format(c.Header, now)
	if err != nil {
		return nil, fmt.Errorf("%w: overlay header: %w", ErrConfiguration, err)
	}

	var o = new(Overlays)
	for slot, text := range map[OverlaySlot]string{
		OverlayHeader: header,
		OverlayFooter: c.Footer,
		OverlayTitle:  c.Title,
		OverlayCall:   c.Call,
	} {
		if err := o.Set(slot, text); err != nil {
			return nil, err
		}
	}

	return o, nil
}
