package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Read the satcam.yaml configuration file.
 *
 * Description:	Everything has a sensible default, so the file is
 *		optional and may list only what differs.  Command line
 *		options are applied on top of it by the caller.
 *
 *		Amplitudes are fractions of full scale, 0 .. 1.
 *
 *---------------------------------------------------------------*/

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	SampleRate int           `yaml:"sample_rate"`
	Timeout    time.Duration `yaml:"timeout"`

	Amplitude AmplitudeConfig `yaml:"amplitude"`
	PSK       PSKConfig       `yaml:"psk"`
	CW        CWConfig        `yaml:"cw"`
	SSTV      SSTVConfig      `yaml:"sstv"`
	Overlay   OverlayConfig   `yaml:"overlay"`
	Output    OutputConfig    `yaml:"output"`
	PTT       PTTConfig       `yaml:"ptt"`
	Log       LogConfig       `yaml:"log"`
	Metrics   MetricsConfig   `yaml:"metrics"`
}

type AmplitudeConfig struct {
	SSTV float64 `yaml:"sstv"`
	PSK  float64 `yaml:"psk"`
	CW   float64 `yaml:"cw"`
}

type PSKConfig struct {
	Baud int `yaml:"baud"`
	Freq int `yaml:"freq"`
}

type CWConfig struct {
	WPM  int `yaml:"wpm"`
	Freq int `yaml:"freq"`
}

type SSTVConfig struct {
	Mode       string `yaml:"mode"`
	Thumbnails string `yaml:"thumbnails"` // storage image for the thumbnail grid
}

type OverlayConfig struct {
	Header string `yaml:"header"` // strftime patterns allowed
	Footer string `yaml:"footer"`
	Title  string `yaml:"title"`
	Call   string `yaml:"call"`
}

type OutputConfig struct {
	Kind   string `yaml:"kind"` // wav or portaudio
	Path   string `yaml:"path"`
	Device int    `yaml:"device"`
}

type PTTConfig struct {
	Method string `yaml:"method"` // none, gpio or serial
	Device string `yaml:"device"` // gpio chip or serial port
	Line   string `yaml:"line"`   // gpio offset, or RTS / DTR
	Invert bool   `yaml:"invert"`
}

type LogConfig struct {
	Level string `yaml:"level"`
}

type MetricsConfig struct {
	Textfile string `yaml:"textfile"`
}

const (
	OutputWAV       = "wav"
	OutputPortAudio = "portaudio"
)

const (
	PTTNone   = "none"
	PTTGPIO   = "gpio"
	PTTSerial = "serial"
)

// Places to look when no file is named.  First one found wins.
var configSearchList = []string{
	"satcam.yaml",
	"/usr/local/etc/satcam.yaml",
	"/etc/satcam.yaml",
}

func DefaultConfig() *Config {
	var c = new(Config)
	c.applyDefaults()
	return c
}

/*------------------------------------------------------------------
 *
 * Name:	LoadConfig
 *
 * Purpose:	Read and check the configuration.
 *
 * Inputs:	filename	- File to read.  Empty means try the
 *				  usual places, and use the built in
 *				  defaults if there is nothing there.
 *
 * Returns:	ErrConfiguration for anything that cannot work.
 *
 *----------------------------------------------------------------*/

func LoadConfig(filename string) (*Config, error) {
	if filename == "" {
		for _, f := range configSearchList {
			if _, err := os.Stat(f); err == nil {
				filename = f
				break
			}
		}
		if filename == "" {
			return DefaultConfig(), nil
		}
	}

	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: config file %s not found", ErrConfiguration, filename)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	return ParseConfig(data)
}

func ParseConfig(data []byte) (*Config, error) {
	var config Config
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("%w: failed to parse config file: %w", ErrConfiguration, err)
	}

	config.applyDefaults()

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c *Config) applyDefaults() {
	if c.SampleRate == 0 {
		c.SampleRate = DefaultSampleRate
	}
	if c.Timeout == 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Amplitude.SSTV == 0 {
		c.Amplitude.SSTV = 0.9
	}
	if c.Amplitude.PSK == 0 {
		c.Amplitude.PSK = 0.4
	}
	if c.Amplitude.CW == 0 {
		c.Amplitude.CW = 0.9
	}
	if c.PSK.Baud == 0 {
		c.PSK.Baud = DefaultPSKBaud
	}
	if c.PSK.Freq == 0 {
		c.PSK.Freq = DefaultPSKFreq
	}
	if c.CW.WPM == 0 {
		c.CW.WPM = DefaultMorseWPM
	}
	if c.CW.Freq == 0 {
		c.CW.Freq = DefaultMorseFreq
	}
	if c.SSTV.Mode == "" {
		c.SSTV.Mode = "Robot36"
	}
	if c.Output.Kind == "" {
		c.Output.Kind = OutputWAV
	}
	if c.Output.Path == "" && c.Output.Kind == OutputWAV {
		c.Output.Path = "satcam.wav"
	}
	if c.PTT.Method == "" {
		c.PTT.Method = PTTNone
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
}

// Validate checks the things the encoders would otherwise quietly replace.
func (c *Config) Validate() error {
	if c.SampleRate < 8000 || c.SampleRate > 192000 {
		return fmt.Errorf("%w: sample_rate %d out of range 8000 .. 192000", ErrConfiguration, c.SampleRate)
	}

	for name, a := range map[string]float64{"sstv": c.Amplitude.SSTV, "psk": c.Amplitude.PSK, "cw": c.Amplitude.CW} {
		if a < 0 || a > 1 {
			return fmt.Errorf("%w: amplitude.%s %g out of range 0 .. 1", ErrConfiguration, name, a)
		}
	}

	switch c.PSK.Baud {
	case 31, 63, 125, 250, 500, 1000:
	default:
		return fmt.Errorf("%w: psk.baud %d not one of 31, 63, 125, 250, 500, 1000", ErrConfiguration, c.PSK.Baud)
	}

	if _, err := ParseMode(c.SSTV.Mode); err != nil {
		return err
	}

	switch c.Output.Kind {
	case OutputWAV:
		if c.Output.Path == "" {
			return fmt.Errorf("%w: output.path required for wav output", ErrConfiguration)
		}
	case OutputPortAudio:
	default:
		return fmt.Errorf("%w: output.kind %q must be wav or portaudio", ErrConfiguration, c.Output.Kind)
	}

	switch c.PTT.Method {
	case PTTNone:
	case PTTGPIO, PTTSerial:
		if c.PTT.Device == "" || c.PTT.Line == "" {
			return fmt.Errorf("%w: ptt.%s needs device and line", ErrConfiguration, c.PTT.Method)
		}
	default:
		return fmt.Errorf("%w: ptt.method %q must be none, gpio or serial", ErrConfiguration, c.PTT.Method)
	}

	return nil
}

// Levels converts the amplitude fractions for the Player.
func (c *Config) Levels() Levels {
	return Levels{
		SSTV: Q15FromFloat(c.Amplitude.SSTV),
		PSK:  Q15FromFloat(c.Amplitude.PSK),
		CW:   Q15FromFloat(c.Amplitude.CW),
	}
}

// Open gets the transmit enable line ready.  A nil PTT means none.
func (c PTTConfig) Open() (*PTT, error) {
	switch c.Method {
	case PTTGPIO:
		var offset, err = strconv.Atoi(c.Line)
		if err != nil {
			return nil, fmt.Errorf("%w: ptt.line %q is not a gpio offset", ErrConfiguration, c.Line)
		}
		return OpenGPIOPTT(c.Device, offset, c.Invert)
	case PTTSerial:
		return OpenSerialPTT(c.Device, c.Line, c.Invert)
	default:
		return nil, nil
	}
}
