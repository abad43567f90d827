package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Activate the transmitter while audio is being sent.
 *
 * Description:	Two ways are supported:
 *
 *		GPIO	A line on a GPIO character device, /dev/gpiochipN.
 *
 *		Serial	The RTS or DTR modem control line of a serial port.
 *			Nothing is ever sent on the data lines.
 *
 *		Either can be inverted for radios that want the line
 *		low to transmit.  A nil *PTT does nothing, which is the
 *		right thing when writing to a file.
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"os"
	"strings"

	"github.com/warthog618/go-gpiocdev"
	"golang.org/x/sys/unix"
)

const pttConsumer = "satcam-ptt"

// outputLine is the part of a GPIO line we use.  Serial modem control
// lines are wrapped to look the same.
type outputLine interface {
	SetValue(value int) error
	Close() error
}

type PTT struct {
	line   outputLine
	invert bool
	on     bool
}

/*------------------------------------------------------------------
 *
 * Name:	OpenGPIOPTT
 *
 * Inputs:	chip	- GPIO chip name or path, e.g. "gpiochip0".
 *
 *		offset	- Line number on that chip.
 *
 *		invert	- Drive low to transmit.
 *
 *----------------------------------------------------------------*/

func OpenGPIOPTT(chip string, offset int, invert bool) (*PTT, error) {
	var idle = 0
	if invert {
		idle = 1
	}

	var line, err = gpiocdev.RequestLine(chip, offset,
		gpiocdev.AsOutput(idle),
		gpiocdev.WithConsumer(pttConsumer))
	if err != nil {
		return nil, fmt.Errorf("ptt: request %s line %d: %w", chip, offset, err)
	}

	return &PTT{line: line, invert: invert}, nil
}

/*------------------------------------------------------------------
 *
 * Name:	OpenSerialPTT
 *
 * Inputs:	device	- Serial port, e.g. /dev/ttyUSB0.
 *
 *		signal	- "RTS" or "DTR".
 *
 *		invert	- Turn the signal off to transmit.
 *
 *----------------------------------------------------------------*/

func OpenSerialPTT(device string, signal string, invert bool) (*PTT, error) {
	var bit int
	switch strings.ToUpper(signal) {
	case "RTS", "":
		bit = unix.TIOCM_RTS
	case "DTR":
		bit = unix.TIOCM_DTR
	default:
		return nil, fmt.Errorf("%w: ptt serial line must be RTS or DTR, not %q", ErrConfiguration, signal)
	}

	var f, err = os.OpenFile(device, os.O_RDWR|unix.O_NOCTTY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, fmt.Errorf("ptt: %w", err)
	}

	var p = &PTT{line: &modemControlLine{f: f, bit: bit}, invert: invert}
	if err := p.line.SetValue(p.level(false)); err != nil {
		f.Close()
		return nil, err
	}

	return p, nil
}

// Set turns the transmitter on or off.
func (p *PTT) Set(on bool) error {
	if p == nil || p.line == nil {
		return nil
	}

	if err := p.line.SetValue(p.level(on)); err != nil {
		return fmt.Errorf("ptt: %w", err)
	}
	p.on = on

	return nil
}

func (p *PTT) On() bool {
	return p != nil && p.on
}

// Close releases the line, leaving the transmitter off.
func (p *PTT) Close() error {
	if p == nil || p.line == nil {
		return nil
	}

	var err = p.Set(false)
	if cerr := p.line.Close(); err == nil {
		err = cerr
	}
	p.line = nil

	return err
}

func (p *PTT) level(on bool) int {
	if on != p.invert {
		return 1
	}
	return 0
}

type modemControlLine struct {
	f   *os.File
	bit int
}

func (m *modemControlLine) SetValue(value int) error {
	var fd = int(m.f.Fd())

	var bits, err = unix.IoctlGetInt(fd, unix.TIOCMGET)
	if err != nil {
		return fmt.Errorf("get modem lines on %s: %w", m.f.Name(), err)
	}

	if value != 0 {
		bits |= m.bit
	} else {
		bits &^= m.bit
	}

	if err := unix.IoctlSetPointerInt(fd, unix.TIOCMSET, bits); err != nil {
		return fmt.Errorf("set modem lines on %s: %w", m.f.Name(), err)
	}

	return nil
}

func (m *modemControlLine) Close() error {
	return m.f.Close()
}
