package satcam

/*------------------------------------------------------------------
 *
 * Purpose:	Logging for the transmitter tools.
 *
 * Description:	Everything goes through one charmbracelet logger with
 *		timestamps.  Playbacks log with key/value pairs so a
 *		run can be followed with grep:
 *
 *			INFO satcam: playback done id=... kind=sstv
 *
 *---------------------------------------------------------------*/

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
)

const logPrefix = "satcam"

// NewLogger returns a logger writing to w at the named level:
// debug, info, warn or error.  Empty means info.
func NewLogger(w io.Writer, level string) (*log.Logger, error) {
	var lvl = log.InfoLevel
	if level != "" {
		var l, err = log.ParseLevel(level)
		if err != nil {
			return nil, fmt.Errorf("%w: log level: %w", ErrConfiguration, err)
		}
		lvl = l
	}

	return log.NewWithOptions(w, log.Options{
		Level:           lvl,
		Prefix:          logPrefix,
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
	}), nil
}

// discardLogger is used when the caller does not supply one.
func discardLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.FatalLevel})
}
