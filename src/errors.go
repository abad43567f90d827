package satcam

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrConfiguration means the request cannot be honoured as given,
	// for example an image of the wrong width for the chosen mode.
	ErrConfiguration = errors.New("configuration error")

	// ErrDecode comes from the image decoder or block reader.
	ErrDecode = errors.New("decode error")

	// ErrTimeout means a text or Morse message ran past its deadline
	// and was cut short.
	ErrTimeout = errors.New("transmission timeout")

	// ErrInvariant means the sample sink saw the hardware in a state it
	// should never be in.
	ErrInvariant = errors.New("sink invariant violation")
)

// stopReason says why ctx ended a message early.  Only a passed
// deadline is a timeout; a cancelled ctx is reported as it is.
func stopReason(ctx context.Context) error {
	var err = ctx.Err()
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}
