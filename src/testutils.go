package satcam

import (
	"io"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CaptureStdout runs command and returns what it printed on stdout.
// Log output goes to stderr and is not captured.
func CaptureStdout(t *testing.T, command func()) string {
	t.Helper()

	var saved = os.Stdout
	t.Cleanup(func() { os.Stdout = saved })

	var r, w, err = os.Pipe()
	require.NoError(t, err)
	os.Stdout = w

	var done = make(chan []byte)
	go func() {
		var b, _ = io.ReadAll(r)
		done <- b
	}()

	command()

	w.Close() //nolint:gosec
	os.Stdout = saved

	return string(<-done)
}

func AssertOutputContains(t *testing.T, command func(), want string) {
	t.Helper()

	assert.Contains(t, CaptureStdout(t, command), want)
}
