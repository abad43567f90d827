package satcam

import (
	"fmt"
	"runtime"
)

// Can't be "assert" because of conflicts with stretchr/testify/assert.
// Only for conditions that are programming errors, never for bad input.
func Assert(t bool) {
	if !t {
		_, file, line, _ := runtime.Caller(1)
		panic(fmt.Sprintf("Assertion failed at %s:%d", file, line))
	}
}
