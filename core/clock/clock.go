// File: core/clock/clock.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Monotonic nanosecond clock used to timestamp work items.

package clock

import "time"

// base pins the monotonic reading every timestamp is measured against.
var base = time.Now()

// Nanotime returns monotonic nanoseconds since process start.
func Nanotime() int64 {
	return int64(time.Since(base))
}

// Since returns the duration elapsed since a Nanotime reading.
func Since(t int64) time.Duration {
	return time.Duration(Nanotime() - t)
}
