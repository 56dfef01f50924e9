// Author: momentics <momentics@gmail.com>
// SPDX-License-Identifier: MIT

package api

// Callback processes one delivered item. Engines with more than one worker
// invoke it concurrently, so implementations must be goroutine-safe.
type Callback[T any] func(item T)

// Engine is a producer/consumer dispatch strategy.
//
// Start launches the workers and returns once they are running. Enqueue may be
// called from any number of goroutines and never waits for consumer progress.
// Stop flips the engine to not running, releases blocked workers and returns
// only after every worker has exited; it is idempotent.
type Engine[T any] interface {
	Enqueue(item T)
	Start(cb Callback[T], cores int) error
	Stop()

	// ScalesWithCores reports whether the cores argument of Start controls
	// the number of consumer workers.
	ScalesWithCores() bool
}
