// File: api/types.go
// Author: momentics <momentics@gmail.com>
//
// Shared API-level type declarations.

package api

// WorkItem is the payload pushed through every dispatch engine by the benchmark.
// EnqueuedAt is a monotonic reading in nanoseconds, see core/clock.
type WorkItem struct {
	EnqueuedAt int64
}
