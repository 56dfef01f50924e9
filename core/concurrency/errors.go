// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Error definitions for concurrency module.

package concurrency

import "errors"

var (
	// ErrUnknownQueueKind indicates a queue kind outside linked/ring
	ErrUnknownQueueKind = errors.New("unknown queue kind")

	// ErrInvalidCapacity indicates a non-positive ring capacity
	ErrInvalidCapacity = errors.New("invalid queue capacity")
)
