// File: core/concurrency/queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Queue backend selection for the dispatch engines.

package concurrency

import (
	"fmt"

	"github.com/momentics/hioload-scaletest/api"
)

// QueueKind names a queue backend.
type QueueKind string

const (
	// QueueLinked is the unbounded Michael-Scott queue.
	QueueLinked QueueKind = "linked"
	// QueueRing is the bounded sequence ring; producers yield while it is full.
	QueueRing QueueKind = "ring"
)

// DefaultRingCapacity is used when a ring is requested without a capacity.
const DefaultRingCapacity = 1 << 16

// ParseQueueKind validates a textual queue kind.
func ParseQueueKind(s string) (QueueKind, error) {
	switch k := QueueKind(s); k {
	case QueueLinked, QueueRing:
		return k, nil
	case "":
		return QueueLinked, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownQueueKind, s)
	}
}

// NewQueue builds a queue of the given kind. ringCapacity is only consulted
// for QueueRing; zero selects DefaultRingCapacity.
func NewQueue[T any](kind QueueKind, ringCapacity int) (api.Queue[T], error) {
	switch kind {
	case QueueLinked, "":
		return NewLinkedQueue[T](), nil
	case QueueRing:
		if ringCapacity < 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidCapacity, ringCapacity)
		}
		if ringCapacity == 0 {
			ringCapacity = DefaultRingCapacity
		}
		return NewRingQueue[T](ringCapacity), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownQueueKind, kind)
	}
}
