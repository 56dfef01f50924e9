// File: core/concurrency/lock_free_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Bounded MPMC ring with per-cell sequence numbers (Vyukov).

package concurrency

import (
	"runtime"
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
)

var _ api.Queue[any] = (*RingQueue[any])(nil)

const cacheLinePad = 64

// RingQueue is a bounded lock-free MPMC queue.
type RingQueue[T any] struct {
	head  uint64
	_     [cacheLinePad]byte
	tail  uint64
	_     [cacheLinePad]byte
	mask  uint64
	cells []cell[T]
}

type cell[T any] struct {
	sequence atomic.Uint64
	data     T
}

// NewRingQueue creates a new queue with capacity rounded to power of two.
func NewRingQueue[T any](capacity int) *RingQueue[T] {
	if capacity < 2 {
		capacity = 2
	}
	size := 1
	for size < capacity {
		size <<= 1
	}

	q := &RingQueue[T]{
		mask:  uint64(size - 1),
		cells: make([]cell[T], size),
	}
	for i := range q.cells {
		q.cells[i].sequence.Store(uint64(i))
	}
	return q
}

// Enqueue adds val, yielding the processor while the ring is full. It waits
// on consumers; engines use EnqueueWhile instead.
func (q *RingQueue[T]) Enqueue(val T) {
	for !q.TryEnqueue(val) {
		runtime.Gosched()
	}
}

// EnqueueWhile adds val, yielding while the ring is full and keep reports
// true. It returns false, dropping val, once keep reports false on a full
// ring.
func (q *RingQueue[T]) EnqueueWhile(val T, keep func() bool) bool {
	for !q.TryEnqueue(val) {
		if !keep() {
			return false
		}
		runtime.Gosched()
	}
	return true
}

// TryEnqueue adds val; returns false if full.
func (q *RingQueue[T]) TryEnqueue(val T) bool {
	for {
		tail := atomic.LoadUint64(&q.tail)
		c := &q.cells[tail&q.mask]
		dif := int64(c.sequence.Load()) - int64(tail)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.tail, tail, tail+1) {
				c.data = val
				c.sequence.Store(tail + 1)
				return true
			}
		case dif < 0:
			return false
		}
		// tail moved, retry
	}
}

// Dequeue removes and returns an item; ok false if empty.
func (q *RingQueue[T]) Dequeue() (item T, ok bool) {
	for {
		head := atomic.LoadUint64(&q.head)
		c := &q.cells[head&q.mask]
		dif := int64(c.sequence.Load()) - int64(head+1)

		switch {
		case dif == 0:
			if atomic.CompareAndSwapUint64(&q.head, head, head+1) {
				item = c.data
				var zero T
				c.data = zero
				c.sequence.Store(head + q.mask + 1)
				return item, true
			}
		case dif < 0:
			return item, false
		}
		// head moved, retry
	}
}

// size returns the approximate number of queued items.
func (q *RingQueue[T]) size() int {
	head := atomic.LoadUint64(&q.head)
	tail := atomic.LoadUint64(&q.tail)
	if tail < head {
		return 0
	}
	return int(tail - head)
}

// capacity returns the fixed ring capacity.
func (q *RingQueue[T]) capacity() int {
	return len(q.cells)
}
