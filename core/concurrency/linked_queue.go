// File: core/concurrency/linked_queue.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Unbounded lock-free MPMC queue (Michael & Scott). Enqueue never waits on
// consumers; the garbage collector makes node reuse ABA-free.

package concurrency

import (
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
)

var _ api.Queue[any] = (*LinkedQueue[any])(nil)

type node[T any] struct {
	value T
	next  atomic.Pointer[node[T]]
}

// LinkedQueue is an unbounded linearizable FIFO. head always points at a
// dummy node whose successor holds the oldest value.
type LinkedQueue[T any] struct {
	head atomic.Pointer[node[T]]
	_    [cacheLinePad]byte
	tail atomic.Pointer[node[T]]
	_    [cacheLinePad]byte
}

// NewLinkedQueue creates an empty queue.
func NewLinkedQueue[T any]() *LinkedQueue[T] {
	q := &LinkedQueue[T]{}
	dummy := &node[T]{}
	q.head.Store(dummy)
	q.tail.Store(dummy)
	return q
}

// Enqueue appends val at the tail.
func (q *LinkedQueue[T]) Enqueue(val T) {
	n := &node[T]{value: val}
	for {
		tail := q.tail.Load()
		next := tail.next.Load()
		if tail != q.tail.Load() {
			continue
		}
		if next != nil {
			// tail is lagging, help it forward
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		if tail.next.CompareAndSwap(nil, n) {
			q.tail.CompareAndSwap(tail, n)
			return
		}
	}
}

// Dequeue removes and returns the oldest item; ok false if empty.
func (q *LinkedQueue[T]) Dequeue() (item T, ok bool) {
	for {
		head := q.head.Load()
		tail := q.tail.Load()
		next := head.next.Load()
		if head != q.head.Load() {
			continue
		}
		if next == nil {
			return item, false
		}
		if head == tail {
			q.tail.CompareAndSwap(tail, next)
			continue
		}
		v := next.value
		if q.head.CompareAndSwap(head, next) {
			return v, true
		}
	}
}

// isEmpty reports whether the queue held no items at the time of the call.
func (q *LinkedQueue[T]) isEmpty() bool {
	return q.head.Load().next.Load() == nil
}
