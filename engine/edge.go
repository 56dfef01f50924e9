// File: engine/edge.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/core/concurrency"
)

type edgeState[T any] struct {
	q   api.Queue[T]
	sig *concurrency.EdgeSignal
}

// SingleThreadEdge wakes its only worker with an auto-reset signal. The
// worker drains the queue to empty before it blocks again, so a token
// deposited mid-drain costs at most one spurious wake.
type SingleThreadEdge[T any] struct {
	workers
	state atomic.Pointer[edgeState[T]]
}

// NewSingleThreadEdge builds an unstarted engine. The cores argument of Start
// is ignored.
func NewSingleThreadEdge[T any](opts ...Option) *SingleThreadEdge[T] {
	e := &SingleThreadEdge[T]{}
	e.init(KindSingleThreadEdge, opts)
	return e
}

// Enqueue pushes item and deposits a wake token. It is dropped outside
// Start..Stop.
func (e *SingleThreadEdge[T]) Enqueue(item T) {
	if st := e.state.Load(); st != nil && offer(&e.workers, st.q, item) {
		st.sig.Set()
	}
}

// Start launches the single worker. The cores argument is ignored.
func (e *SingleThreadEdge[T]) Start(cb api.Callback[T], _ int) error {
	if cb == nil {
		return e.nilCallback()
	}
	q, err := newQueue[T](&e.workers)
	if err != nil {
		return err
	}
	st := &edgeState[T]{q: q, sig: concurrency.NewEdgeSignal()}
	e.running.Store(true)
	e.state.Store(st)
	e.launch(1, func(int) {
		for e.running.Load() {
			st.sig.Wait()
			drain(st.q, cb)
		}
	})
	return nil
}

// Stop halts and joins the worker. Repeated calls are no-ops.
func (e *SingleThreadEdge[T]) Stop() {
	if !e.halt() {
		return
	}
	st := e.state.Load()
	st.sig.Close()
	e.join()
	e.state.Store(nil)
}

// ScalesWithCores is always false.
func (e *SingleThreadEdge[T]) ScalesWithCores() bool {
	return false
}
