// File: engine/polling.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Busy-polling engines: no wake latency, full CPU use while idle.

package engine

import (
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
)

type pollState[T any] struct {
	q api.Queue[T]
}

// polling drains one shared queue from one or more spinning workers.
type polling[T any] struct {
	workers
	scales bool
	state  atomic.Pointer[pollState[T]]
}

// Enqueue pushes item onto the shared queue. It is dropped outside
// Start..Stop.
func (p *polling[T]) Enqueue(item T) {
	if st := p.state.Load(); st != nil {
		offer(&p.workers, st.q, item)
	}
}

// Start launches the polling workers.
func (p *polling[T]) Start(cb api.Callback[T], cores int) error {
	if cb == nil {
		return p.nilCallback()
	}
	q, err := newQueue[T](&p.workers)
	if err != nil {
		return err
	}
	p.running.Store(true)
	p.state.Store(&pollState[T]{q: q})
	p.launch(workerCount(p.scales, cores), func(int) {
		for p.running.Load() {
			drain(q, cb)
		}
	})
	return nil
}

// Stop halts and joins the workers. Repeated calls are no-ops.
func (p *polling[T]) Stop() {
	if !p.halt() {
		return
	}
	p.join()
	p.state.Store(nil)
}

// ScalesWithCores reports whether Start honours its cores argument.
func (p *polling[T]) ScalesWithCores() bool {
	return p.scales
}

// SingleThreadPolling re-polls one shared queue from a single worker.
type SingleThreadPolling[T any] struct {
	polling[T]
}

// NewSingleThreadPolling builds an unstarted engine. The cores argument of
// Start is ignored.
func NewSingleThreadPolling[T any](opts ...Option) *SingleThreadPolling[T] {
	e := &SingleThreadPolling[T]{}
	e.init(KindSingleThreadPolling, opts)
	return e
}

// PerCorePolling re-polls one shared queue from one worker per core.
type PerCorePolling[T any] struct {
	polling[T]
}

// NewPerCorePolling builds an unstarted engine.
func NewPerCorePolling[T any](opts ...Option) *PerCorePolling[T] {
	e := &PerCorePolling[T]{}
	e.init(KindPerCorePolling, opts)
	e.scales = true
	return e
}
