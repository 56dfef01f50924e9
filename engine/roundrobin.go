// File: engine/roundrobin.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/core/concurrency"
)

type lane[T any] struct {
	q   api.Queue[T]
	sig *concurrency.LevelSignal
}

type roundRobinState[T any] struct {
	lanes []*lane[T]
	next  atomic.Uint64
}

func newRoundRobinState[T any](w *workers, cores int) (*roundRobinState[T], error) {
	st := &roundRobinState[T]{lanes: make([]*lane[T], clampCores(cores))}
	for i := range st.lanes {
		q, err := newQueue[T](w)
		if err != nil {
			return nil, err
		}
		st.lanes[i] = &lane[T]{q: q, sig: concurrency.NewLevelSignal()}
	}
	return st, nil
}

// route returns the lane for the next enqueue: sequence number modulo lanes.
func (st *roundRobinState[T]) route() *lane[T] {
	seq := st.next.Add(1) - 1
	return st.lanes[seq%uint64(len(st.lanes))]
}

// RoundRobinLevel gives every worker its own queue and manual-reset signal.
// Producers spread items across lanes with an atomic counter, so each queue
// has exactly one consumer and keeps FIFO order; order across lanes is not
// defined.
type RoundRobinLevel[T any] struct {
	workers
	state atomic.Pointer[roundRobinState[T]]
}

// NewRoundRobinLevel builds an unstarted engine.
func NewRoundRobinLevel[T any](opts ...Option) *RoundRobinLevel[T] {
	e := &RoundRobinLevel[T]{}
	e.init(KindRoundRobinLevel, opts)
	return e
}

// Enqueue routes item to the next lane. It drops the item when the engine has
// no lanes (before Start or after Stop).
func (e *RoundRobinLevel[T]) Enqueue(item T) {
	st := e.state.Load()
	if st == nil {
		return
	}
	l := st.route()
	if offer(&e.workers, l.q, item) {
		l.sig.Set()
	}
}

// Start builds one lane per core and launches a worker on each.
func (e *RoundRobinLevel[T]) Start(cb api.Callback[T], cores int) error {
	if cb == nil {
		return e.nilCallback()
	}
	st, err := newRoundRobinState[T](&e.workers, cores)
	if err != nil {
		return err
	}
	e.running.Store(true)
	e.state.Store(st)
	e.launch(len(st.lanes), func(id int) {
		l := st.lanes[id]
		for e.running.Load() {
			l.sig.Wait()
			l.sig.Reset()
			drain(l.q, cb)
		}
	})
	return nil
}

// Stop closes every lane signal and joins the workers. Repeated calls are
// no-ops.
func (e *RoundRobinLevel[T]) Stop() {
	if !e.halt() {
		return
	}
	for _, l := range e.state.Load().lanes {
		l.sig.Close()
	}
	e.join()
	e.state.Store(nil)
}

// ScalesWithCores is always true.
func (e *RoundRobinLevel[T]) ScalesWithCores() bool {
	return true
}
