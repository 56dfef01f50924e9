// File: engine/level.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/core/concurrency"
)

type levelState[T any] struct {
	q   api.Queue[T]
	sig *concurrency.LevelSignal
}

// level shares one queue and one manual-reset signal among its workers.
//
// Workers lower the level before draining. A producer that pushes after the
// drain started raises it again, so its item is either drained now or wakes
// the next cycle; nothing is left behind with the level lowered.
type level[T any] struct {
	workers
	scales bool
	state  atomic.Pointer[levelState[T]]
}

// Enqueue pushes item and raises the level. It is dropped outside
// Start..Stop.
func (l *level[T]) Enqueue(item T) {
	if st := l.state.Load(); st != nil && offer(&l.workers, st.q, item) {
		st.sig.Set()
	}
}

// Start launches the workers blocked on the level signal.
func (l *level[T]) Start(cb api.Callback[T], cores int) error {
	if cb == nil {
		return l.nilCallback()
	}
	q, err := newQueue[T](&l.workers)
	if err != nil {
		return err
	}
	st := &levelState[T]{q: q, sig: concurrency.NewLevelSignal()}
	l.running.Store(true)
	l.state.Store(st)
	l.launch(workerCount(l.scales, cores), func(int) {
		for l.running.Load() {
			st.sig.Wait()
			st.sig.Reset()
			drain(st.q, cb)
		}
	})
	return nil
}

// Stop halts and joins the workers. Repeated calls are no-ops.
func (l *level[T]) Stop() {
	if !l.halt() {
		return
	}
	// Close latches the level, so no worker can block again after this.
	l.state.Load().sig.Close()
	l.join()
	l.state.Store(nil)
}

// ScalesWithCores reports whether Start honours its cores argument.
func (l *level[T]) ScalesWithCores() bool {
	return l.scales
}

// SingleThreadLevel wakes its only worker with a manual-reset signal.
type SingleThreadLevel[T any] struct {
	level[T]
}

// NewSingleThreadLevel builds an unstarted engine. The cores argument of
// Start is ignored.
func NewSingleThreadLevel[T any](opts ...Option) *SingleThreadLevel[T] {
	e := &SingleThreadLevel[T]{}
	e.init(KindSingleThreadLevel, opts)
	return e
}

// PerCoreLevel runs one worker per core over a shared queue. One Set may
// wake every idle worker; they then race on the lock-free dequeue.
type PerCoreLevel[T any] struct {
	level[T]
}

// NewPerCoreLevel builds an unstarted engine.
func NewPerCoreLevel[T any](opts ...Option) *PerCoreLevel[T] {
	e := &PerCoreLevel[T]{}
	e.init(KindPerCoreLevel, opts)
	e.scales = true
	return e
}
