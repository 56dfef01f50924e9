// File: core/concurrency/signal.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Wake primitives coordinating idle workers with producers. EdgeSignal
// releases one waiter per Set and rearms itself; LevelSignal stays set until
// Reset and releases every waiter. Neither takes a mutex.

package concurrency

import "sync/atomic"

// EdgeSignal is an auto-reset event holding at most one pending wake.
type EdgeSignal struct {
	token  chan struct{}
	done   chan struct{}
	closed atomic.Bool
}

// NewEdgeSignal returns an unset edge signal.
func NewEdgeSignal() *EdgeSignal {
	return &EdgeSignal{
		token: make(chan struct{}, 1),
		done:  make(chan struct{}),
	}
}

// Set deposits a wake token unless one is already pending.
func (s *EdgeSignal) Set() {
	select {
	case s.token <- struct{}{}:
	default:
	}
}

// Wait consumes one token. It returns false once the signal is closed.
func (s *EdgeSignal) Wait() bool {
	select {
	case <-s.token:
		return true
	case <-s.done:
		return false
	}
}

// Close releases all current and future waiters.
func (s *EdgeSignal) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.done)
	}
}

// event is a one-shot latch; LevelSignal swaps in a fresh one on Reset.
type event struct {
	ch    chan struct{}
	fired atomic.Bool
}

func newEvent() *event {
	return &event{ch: make(chan struct{})}
}

func (e *event) fire() {
	if e.fired.CompareAndSwap(false, true) {
		close(e.ch)
	}
}

// LevelSignal is a manual-reset event.
type LevelSignal struct {
	cur    atomic.Pointer[event]
	closed atomic.Bool
}

// NewLevelSignal returns an unset level signal.
func NewLevelSignal() *LevelSignal {
	s := &LevelSignal{}
	s.cur.Store(newEvent())
	return s
}

// Set raises the level. Setting an already set signal is a no-op.
func (s *LevelSignal) Set() {
	s.cur.Load().fire()
}

// Reset lowers the level. After Close the level stays raised.
func (s *LevelSignal) Reset() {
	if s.closed.Load() {
		return
	}
	e := s.cur.Load()
	if !e.fired.Load() {
		return
	}
	if s.cur.CompareAndSwap(e, newEvent()) && s.closed.Load() {
		// Close raced with the swap, re-latch
		s.Set()
	}
}

// IsSet reports the current level.
func (s *LevelSignal) IsSet() bool {
	return s.cur.Load().fired.Load()
}

// Wait blocks until the level is raised.
func (s *LevelSignal) Wait() {
	<-s.cur.Load().ch
}

// Close latches the level permanently so every waiter returns.
func (s *LevelSignal) Close() {
	s.closed.Store(true)
	s.Set()
}

// Closed reports whether Close was called.
func (s *LevelSignal) Closed() bool {
	return s.closed.Load()
}
