// File: engine/workers.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Worker group shared by every engine: running flag, launch, join.

package engine

import (
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"

	"github.com/momentics/hioload-scaletest/affinity"
	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/core/concurrency"
)

type workers struct {
	kind    Kind
	opts    options
	running atomic.Bool
	wg      sync.WaitGroup
}

func (w *workers) init(kind Kind, opts []Option) {
	w.kind = kind
	w.opts = buildOptions(opts)
	w.opts.log = w.opts.log.WithField("engine", string(kind))
}

func (w *workers) nilCallback() error {
	return api.NewError(api.ErrCodeInvalidArgument, "engine: nil callback").
		WithContext("engine", string(w.kind))
}

// launch starts n workers running loop and returns once all are spawned.
func (w *workers) launch(n int, loop func(id int)) {
	for i := 0; i < n; i++ {
		w.wg.Add(1)
		go w.run(i, loop)
	}
}

func (w *workers) run(id int, loop func(id int)) {
	defer w.wg.Done()
	log := w.opts.log.WithField("worker", id)
	if w.opts.pin {
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()
		cpu := affinity.CPUForWorker(id)
		if err := affinity.Pin(cpu); err != nil {
			log.WithError(err).WithField("cpu", cpu).Warn("worker pinning failed")
		} else {
			defer affinity.Unpin()
		}
	}
	log.Debug("worker started")
	loop(id)
	log.Debug("worker exited")
}

// halt flips running to false. It reports false when the engine was not
// running, which makes Stop idempotent.
func (w *workers) halt() bool {
	return w.running.CompareAndSwap(true, false)
}

func (w *workers) join() {
	w.wg.Wait()
}

// workerCount is 1 for single-thread engines and cores otherwise.
func workerCount(scales bool, cores int) int {
	if !scales {
		return 1
	}
	return clampCores(cores)
}

func clampCores(cores int) int {
	if cores < 1 {
		return 1
	}
	return cores
}

func newQueue[T any](w *workers) (api.Queue[T], error) {
	q, err := concurrency.NewQueue[T](w.opts.queue, w.opts.ringCapacity)
	if err != nil {
		return nil, fmt.Errorf("engine %s: %w", w.kind, err)
	}
	return q, nil
}

// boundedQueue is implemented by queues that can fill up.
type boundedQueue[T any] interface {
	EnqueueWhile(item T, keep func() bool) bool
}

// offer enqueues item. On a full bounded queue it waits only while the
// engine runs, so a producer racing Stop returns and the item is dropped.
func offer[T any](w *workers, q api.Queue[T], item T) bool {
	if b, ok := q.(boundedQueue[T]); ok {
		return b.EnqueueWhile(item, w.running.Load)
	}
	q.Enqueue(item)
	return true
}

// drain delivers items until the queue reports empty.
func drain[T any](q api.Queue[T], cb api.Callback[T]) {
	for {
		item, ok := q.Dequeue()
		if !ok {
			return
		}
		cb(item)
	}
}
