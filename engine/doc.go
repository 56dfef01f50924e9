// File: engine/doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package engine implements the interchangeable producer/consumer dispatch
// strategies measured by the scale test:
//
//   - SingleThreadPolling: one shared queue, one busy-polling worker.
//   - SingleThreadEdge: one shared queue, one worker woken by an auto-reset signal.
//   - SingleThreadLevel: one shared queue, one worker woken by a manual-reset signal.
//   - PerCorePolling: one shared queue, one busy-polling worker per core.
//   - PerCoreLevel: one shared queue, one worker per core, one shared manual-reset signal.
//   - RoundRobinLevel: one queue, worker and manual-reset signal per core; producers
//     pick the lane with an atomic counter.
//
// "Per core" means worker count equals the cores argument of Start. Workers are
// only pinned to CPUs when WithPinning is given.
//
// The dispatch path takes no locks: queues are lock-free and wake-ups go
// through core/concurrency signals. Every engine instance is meant for a single
// Start/Stop cycle; build a fresh one per trial.
package engine
