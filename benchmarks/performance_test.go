// Package benchmarks
// Author: momentics <momentics@gmail.com>
//
// Performance benchmarks for the queues and dispatch engines.

package benchmarks

import (
	"sync"
	"sync/atomic"
	"testing"

	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/core/concurrency"
	"github.com/momentics/hioload-scaletest/engine"
)

// BenchmarkRingQueueThroughput tests bounded ring queue performance.
func BenchmarkRingQueueThroughput(b *testing.B) {
	q := concurrency.NewRingQueue[int](1024)

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			if !q.TryEnqueue(i) {
				q.Dequeue()
				q.TryEnqueue(i)
			}
			i++
		}
	})
}

// BenchmarkLinkedQueueThroughput tests unbounded linked queue performance.
func BenchmarkLinkedQueueThroughput(b *testing.B) {
	q := concurrency.NewLinkedQueue[int]()

	b.ResetTimer()
	b.RunParallel(func(pb *testing.PB) {
		i := 0
		for pb.Next() {
			q.Enqueue(i)
			q.Dequeue()
			i++
		}
	})
}

// BenchmarkEngines measures b.N items delivered end to end per engine kind.
func BenchmarkEngines(b *testing.B) {
	for _, d := range engine.All() {
		b.Run(string(d.Kind), func(b *testing.B) {
			var processed atomic.Int64
			var wg sync.WaitGroup
			target := int64(b.N)
			wg.Add(1)

			e := d.New()
			err := e.Start(func(api.WorkItem) {
				if processed.Add(1) == target {
					wg.Done()
				}
			}, 2)
			if err != nil {
				b.Fatal(err)
			}
			defer e.Stop()

			b.ResetTimer()
			for i := 0; i < b.N; i++ {
				e.Enqueue(api.WorkItem{})
			}
			wg.Wait()
		})
	}
}
