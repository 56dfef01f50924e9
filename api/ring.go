// Package api
// Author: momentics@gmail.com
//
// Queue contract shared by the dispatch engines.

package api

// Queue is a multi-producer multi-consumer FIFO.
type Queue[T any] interface {
	// Enqueue adds an item. It never drops the item.
	Enqueue(item T)
	// Dequeue removes the oldest item, returns false if empty.
	Dequeue() (T, bool)
}
