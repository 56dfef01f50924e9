// Package bench drives the dispatch engines through repeated trials.
//
// For every engine, client count and core count of the sweep it runs the
// configured warm-up trials (discarded) followed by the measured trials. A
// trial starts a fresh engine, arms the producers behind a start gate, takes
// the start instant once, and waits for the callback to count the last item.
// The total item count of a trial is fixed for the whole sweep, only the
// parallelism varies.
package bench
