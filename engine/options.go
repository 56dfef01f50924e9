// File: engine/options.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package engine

import (
	"io"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-scaletest/core/concurrency"
)

type options struct {
	queue        concurrency.QueueKind
	ringCapacity int
	pin          bool
	log          *logrus.Entry
}

// Option configures an engine at construction.
type Option func(*options)

// WithQueue selects the queue backend. ringCapacity only applies to
// concurrency.QueueRing.
func WithQueue(kind concurrency.QueueKind, ringCapacity int) Option {
	return func(o *options) {
		o.queue = kind
		o.ringCapacity = ringCapacity
	}
}

// WithPinning locks every worker to its own OS thread and pins worker i to
// an allowed CPU chosen by affinity.CPUForWorker.
func WithPinning(enabled bool) Option {
	return func(o *options) {
		o.pin = enabled
	}
}

// WithLogger sets the entry used for worker lifecycle logging.
func WithLogger(log *logrus.Entry) Option {
	return func(o *options) {
		if log != nil {
			o.log = log
		}
	}
}

func buildOptions(opts []Option) options {
	o := options{queue: concurrency.QueueLinked}
	for _, fn := range opts {
		fn(&o)
	}
	if o.log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		o.log = logrus.NewEntry(l)
	}
	return o
}
