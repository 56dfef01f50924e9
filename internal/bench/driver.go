// File: internal/bench/driver.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bench

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/eapache/queue"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/momentics/hioload-scaletest/api"
	"github.com/momentics/hioload-scaletest/control"
	"github.com/momentics/hioload-scaletest/core/clock"
	"github.com/momentics/hioload-scaletest/engine"
	"github.com/momentics/hioload-scaletest/internal/topology"
)

// ErrNoItems is returned when the per-producer share rounds down to zero.
var ErrNoItems = errors.New("bench: no items to produce")

// producers re-check cancellation every cancelCheckMask+1 items
const cancelCheckMask = 1023

// Option configures a Driver.
type Option func(*Driver)

// WithLogger sets the log entry. Engines log through it at debug level.
func WithLogger(log *logrus.Entry) Option {
	return func(d *Driver) {
		if log != nil {
			d.log = log
		}
	}
}

// WithMetrics records every trial into m.
func WithMetrics(m *control.Metrics) Option {
	return func(d *Driver) {
		d.metrics = m
	}
}

// WithProbes registers the driver's progress probes on p.
func WithProbes(p api.ProbeRegistry) Option {
	return func(d *Driver) {
		d.probes = p
	}
}

// WithEngines overrides the engine list taken from the config.
func WithEngines(engines []engine.Descriptor) Option {
	return func(d *Driver) {
		d.engines = engines
	}
}

// WithObserver is called after each combination completes.
func WithObserver(fn func(CombinationResult)) Option {
	return func(d *Driver) {
		d.observer = fn
	}
}

// Driver runs the benchmark sweep.
type Driver struct {
	cfg      control.Config
	host     topology.Host
	engines  []engine.Descriptor
	log      *logrus.Entry
	metrics  *control.Metrics
	probes   api.ProbeRegistry
	observer func(CombinationResult)

	current   atomic.Value // string
	trial     atomic.Int64
	completed atomic.Int64
}

// New validates cfg and builds a driver for host.
func New(cfg control.Config, host topology.Host, opts ...Option) (*Driver, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	d := &Driver{
		cfg:  cfg,
		host: host,
		log:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.engines == nil {
		engines, err := engine.ParseKinds(cfg.Engines)
		if err != nil {
			return nil, err
		}
		d.engines = engines
	}
	d.current.Store("")
	if d.probes != nil {
		d.probes.RegisterProbe("combination", func() any { return d.current.Load() })
		d.probes.RegisterProbe("trial", func() any { return d.trial.Load() })
		d.probes.RegisterProbe("completed_combinations", func() any { return d.completed.Load() })
	}
	return d, nil
}

// CoresPerSide is the maximum of both the client and the core sweep.
func (d *Driver) CoresPerSide() int {
	return d.host.CoresPerSide(d.cfg.UseLogicalCores)
}

// TotalItems is the fixed item count of every trial.
func (d *Driver) TotalItems() int {
	return d.cfg.ElementsPerCore * d.CoresPerSide()
}

// planQueue builds the sweep work list: engine order, then clients, then cores.
func (d *Driver) planQueue() *queue.Queue {
	side := d.CoresPerSide()
	q := queue.New()
	for _, desc := range d.engines {
		maxCores := 1
		if desc.ScalesWithCores {
			maxCores = side
		}
		firstClients, firstCores := 1, 1
		if d.cfg.MaxOnly {
			firstClients, firstCores = side, maxCores
		}
		for clients := firstClients; clients <= side; clients++ {
			for cores := firstCores; cores <= maxCores; cores++ {
				q.Add(Combination{Engine: desc, Clients: clients, Cores: cores})
			}
		}
	}
	return q
}

// Plan lists the combinations Run will execute, in order.
func (d *Driver) Plan() []Combination {
	q := d.planQueue()
	out := make([]Combination, 0, q.Length())
	for q.Length() > 0 {
		out = append(out, q.Remove().(Combination))
	}
	return out
}

// Run executes the whole sweep. On error it returns the combinations that
// completed before it.
func (d *Driver) Run(ctx context.Context) ([]CombinationResult, error) {
	q := d.planQueue()
	results := make([]CombinationResult, 0, q.Length())
	d.log.WithFields(logrus.Fields{
		"combinations": q.Length(),
		"items":        d.TotalItems(),
		"trials":       d.cfg.Trials,
		"warmup":       d.cfg.WarmupTrials,
	}).Info("sweep started")

	for q.Length() > 0 {
		c := q.Remove().(Combination)
		res, err := d.RunCombination(ctx, c)
		if err != nil {
			return results, err
		}
		results = append(results, res)
		d.completed.Add(1)
		if d.observer != nil {
			d.observer(res)
		}
	}
	d.current.Store("")
	return results, nil
}

// RunCombination runs the warm-up and measured trials of one combination.
func (d *Driver) RunCombination(ctx context.Context, c Combination) (CombinationResult, error) {
	d.current.Store(c.String())
	log := d.log.WithFields(logrus.Fields{
		"engine":  string(c.Engine.Kind),
		"clients": c.Clients,
		"cores":   c.Cores,
	})

	total := d.cfg.WarmupTrials + d.cfg.Trials
	trials := make([]TrialResult, 0, d.cfg.Trials)
	for t := 0; t < total; t++ {
		d.trial.Store(int64(t))
		warmup := t < d.cfg.WarmupTrials
		tr, err := d.RunTrial(ctx, c.Engine, c.Clients, c.Cores)
		if err != nil {
			return CombinationResult{}, fmt.Errorf("%s trial %d: %w", c, t, err)
		}
		log.WithFields(logrus.Fields{
			"trial":   t,
			"warmup":  warmup,
			"elapsed": tr.Elapsed,
			"latency": tr.MeanLatency,
		}).Debug("trial finished")
		if d.metrics != nil {
			d.metrics.ObserveTrial(string(c.Engine.Kind), c.Clients, c.Cores, warmup, tr.Items, tr.Elapsed, tr.MeanLatency)
		}
		if !warmup {
			trials = append(trials, tr)
		}
		if d.cfg.CollectGarbage {
			// forces a collection and returns freed memory to the OS
			debug.FreeOSMemory()
		}
	}

	res := aggregate(c, trials)
	log.WithFields(logrus.Fields{
		"avg_elapsed": res.AvgElapsed,
		"avg_latency": res.AvgLatency,
	}).Info("combination finished")
	return res, nil
}

// RunTrial measures one Start, load, drain, Stop cycle on a fresh engine.
func (d *Driver) RunTrial(ctx context.Context, desc engine.Descriptor, clients, cores int) (TrialResult, error) {
	if clients < 1 {
		clients = 1
	}
	share := d.TotalItems() / clients
	expected := int64(share) * int64(clients)
	if expected == 0 {
		return TrialResult{}, fmt.Errorf("%w: %d items over %d clients", ErrNoItems, d.TotalItems(), clients)
	}

	if d.cfg.TrialTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, d.cfg.TrialTimeout)
		defer cancel()
	}

	opts := append(d.cfg.EngineOptions(), engine.WithLogger(d.log))
	eng := desc.New(opts...)

	var latency, processed atomic.Int64
	done := make(chan struct{})
	work := d.cfg.WorkLoad * 100
	err := eng.Start(func(item api.WorkItem) {
		latency.Add(clock.Nanotime() - item.EnqueuedAt)
		spin(work)
		if processed.Add(1) == expected {
			close(done)
		}
	}, cores)
	if err != nil {
		return TrialResult{}, fmt.Errorf("start %s: %w", desc.Kind, err)
	}

	gate := make(chan struct{})
	var armed sync.WaitGroup
	armed.Add(clients)
	var g errgroup.Group
	for c := 0; c < clients; c++ {
		g.Go(func() error {
			armed.Done()
			<-gate
			for i := 0; i < share; i++ {
				if i&cancelCheckMask == 0 && ctx.Err() != nil {
					return ctx.Err()
				}
				eng.Enqueue(api.WorkItem{EnqueuedAt: clock.Nanotime()})
			}
			return nil
		})
	}

	armed.Wait()
	start := clock.Nanotime()
	close(gate)

	select {
	case <-done:
	case <-ctx.Done():
		eng.Stop()
		_ = g.Wait()
		return TrialResult{}, fmt.Errorf("trial aborted after %d/%d items: %w", processed.Load(), expected, ctx.Err())
	}
	stop := clock.Nanotime()

	eng.Stop()
	if err := g.Wait(); err != nil {
		return TrialResult{}, err
	}

	return TrialResult{
		Items:       expected,
		Elapsed:     time.Duration(stop - start),
		MeanLatency: time.Duration(latency.Load() / expected),
	}, nil
}

// spin is the synthetic per-item work.
//
//go:noinline
func spin(n int) int {
	acc := 0
	for x := 0; x < n; x++ {
		acc += x
	}
	return acc
}
