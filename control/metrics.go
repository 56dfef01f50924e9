// control/metrics.go
// Author: momentics <momentics@gmail.com>
//
// Prometheus collectors for trial results. Collectors live on a caller
// supplied registry so several drivers can coexist in one process.

package control

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const metricsNamespace = "scaletest"

// Trial phases.
const (
	PhaseWarmup   = "warmup"
	PhaseMeasured = "measured"
)

// Metrics records per-trial outcomes.
type Metrics struct {
	registry       *prometheus.Registry
	trialsTotal    *prometheus.CounterVec
	itemsProcessed *prometheus.CounterVec
	trialElapsed   *prometheus.HistogramVec
	meanLatency    *prometheus.GaugeVec
}

// NewMetrics creates the collectors and registers them on a fresh registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		trialsTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "trials_total",
				Help:      "Total number of completed trials.",
			},
			[]string{"engine", "phase"},
		),
		itemsProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: metricsNamespace,
				Name:      "items_processed_total",
				Help:      "Total number of items delivered to the trial callback.",
			},
			[]string{"engine"},
		),
		trialElapsed: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: metricsNamespace,
				Name:      "trial_elapsed_seconds",
				Help:      "Wall-clock time of measured trials.",
				Buckets:   prometheus.ExponentialBuckets(0.001, 2, 16),
			},
			[]string{"engine"},
		),
		meanLatency: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: metricsNamespace,
				Name:      "mean_latency_seconds",
				Help:      "Mean per-item latency of the last measured trial.",
			},
			[]string{"engine", "clients", "cores"},
		),
	}
	m.registry.MustRegister(m.trialsTotal, m.itemsProcessed, m.trialElapsed, m.meanLatency)
	return m
}

// Registry exposes the underlying registry for gathering.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveTrial records one finished trial.
func (m *Metrics) ObserveTrial(engine string, clients, cores int, warmup bool, items int64, elapsed, latency time.Duration) {
	phase := PhaseMeasured
	if warmup {
		phase = PhaseWarmup
	}
	m.trialsTotal.WithLabelValues(engine, phase).Inc()
	m.itemsProcessed.WithLabelValues(engine).Add(float64(items))
	if warmup {
		return
	}
	m.trialElapsed.WithLabelValues(engine).Observe(elapsed.Seconds())
	m.meanLatency.WithLabelValues(engine, strconv.Itoa(clients), strconv.Itoa(cores)).Set(latency.Seconds())
}

// Summary gathers every series and sums samples per metric family. Histograms
// contribute their sample count.
func (m *Metrics) Summary() (map[string]float64, error) {
	families, err := m.registry.Gather()
	if err != nil {
		return nil, err
	}
	out := make(map[string]float64, len(families))
	for _, fam := range families {
		var sum float64
		for _, metric := range fam.GetMetric() {
			switch {
			case metric.GetCounter() != nil:
				sum += metric.GetCounter().GetValue()
			case metric.GetGauge() != nil:
				sum += metric.GetGauge().GetValue()
			case metric.GetHistogram() != nil:
				sum += float64(metric.GetHistogram().GetSampleCount())
			}
		}
		out[fam.GetName()] = sum
	}
	return out, nil
}
