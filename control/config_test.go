package control_test

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-scaletest/control"
	"github.com/momentics/hioload-scaletest/core/concurrency"
)

func env(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestLoadDefaults(t *testing.T) {
	cfg, err := control.LoadFrom(env(nil))
	require.NoError(t, err)
	assert.Equal(t, control.Default(), cfg)
	assert.Equal(t, 3, cfg.Trials)
	assert.Equal(t, 1, cfg.WarmupTrials)
	assert.Equal(t, 5_000_000, cfg.ElementsPerCore)
	assert.Equal(t, 1, cfg.WorkLoad)
	assert.False(t, cfg.UseLogicalCores)
	assert.True(t, cfg.MaxOnly)
	assert.Equal(t, concurrency.QueueLinked, cfg.Queue)
	assert.Equal(t, logrus.InfoLevel, cfg.LogLevel)
}

func TestLoadOverrides(t *testing.T) {
	cfg, err := control.LoadFrom(env(map[string]string{
		"SCALETEST_TRIALS":            "5",
		"SCALETEST_WARMUP_TRIALS":     "0",
		"SCALETEST_ELEMENTS_PER_CORE": "1000",
		"SCALETEST_WORKLOAD":          "4",
		"SCALETEST_USE_LOGICAL_CORES": "true",
		"SCALETEST_MAX_ONLY":          "false",
		"SCALETEST_ENGINES":           "single-edge,roundrobin-level",
		"SCALETEST_QUEUE":             "ring",
		"SCALETEST_RING_CAPACITY":     "4096",
		"SCALETEST_PIN_WORKERS":       "1",
		"SCALETEST_TRIAL_TIMEOUT":     "30s",
		"SCALETEST_COLLECT_GARBAGE":   "false",
		"SCALETEST_LOG_LEVEL":         "debug",
		"SCALETEST_LOG_FORMAT":        "JSON",
	}))
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Trials)
	assert.Equal(t, 0, cfg.WarmupTrials)
	assert.Equal(t, 1000, cfg.ElementsPerCore)
	assert.Equal(t, 4, cfg.WorkLoad)
	assert.True(t, cfg.UseLogicalCores)
	assert.False(t, cfg.MaxOnly)
	assert.Equal(t, "single-edge,roundrobin-level", cfg.Engines)
	assert.Equal(t, concurrency.QueueRing, cfg.Queue)
	assert.Equal(t, 4096, cfg.RingCapacity)
	assert.True(t, cfg.PinWorkers)
	assert.Equal(t, 30*time.Second, cfg.TrialTimeout)
	assert.False(t, cfg.CollectGarbage)
	assert.Equal(t, logrus.DebugLevel, cfg.LogLevel)
	assert.Equal(t, control.LogFormatJSON, cfg.LogFormat)
	assert.Len(t, cfg.EngineOptions(), 2)
}

func TestLoadRejectsMalformedValues(t *testing.T) {
	_, err := control.LoadFrom(env(map[string]string{
		"SCALETEST_TRIALS":    "three",
		"SCALETEST_QUEUE":     "stack",
		"SCALETEST_LOG_LEVEL": "loud",
	}))
	require.ErrorIs(t, err, control.ErrInvalidConfig)
	assert.ErrorIs(t, err, concurrency.ErrUnknownQueueKind)
	assert.Contains(t, err.Error(), "SCALETEST_TRIALS")
	assert.Contains(t, err.Error(), "SCALETEST_LOG_LEVEL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*control.Config)
	}{
		{"zero trials", func(c *control.Config) { c.Trials = 0 }},
		{"negative warmup", func(c *control.Config) { c.WarmupTrials = -1 }},
		{"zero elements", func(c *control.Config) { c.ElementsPerCore = 0 }},
		{"negative workload", func(c *control.Config) { c.WorkLoad = -1 }},
		{"negative ring", func(c *control.Config) { c.RingCapacity = -1 }},
		{"negative timeout", func(c *control.Config) { c.TrialTimeout = -time.Second }},
		{"unknown engine", func(c *control.Config) { c.Engines = "lifo" }},
		{"unknown format", func(c *control.Config) { c.LogFormat = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := control.Default()
			tt.mutate(&cfg)
			assert.ErrorIs(t, cfg.Validate(), control.ErrInvalidConfig)
		})
	}
	assert.NoError(t, control.Default().Validate())
}
