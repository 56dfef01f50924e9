// control/config.go
// Author: momentics <momentics@gmail.com>
//
// Benchmark sweep configuration loaded from environment variables over
// compiled defaults.

package control

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-scaletest/core/concurrency"
	"github.com/momentics/hioload-scaletest/engine"
)

const (
	envTrials          = "SCALETEST_TRIALS"
	envWarmupTrials    = "SCALETEST_WARMUP_TRIALS"
	envElementsPerCore = "SCALETEST_ELEMENTS_PER_CORE"
	envWorkLoad        = "SCALETEST_WORKLOAD"
	envUseLogicalCores = "SCALETEST_USE_LOGICAL_CORES"
	envMaxOnly         = "SCALETEST_MAX_ONLY"
	envEngines         = "SCALETEST_ENGINES"
	envQueue           = "SCALETEST_QUEUE"
	envRingCapacity    = "SCALETEST_RING_CAPACITY"
	envPinWorkers      = "SCALETEST_PIN_WORKERS"
	envTrialTimeout    = "SCALETEST_TRIAL_TIMEOUT"
	envCollectGarbage  = "SCALETEST_COLLECT_GARBAGE"
	envLogLevel        = "SCALETEST_LOG_LEVEL"
	envLogFormat       = "SCALETEST_LOG_FORMAT"
)

// Log formats accepted by NewLogger.
const (
	LogFormatText = "text"
	LogFormatJSON = "json"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

// Config holds the benchmark sweep parameters.
type Config struct {
	// Trials is the number of measured trials per combination.
	Trials int
	// WarmupTrials are run first and discarded.
	WarmupTrials int
	// ElementsPerCore times the cores per side gives the fixed item total
	// of every trial.
	ElementsPerCore int
	// WorkLoad scales the synthetic per-item work (WorkLoad*100 iterations).
	WorkLoad int
	// UseLogicalCores sizes the sweep from logical instead of physical cores.
	UseLogicalCores bool
	// MaxOnly restricts the client and core sweep to its maximum.
	MaxOnly bool
	// Engines is a comma separated list of engine kinds, empty for all.
	Engines string

	Queue          concurrency.QueueKind
	RingCapacity   int
	PinWorkers     bool
	TrialTimeout   time.Duration
	CollectGarbage bool

	LogLevel  logrus.Level
	LogFormat string
}

// Default returns the standard sweep: physical cores, max parallelism only.
func Default() Config {
	return Config{
		Trials:          3,
		WarmupTrials:    1,
		ElementsPerCore: 5_000_000,
		WorkLoad:        1,
		UseLogicalCores: false,
		MaxOnly:         true,
		Queue:           concurrency.QueueLinked,
		RingCapacity:    concurrency.DefaultRingCapacity,
		CollectGarbage:  true,
		LogLevel:        logrus.InfoLevel,
		LogFormat:       LogFormatText,
	}
}

// Load reads configuration from the process environment.
func Load() (Config, error) {
	return LoadFrom(os.Getenv)
}

// LoadFrom applies overrides from getenv over Default and validates the result.
func LoadFrom(getenv func(string) string) (Config, error) {
	cfg := Default()
	var errs []error

	intVar := func(key string, dst *int) {
		if v := getenv(key); v != "" {
			n, err := strconv.Atoi(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = n
		}
	}
	boolVar := func(key string, dst *bool) {
		if v := getenv(key); v != "" {
			b, err := strconv.ParseBool(strings.TrimSpace(v))
			if err != nil {
				errs = append(errs, fmt.Errorf("%s: %w", key, err))
				return
			}
			*dst = b
		}
	}

	intVar(envTrials, &cfg.Trials)
	intVar(envWarmupTrials, &cfg.WarmupTrials)
	intVar(envElementsPerCore, &cfg.ElementsPerCore)
	intVar(envWorkLoad, &cfg.WorkLoad)
	boolVar(envUseLogicalCores, &cfg.UseLogicalCores)
	boolVar(envMaxOnly, &cfg.MaxOnly)
	intVar(envRingCapacity, &cfg.RingCapacity)
	boolVar(envPinWorkers, &cfg.PinWorkers)
	boolVar(envCollectGarbage, &cfg.CollectGarbage)

	if v := getenv(envEngines); v != "" {
		cfg.Engines = strings.TrimSpace(v)
	}
	if v := getenv(envQueue); v != "" {
		k, err := concurrency.ParseQueueKind(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envQueue, err))
		} else {
			cfg.Queue = k
		}
	}
	if v := getenv(envTrialTimeout); v != "" {
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envTrialTimeout, err))
		} else {
			cfg.TrialTimeout = d
		}
	}
	if v := getenv(envLogLevel); v != "" {
		lvl, err := logrus.ParseLevel(strings.TrimSpace(v))
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", envLogLevel, err))
		} else {
			cfg.LogLevel = lvl
		}
	}
	if v := getenv(envLogFormat); v != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(v))
	}

	if len(errs) > 0 {
		return cfg, fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return cfg, cfg.Validate()
}

// Validate checks value ranges.
func (c Config) Validate() error {
	var errs []error
	if c.Trials < 1 {
		errs = append(errs, fmt.Errorf("trials must be >= 1, got %d", c.Trials))
	}
	if c.WarmupTrials < 0 {
		errs = append(errs, fmt.Errorf("warmup trials must be >= 0, got %d", c.WarmupTrials))
	}
	if c.ElementsPerCore < 1 {
		errs = append(errs, fmt.Errorf("elements per core must be >= 1, got %d", c.ElementsPerCore))
	}
	if c.WorkLoad < 0 {
		errs = append(errs, fmt.Errorf("workload must be >= 0, got %d", c.WorkLoad))
	}
	if c.RingCapacity < 0 {
		errs = append(errs, fmt.Errorf("ring capacity must be >= 0, got %d", c.RingCapacity))
	}
	if c.TrialTimeout < 0 {
		errs = append(errs, fmt.Errorf("trial timeout must be >= 0, got %s", c.TrialTimeout))
	}
	if _, err := concurrency.ParseQueueKind(string(c.Queue)); err != nil {
		errs = append(errs, err)
	}
	if _, err := engine.ParseKinds(c.Engines); err != nil {
		errs = append(errs, err)
	}
	switch c.LogFormat {
	case "", LogFormatText, LogFormatJSON:
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
	}
	return nil
}

// EngineOptions translates the queue and pinning settings into engine options.
func (c Config) EngineOptions() []engine.Option {
	return []engine.Option{
		engine.WithQueue(c.Queue, c.RingCapacity),
		engine.WithPinning(c.PinWorkers),
	}
}
