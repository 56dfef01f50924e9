// File: internal/bench/types.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package bench

import (
	"fmt"
	"time"

	"github.com/momentics/hioload-scaletest/engine"
)

// Combination is one point of the sweep.
type Combination struct {
	Engine  engine.Descriptor
	Clients int
	Cores   int
}

func (c Combination) String() string {
	return fmt.Sprintf("%s (Clients: %d, Cores: %d)", c.Engine.Name, c.Clients, c.Cores)
}

// TrialResult holds the measurements of one trial.
type TrialResult struct {
	Items       int64
	Elapsed     time.Duration
	MeanLatency time.Duration
}

// CombinationResult aggregates the measured trials of a combination.
type CombinationResult struct {
	Combination
	Trials     []TrialResult
	AvgElapsed time.Duration
	AvgLatency time.Duration
}

func aggregate(c Combination, trials []TrialResult) CombinationResult {
	res := CombinationResult{Combination: c, Trials: trials}
	if len(trials) == 0 {
		return res
	}
	var elapsed, latency time.Duration
	for _, t := range trials {
		elapsed += t.Elapsed
		latency += t.MeanLatency
	}
	res.AvgElapsed = elapsed / time.Duration(len(trials))
	res.AvgLatency = latency / time.Duration(len(trials))
	return res
}
