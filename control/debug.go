// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Probe registry for dumping live driver state into the log.

package control

import (
	"sort"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/momentics/hioload-scaletest/api"
)

var _ api.ProbeRegistry = (*DebugProbes)(nil)

// DebugProbes holds named state readers registered by the driver.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]func() any
}

// NewDebugProbes creates a probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]func() any),
	}
}

// RegisterProbe inserts or replaces a named probe.
func (dp *DebugProbes) RegisterProbe(name string, fn func() any) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = fn
}

// Names lists registered probes in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for k := range dp.probes {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe.
func (dp *DebugProbes) DumpState() logrus.Fields {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(logrus.Fields, len(dp.probes))
	for k, fn := range dp.probes {
		out[k] = fn()
	}
	return out
}

// Log writes the current probe values as one entry at the given level.
func (dp *DebugProbes) Log(log *logrus.Entry, level logrus.Level, msg string) {
	if !log.Logger.IsLevelEnabled(level) {
		return
	}
	log.WithFields(dp.DumpState()).Log(level, msg)
}
