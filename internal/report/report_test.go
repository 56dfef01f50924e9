package report_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-scaletest/control"
	"github.com/momentics/hioload-scaletest/engine"
	"github.com/momentics/hioload-scaletest/internal/bench"
	"github.com/momentics/hioload-scaletest/internal/report"
	"github.com/momentics/hioload-scaletest/internal/topology"
)

func TestMillis(t *testing.T) {
	assert.Equal(t, "1.5000ms", report.Millis(1500*time.Microsecond))
	assert.Equal(t, "1,234.0000ms", report.Millis(1234*time.Millisecond))
	assert.Equal(t, "0.0001ms", report.Millis(100*time.Nanosecond))
}

func TestHeader(t *testing.T) {
	host := topology.Host{
		Processors: []topology.Processor{
			{Name: "Xeon", Description: "GenuineIntel family 6 model 85", PhysicalCores: 8, LogicalCores: 16},
		},
		TotalPhysicalCores: 8,
		LogicalCores:       16,
		MemoryMB:           32768,
	}
	cfg := control.Default()

	var buf bytes.Buffer
	require.NoError(t, report.Header(&buf, host, cfg))

	want := strings.Join([]string{
		"CPUs:",
		"Xeon",
		"GenuineIntel family 6 model 85",
		"Physical cores: 8",
		"",
		"Total CPUs: 1",
		"Total physical cores: 8",
		"Total logical cores: 16",
		"Total Memory: 32GB",
		"",
		"Using physical cores for a total of 4 cores for processing (and 4 for clients)",
		"Testing with 20,000,000 elements with a work load of 1 each",
		"",
		"",
	}, "\n")
	assert.Equal(t, want, buf.String())
}

func TestHeaderLogicalCores(t *testing.T) {
	host := topology.Host{TotalPhysicalCores: 2, LogicalCores: 4, MemoryMB: 512, Features: []string{"sse2", "avx2"}}
	cfg := control.Default()
	cfg.UseLogicalCores = true

	var buf bytes.Buffer
	require.NoError(t, report.Header(&buf, host, cfg))
	out := buf.String()
	assert.Contains(t, out, "Total Memory: 512MB\n")
	assert.Contains(t, out, "CPU features: sse2 avx2\n")
	assert.Contains(t, out, "Using logical cores for a total of 2 cores")
}

func TestCombination(t *testing.T) {
	desc, err := engine.Lookup(engine.KindPerCoreLevel)
	require.NoError(t, err)
	res := bench.CombinationResult{
		Combination: bench.Combination{Engine: desc, Clients: 4, Cores: 2},
		Trials: []bench.TrialResult{
			{Elapsed: 2 * time.Second, MeanLatency: time.Millisecond},
			{Elapsed: 4 * time.Second, MeanLatency: 3 * time.Millisecond},
		},
		AvgElapsed: 3 * time.Second,
		AvgLatency: 2 * time.Millisecond,
	}

	var buf bytes.Buffer
	require.NoError(t, report.Combination(&buf, res))
	lines := strings.Split(buf.String(), "\n")
	require.Len(t, lines, 6)

	assert.Equal(t, "Test: PerCoreLevel (Clients: 4, Cores: 2)", lines[0])
	assert.Equal(t, strings.Repeat(" ", 25)+"Test 1         Test 2         Average        ", lines[1])
	assert.Equal(t, "Avg. response times:     1.0000ms       3.0000ms       2.0000ms       ", lines[2])
	assert.Equal(t, "Total process time:      2,000.0000ms   4,000.0000ms   3,000.0000ms   ", lines[3])
	assert.Empty(t, lines[4])
	assert.Empty(t, lines[5])
}
