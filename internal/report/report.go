// File: internal/report/report.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Plain text rendering of the host header and per-combination result tables.

package report

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/momentics/hioload-scaletest/control"
	"github.com/momentics/hioload-scaletest/internal/bench"
	"github.com/momentics/hioload-scaletest/internal/topology"
)

const (
	labelWidth  = 25
	columnWidth = 15
)

// Millis renders d as milliseconds with four decimals and grouped thousands.
func Millis(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	return humanize.FormatFloat("#,###.####", ms) + "ms"
}

// Header writes the host description and the sweep parameters.
func Header(w io.Writer, host topology.Host, cfg control.Config) error {
	var b strings.Builder
	b.WriteString("CPUs:\n")
	for _, p := range host.Processors {
		fmt.Fprintf(&b, "%s\n%s\nPhysical cores: %d\n\n", p.Name, p.Description, p.PhysicalCores)
	}
	fmt.Fprintf(&b, "Total CPUs: %d\n", host.TotalCPUs())
	fmt.Fprintf(&b, "Total physical cores: %d\n", host.TotalPhysicalCores)
	fmt.Fprintf(&b, "Total logical cores: %d\n", host.LogicalCores)
	fmt.Fprintf(&b, "Total Memory: %s\n", host.MemoryString())
	if len(host.Features) > 0 {
		fmt.Fprintf(&b, "CPU features: %s\n", strings.Join(host.Features, " "))
	}
	b.WriteString("\n")

	kind := "physical"
	if cfg.UseLogicalCores {
		kind = "logical"
	}
	side := host.CoresPerSide(cfg.UseLogicalCores)
	fmt.Fprintf(&b, "Using %s cores for a total of %d cores for processing (and %d for clients)\n", kind, side, side)
	fmt.Fprintf(&b, "Testing with %s elements with a work load of %d each\n\n",
		humanize.Comma(int64(cfg.ElementsPerCore)*int64(side)), cfg.WorkLoad)

	_, err := io.WriteString(w, b.String())
	return err
}

// Combination writes the result table of one combination: a row of mean
// latencies and a row of trial elapsed times, each closed by the average.
func Combination(w io.Writer, res bench.CombinationResult) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Test: %s\n", res.Combination)

	titles := make([]string, 0, len(res.Trials)+1)
	latencies := make([]string, 0, len(res.Trials)+1)
	elapsed := make([]string, 0, len(res.Trials)+1)
	for i, t := range res.Trials {
		titles = append(titles, fmt.Sprintf("Test %d", i+1))
		latencies = append(latencies, Millis(t.MeanLatency))
		elapsed = append(elapsed, Millis(t.Elapsed))
	}
	titles = append(titles, "Average")
	latencies = append(latencies, Millis(res.AvgLatency))
	elapsed = append(elapsed, Millis(res.AvgElapsed))

	row(&b, "", titles)
	row(&b, "Avg. response times:", latencies)
	row(&b, "Total process time:", elapsed)
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func row(b *strings.Builder, label string, cells []string) {
	fmt.Fprintf(b, "%-*s", labelWidth, label)
	for _, c := range cells {
		fmt.Fprintf(b, "%-*s", columnWidth, c)
	}
	b.WriteString("\n")
}
