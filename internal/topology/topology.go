// File: internal/topology/topology.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Host topology facts for the report header: processors, core counts,
// installed memory and CPU feature flags.

package topology

import (
	"fmt"
	"runtime"

	"github.com/klauspost/cpuid/v2"
	"github.com/pbnjay/memory"
	"golang.org/x/sys/cpu"
)

// Processor describes one physical package.
type Processor struct {
	Name          string
	Description   string
	PhysicalCores int
	LogicalCores  int
}

// Host aggregates the machine facts.
type Host struct {
	Processors         []Processor
	TotalPhysicalCores int
	LogicalCores       int
	MemoryMB           uint64
	Features           []string
}

// Inspect reads the topology of the current machine.
func Inspect() Host {
	return build(cpuid.CPU, runtime.NumCPU(), memory.TotalMemory())
}

func build(info cpuid.CPUInfo, logical int, memBytes uint64) Host {
	if logical < 1 {
		logical = 1
	}
	perPkgLogical := info.LogicalCores
	if perPkgLogical < 1 || perPkgLogical > logical {
		perPkgLogical = logical
	}
	sockets := logical / perPkgLogical
	if sockets < 1 {
		sockets = 1
	}

	perPkgPhysical := info.PhysicalCores
	if perPkgPhysical < 1 {
		tpc := info.ThreadsPerCore
		if tpc < 1 {
			tpc = 1
		}
		perPkgPhysical = perPkgLogical / tpc
		if perPkgPhysical < 1 {
			perPkgPhysical = 1
		}
	}

	name := info.BrandName
	if name == "" {
		name = runtime.GOARCH + " processor"
	}
	desc := fmt.Sprintf("%s Family %d Model %d", vendor(info), info.Family, info.Model)

	h := Host{
		LogicalCores: logical,
		MemoryMB:     memBytes / 1024 / 1024,
		Features:     features(),
	}
	for i := 0; i < sockets; i++ {
		h.Processors = append(h.Processors, Processor{
			Name:          name,
			Description:   desc,
			PhysicalCores: perPkgPhysical,
			LogicalCores:  perPkgLogical,
		})
		h.TotalPhysicalCores += perPkgPhysical
	}
	return h
}

func vendor(info cpuid.CPUInfo) string {
	if info.VendorString != "" {
		return info.VendorString
	}
	return runtime.GOARCH
}

// features lists the SIMD extensions reported by x/sys/cpu.
func features() []string {
	var out []string
	add := func(ok bool, name string) {
		if ok {
			out = append(out, name)
		}
	}
	switch runtime.GOARCH {
	case "amd64", "386":
		add(cpu.X86.HasSSE2, "sse2")
		add(cpu.X86.HasSSE42, "sse4.2")
		add(cpu.X86.HasAVX, "avx")
		add(cpu.X86.HasAVX2, "avx2")
		add(cpu.X86.HasAVX512F, "avx512f")
	case "arm64":
		add(cpu.ARM64.HasASIMD, "asimd")
		add(cpu.ARM64.HasATOMICS, "atomics")
		add(cpu.ARM64.HasSVE, "sve")
	}
	return out
}

// TotalCPUs is the number of physical packages.
func (h Host) TotalCPUs() int {
	return len(h.Processors)
}

// CoresPerSide halves the chosen core count between producers and consumers,
// with a floor of one.
func (h Host) CoresPerSide(useLogical bool) int {
	n := h.TotalPhysicalCores
	if useLogical {
		n = h.LogicalCores
	}
	if n /= 2; n < 1 {
		n = 1
	}
	return n
}

// MemoryString renders installed memory: whole GB above 1024 MB, else MB.
func (h Host) MemoryString() string {
	if h.MemoryMB > 1024 {
		return fmt.Sprintf("%dGB", h.MemoryMB/1024)
	}
	return fmt.Sprintf("%dMB", h.MemoryMB)
}
