// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for CPU affinity. Platform-specific implementations are located
// in separate files (affinity_linux.go, affinity_windows.go, etc.) guarded by build tags.
//
// Callers must hold runtime.LockOSThread for the pin to stay attached to
// their goroutine.

package affinity

import (
	"errors"
	"runtime"
)

// ErrNotSupported is returned on platforms without thread affinity control.
var ErrNotSupported = errors.New("affinity: not supported on this platform")

// Pin binds the current OS thread to the given logical CPU.
func Pin(cpuID int) error {
	if cpuID < 0 {
		return errors.New("affinity: negative cpu id")
	}
	return setAffinityPlatform(cpuID)
}

// Unpin restores the affinity mask the process started with.
func Unpin() error {
	return resetAffinityPlatform()
}

// Allowed lists the logical CPUs the process may run on.
func Allowed() []int {
	if cpus := allowedPlatform(); len(cpus) > 0 {
		return cpus
	}
	cpus := make([]int, runtime.NumCPU())
	for i := range cpus {
		cpus[i] = i
	}
	return cpus
}

// CPUForWorker maps a worker index onto an allowed logical CPU, wrapping around.
func CPUForWorker(worker int) int {
	cpus := Allowed()
	if worker < 0 {
		return cpus[0]
	}
	return cpus[worker%len(cpus)]
}
