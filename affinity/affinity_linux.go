//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux-specific implementation for setting thread CPU affinity.

package affinity

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// initial is the process mask captured at startup; Unpin restores it.
var initial unix.CPUSet

func init() {
	if err := unix.SchedGetaffinity(0, &initial); err != nil {
		initial.Zero()
	}
}

// setAffinityPlatform sets thread affinity to a given CPU for Linux.
func setAffinityPlatform(cpuID int) error {
	var set unix.CPUSet
	set.Zero()
	set.Set(cpuID)
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: sched_setaffinity cpu %d: %w", cpuID, err)
	}
	return nil
}

func resetAffinityPlatform() error {
	if initial.Count() == 0 {
		return nil
	}
	set := initial
	if err := unix.SchedSetaffinity(0, &set); err != nil {
		return fmt.Errorf("affinity: restore mask: %w", err)
	}
	return nil
}

func allowedPlatform() []int {
	var cpus []int
	for i := 0; i < len(initial)*64 && len(cpus) < initial.Count(); i++ {
		if initial.IsSet(i) {
			cpus = append(cpus, i)
		}
	}
	return cpus
}
