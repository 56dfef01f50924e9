// Package api
// Author: momentics
//
// Live debug probes for long running sweeps.

package api

// ProbeRegistry accepts named probes that report live state on demand.
type ProbeRegistry interface {
	RegisterProbe(name string, fn func() any)
}
