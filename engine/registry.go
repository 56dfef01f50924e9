// File: engine/registry.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Kind registry used by the benchmark driver to build a fresh engine per trial.

package engine

import (
	"errors"
	"fmt"
	"strings"

	"github.com/momentics/hioload-scaletest/api"
)

// ErrUnknownKind is returned for engine kinds outside the registry.
var ErrUnknownKind = errors.New("unknown engine kind")

// Kind identifies a dispatch strategy.
type Kind string

const (
	KindSingleThreadPolling Kind = "single-polling"
	KindSingleThreadEdge    Kind = "single-edge"
	KindSingleThreadLevel   Kind = "single-level"
	KindPerCorePolling      Kind = "percore-polling"
	KindPerCoreLevel        Kind = "percore-level"
	KindRoundRobinLevel     Kind = "roundrobin-level"
)

// Descriptor describes one registered strategy.
type Descriptor struct {
	Kind            Kind
	Name            string // engine type name shown in reports
	ScalesWithCores bool
}

// New builds a fresh benchmark engine of this kind.
func (d Descriptor) New(opts ...Option) api.Engine[api.WorkItem] {
	e, err := New[api.WorkItem](d.Kind, opts...)
	if err != nil {
		// descriptors only come from the registry
		panic(err)
	}
	return e
}

var registry = []Descriptor{
	{Kind: KindSingleThreadPolling, Name: "SingleThreadPolling", ScalesWithCores: false},
	{Kind: KindSingleThreadEdge, Name: "SingleThreadEdge", ScalesWithCores: false},
	{Kind: KindSingleThreadLevel, Name: "SingleThreadLevel", ScalesWithCores: false},
	{Kind: KindPerCorePolling, Name: "PerCorePolling", ScalesWithCores: true},
	{Kind: KindPerCoreLevel, Name: "PerCoreLevel", ScalesWithCores: true},
	{Kind: KindRoundRobinLevel, Name: "RoundRobinLevel", ScalesWithCores: true},
}

// All returns every registered strategy in report order.
func All() []Descriptor {
	out := make([]Descriptor, len(registry))
	copy(out, registry)
	return out
}

// Lookup finds the descriptor for kind.
func Lookup(kind Kind) (Descriptor, error) {
	for _, d := range registry {
		if d.Kind == kind {
			return d, nil
		}
	}
	return Descriptor{}, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
}

// ParseKinds resolves a comma separated kind list. An empty list or "all"
// selects every strategy.
func ParseKinds(list string) ([]Descriptor, error) {
	list = strings.TrimSpace(list)
	if list == "" || list == "all" {
		return All(), nil
	}
	var out []Descriptor
	seen := make(map[Kind]bool)
	for _, part := range strings.Split(list, ",") {
		k := Kind(strings.TrimSpace(part))
		if k == "" || seen[k] {
			continue
		}
		d, err := Lookup(k)
		if err != nil {
			return nil, err
		}
		seen[k] = true
		out = append(out, d)
	}
	return out, nil
}

// New builds an unstarted engine of the given kind for item type T.
func New[T any](kind Kind, opts ...Option) (api.Engine[T], error) {
	switch kind {
	case KindSingleThreadPolling:
		return NewSingleThreadPolling[T](opts...), nil
	case KindSingleThreadEdge:
		return NewSingleThreadEdge[T](opts...), nil
	case KindSingleThreadLevel:
		return NewSingleThreadLevel[T](opts...), nil
	case KindPerCorePolling:
		return NewPerCorePolling[T](opts...), nil
	case KindPerCoreLevel:
		return NewPerCoreLevel[T](opts...), nil
	case KindRoundRobinLevel:
		return NewRoundRobinLevel[T](opts...), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
}
