package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistryOrderAndNames(t *testing.T) {
	var kinds []Kind
	for _, d := range All() {
		kinds = append(kinds, d.Kind)
		assert.NotEmpty(t, d.Name)
		e := d.New()
		assert.Equal(t, d.ScalesWithCores, e.ScalesWithCores())
	}
	assert.Equal(t, []Kind{
		KindSingleThreadPolling,
		KindSingleThreadEdge,
		KindSingleThreadLevel,
		KindPerCorePolling,
		KindPerCoreLevel,
		KindRoundRobinLevel,
	}, kinds)
}

func TestParseKinds(t *testing.T) {
	all, err := ParseKinds("")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	all, err = ParseKinds("all")
	require.NoError(t, err)
	assert.Len(t, all, 6)

	some, err := ParseKinds(" roundrobin-level, single-edge ,roundrobin-level")
	require.NoError(t, err)
	require.Len(t, some, 2)
	assert.Equal(t, KindRoundRobinLevel, some[0].Kind)
	assert.Equal(t, KindSingleThreadEdge, some[1].Kind)

	_, err = ParseKinds("single-edge,fifo")
	assert.ErrorIs(t, err, ErrUnknownKind)
}

func TestNewUnknownKind(t *testing.T) {
	_, err := New[int]("nope")
	assert.ErrorIs(t, err, ErrUnknownKind)

	_, err = Lookup("nope")
	assert.ErrorIs(t, err, ErrUnknownKind)
}
