package clock_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/momentics/hioload-scaletest/core/clock"
)

func TestNanotimeIsMonotonic(t *testing.T) {
	a := clock.Nanotime()
	time.Sleep(time.Millisecond)
	b := clock.Nanotime()
	assert.Greater(t, b, a)
	assert.GreaterOrEqual(t, clock.Since(a), time.Millisecond)
}
