package affinity_test

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/momentics/hioload-scaletest/affinity"
)

func TestPinAndUnpin(t *testing.T) {
	if runtime.GOOS != "linux" && runtime.GOOS != "windows" {
		t.Skip("thread affinity not supported on " + runtime.GOOS)
	}
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	require.NoError(t, affinity.Pin(affinity.CPUForWorker(0)))
	require.NoError(t, affinity.Unpin())
}

func TestPinRejectsNegativeCPU(t *testing.T) {
	assert.Error(t, affinity.Pin(-1))
}

func TestCPUForWorkerWraps(t *testing.T) {
	cpus := affinity.Allowed()
	require.NotEmpty(t, cpus)
	n := len(cpus)
	assert.Equal(t, cpus[0], affinity.CPUForWorker(0))
	assert.Equal(t, cpus[0], affinity.CPUForWorker(n))
	assert.Equal(t, cpus[1%n], affinity.CPUForWorker(n+1))
	assert.Equal(t, cpus[0], affinity.CPUForWorker(-3))
}
