package breaker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestThreeConsecutiveFailuresOpenTheCircuit(t *testing.T) {
	b := New(3)
	key := "system:kill_process"

	b.RecordFailure(key)
	b.RecordFailure(key)
	assert.True(t, b.Allow(key), "two failures must not trip the circuit")
	assert.Equal(t, Closed, b.StateOf(key))

	b.RecordFailure(key)
	assert.False(t, b.Allow(key), "third failure must trip the circuit")
	assert.Equal(t, Open, b.StateOf(key))
	assert.Equal(t, 3, b.FailureCount(key))
}

func TestAnySuccessResetsAndCloses(t *testing.T) {
	b := New(3)
	key := "system:kill_process"

	b.RecordFailure(key)
	b.RecordFailure(key)
	b.RecordSuccess(key)
	assert.Equal(t, 0, b.FailureCount(key), "success must reset the count to zero")

	b.RecordFailure(key)
	b.RecordFailure(key)
	assert.True(t, b.Allow(key), "count must restart after a success")

	b.RecordFailure(key)
	assert.False(t, b.Allow(key))

	b.RecordSuccess(key)
	assert.True(t, b.Allow(key), "success must close an open circuit")
	assert.Equal(t, Closed, b.StateOf(key))
}

func TestKeysAreIndependent(t *testing.T) {
	b := New(3)
	for i := 0; i < 3; i++ {
		b.RecordFailure("system:kill_process")
	}
	assert.False(t, b.Allow("system:kill_process"))
	assert.True(t, b.Allow("filesystem:open_desktop"))
	assert.Equal(t, 0, b.FailureCount("filesystem:open_desktop"))
}

func TestNonPositiveThresholdFallsBackToDefault(t *testing.T) {
	b := New(0)
	key := "k"
	for i := 0; i < DefaultFailureThreshold-1; i++ {
		b.RecordFailure(key)
	}
	assert.True(t, b.Allow(key))
	b.RecordFailure(key)
	assert.False(t, b.Allow(key))
}
