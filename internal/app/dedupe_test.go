package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDispatchGuard_ClaimsKeyOnce(t *testing.T) {
	guard := newDispatchGuard()
	now := time.Now()

	assert.True(t, guard.shouldDispatch("task|2024-01-01|545", now, 2*time.Minute))
	assert.False(t, guard.shouldDispatch("task|2024-01-01|545", now, 2*time.Minute))
	assert.True(t, guard.shouldDispatch("task|2024-01-01|546", now, 2*time.Minute))
}

func TestDispatchGuard_SweepsExpiredEntries(t *testing.T) {
	guard := newDispatchGuard()
	now := time.Now()

	assert.True(t, guard.shouldDispatch("key", now, 2*time.Minute))

	// Within the keep horizon the claim still holds.
	assert.False(t, guard.shouldDispatch("key", now.Add(time.Minute), 2*time.Minute))

	// Past the horizon the entry is swept and the key can fire again.
	assert.True(t, guard.shouldDispatch("key", now.Add(3*time.Minute), 2*time.Minute))
}
