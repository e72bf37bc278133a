package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCooldownBelowThresholdStaysAvailable(t *testing.T) {
	tr := NewCooldownTracker(2, time.Minute)

	tr.RecordFailure("m")
	assert.True(t, tr.Available("m"))
	assert.Equal(t, 1, tr.Failures("m"))

	// The availability check must not reset an accumulating counter.
	tr.RecordFailure("m")
	assert.False(t, tr.Available("m"))
}

func TestCooldownExpiresAtDeadline(t *testing.T) {
	base := time.Now()
	now := base
	tr := NewCooldownTracker(2, time.Minute)
	tr.now = func() time.Time { return now }

	tr.RecordFailure("m")
	tr.RecordFailure("m")
	assert.False(t, tr.Available("m"))

	now = base.Add(time.Minute - time.Nanosecond)
	assert.False(t, tr.Available("m"))

	// Exactly at the deadline the check itself resets the state.
	now = base.Add(time.Minute)
	assert.True(t, tr.Available("m"))
	assert.Equal(t, 0, tr.Failures("m"))
}

func TestRecordSuccessResetsUnconditionally(t *testing.T) {
	tr := NewCooldownTracker(2, time.Minute)

	tr.RecordFailure("m")
	tr.RecordFailure("m")
	assert.False(t, tr.Available("m"))

	tr.RecordSuccess("m")
	assert.True(t, tr.Available("m"))
	assert.Equal(t, 0, tr.Failures("m"))
}

func TestUntrackedModelIsAvailable(t *testing.T) {
	tr := NewCooldownTracker(2, time.Minute)
	assert.True(t, tr.Available("never-seen"))
	tr.RecordSuccess("never-seen")
	assert.Equal(t, 0, tr.Failures("never-seen"))
}
