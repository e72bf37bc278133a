package service

import (
	"log/slog"
	"sync"
	"time"
)

// modelState tracks failures for one model. Created lazily on first failure.
type modelState struct {
	fails     int
	skipUntil time.Time
}

// CooldownTracker excludes models from dispatch for a bounded time window
// after repeated failures. No model is ever excluded permanently.
type CooldownTracker struct {
	threshold int
	cooldown  time.Duration

	mu    sync.Mutex
	state map[string]*modelState
	now   func() time.Time
}

func NewCooldownTracker(threshold int, cooldown time.Duration) *CooldownTracker {
	return &CooldownTracker{
		threshold: threshold,
		cooldown:  cooldown,
		state:     make(map[string]*modelState),
		now:       time.Now,
	}
}

// Available reports whether the model may be tried. Once a cooldown window has
// passed, the check itself transitions the model back to available with its
// failure counter reset.
func (t *CooldownTracker) Available(model string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.state[model]
	if !ok || st.skipUntil.IsZero() {
		return true
	}
	if t.now().Before(st.skipUntil) {
		return false
	}
	st.fails = 0
	st.skipUntil = time.Time{}
	return true
}

// RecordFailure increments the model's failure counter and starts a cooldown
// once the threshold is reached.
func (t *CooldownTracker) RecordFailure(model string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	st, ok := t.state[model]
	if !ok {
		st = &modelState{}
		t.state[model] = st
	}
	st.fails++
	if st.fails >= t.threshold {
		st.skipUntil = t.now().Add(t.cooldown)
		slog.Warn("model cooling down", "model", model, "failures", st.fails, "cooldown", t.cooldown)
	}
}

// RecordSuccess clears any tracked failures and cooldown for the model.
func (t *CooldownTracker) RecordSuccess(model string) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.state[model]; ok {
		st.fails = 0
		st.skipUntil = time.Time{}
	}
}

// Failures returns the model's current failure count.
func (t *CooldownTracker) Failures(model string) int {
	t.mu.Lock()
	defer t.mu.Unlock()

	if st, ok := t.state[model]; ok {
		return st.fails
	}
	return 0
}
