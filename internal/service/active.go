package service

import (
	"sync"
	"time"

	"github.com/mindhaven/companion/internal/domain"
)

// ActiveRequests tracks chats with a message currently being processed, so a
// second message from the same chat cannot interleave history updates with the
// first one.
type ActiveRequests struct {
	mu       sync.Mutex
	inFlight map[int64]time.Time
}

func NewActiveRequests() *ActiveRequests {
	return &ActiveRequests{inFlight: make(map[int64]time.Time)}
}

// TrySet marks the chat as busy. Returns domain.ErrActiveRequest if a request
// is already in flight for it.
func (a *ActiveRequests) TrySet(chatID int64) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	if _, ok := a.inFlight[chatID]; ok {
		return domain.ErrActiveRequest
	}
	a.inFlight[chatID] = time.Now()
	return nil
}

// Remove releases the chat.
func (a *ActiveRequests) Remove(chatID int64) {
	a.mu.Lock()
	defer a.mu.Unlock()
	delete(a.inFlight, chatID)
}

// CleanupStale drops entries older than age and returns how many were removed.
// Guards against handlers that never released their slot.
func (a *ActiveRequests) CleanupStale(age time.Duration) int {
	a.mu.Lock()
	defer a.mu.Unlock()

	removed := 0
	cutoff := time.Now().Add(-age)
	for chatID, started := range a.inFlight {
		if started.Before(cutoff) {
			delete(a.inFlight, chatID)
			removed++
		}
	}
	return removed
}
