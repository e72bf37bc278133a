package service

import (
	"log/slog"
	"slices"
	"sync"

	"github.com/mindhaven/companion/internal/domain"
)

// SessionStore keeps bounded per-user conversation history in memory. History
// holds user/assistant turns only; system prompts are injected at dispatch
// time. Nothing survives a restart.
type SessionStore struct {
	maxPairs int

	mu       sync.Mutex
	sessions map[int64][]domain.ChatMessage
}

func NewSessionStore(maxPairs int) *SessionStore {
	return &SessionStore{
		maxPairs: maxPairs,
		sessions: make(map[int64][]domain.ChatMessage),
	}
}

// History returns a copy of the user's conversation, creating an empty session
// on first access.
func (s *SessionStore) History(userID int64) []domain.ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		s.sessions[userID] = nil
		slog.Info("new session", "user_id", userID)
	}
	return slices.Clone(s.sessions[userID])
}

// Append adds one message and trims the history to the retention window,
// dropping the oldest entries first.
func (s *SessionStore) Append(userID int64, msg domain.ChatMessage) {
	s.mu.Lock()
	defer s.mu.Unlock()

	history := append(s.sessions[userID], msg)
	if limit := s.maxPairs * 2; len(history) > limit {
		history = slices.Clone(history[len(history)-limit:])
	}
	s.sessions[userID] = history
}

// Clear drops the user's session entirely.
func (s *SessionStore) Clear(userID int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, userID)
}
