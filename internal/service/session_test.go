package service

import (
	"fmt"
	"sync"
	"testing"

	"github.com/mindhaven/companion/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionStoreFirstAccess(t *testing.T) {
	s := NewSessionStore(12)
	assert.Empty(t, s.History(1))
}

func TestSessionStoreTrimsOldestFirst(t *testing.T) {
	const pairs = 3
	s := NewSessionStore(pairs)

	// 2K+1 alternating messages
	for i := 0; i < pairs*2+1; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		s.Append(7, domain.ChatMessage{Role: role, Content: fmt.Sprintf("msg-%d", i)})
	}

	history := s.History(7)
	require.Len(t, history, pairs*2)

	// Oldest entry dropped, order among survivors preserved
	assert.Equal(t, "msg-1", history[0].Content)
	assert.Equal(t, fmt.Sprintf("msg-%d", pairs*2), history[len(history)-1].Content)
	for i := 1; i < len(history); i++ {
		assert.NotEqual(t, history[i-1].Role, history[i].Role)
	}
}

func TestSessionStoreClear(t *testing.T) {
	s := NewSessionStore(12)
	s.Append(1, domain.ChatMessage{Role: domain.RoleUser, Content: "hi"})
	require.Len(t, s.History(1), 1)

	s.Clear(1)
	assert.Empty(t, s.History(1))
}

func TestSessionStoreUsersDoNotInterfere(t *testing.T) {
	s := NewSessionStore(2)

	var wg sync.WaitGroup
	for user := int64(1); user <= 8; user++ {
		wg.Add(1)
		go func(user int64) {
			defer wg.Done()
			for i := 0; i < 10; i++ {
				s.Append(user, domain.ChatMessage{
					Role:    domain.RoleUser,
					Content: fmt.Sprintf("u%d-%d", user, i),
				})
			}
		}(user)
	}
	wg.Wait()

	for user := int64(1); user <= 8; user++ {
		history := s.History(user)
		require.Len(t, history, 4)
		assert.Equal(t, fmt.Sprintf("u%d-9", user), history[3].Content)
	}
}
