package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/domain"
	"github.com/mindhaven/companion/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type panickingProcessor struct{}

func (panickingProcessor) Process(ctx context.Context, userID int64, text string) (*service.Reply, error) {
	panic("processor blew up")
}

// fakeTelegram records the text of every sendMessage call.
type fakeTelegram struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeTelegram) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch {
	case strings.HasSuffix(r.URL.Path, "/sendMessage"):
		r.ParseMultipartForm(1 << 20)
		f.mu.Lock()
		f.texts = append(f.texts, r.FormValue("text"))
		f.mu.Unlock()
		w.Write([]byte(`{"ok":true,"result":{"message_id":1,"chat":{"id":42,"type":"private"}}}`))
	case strings.HasSuffix(r.URL.Path, "/sendChatAction"):
		w.Write([]byte(`{"ok":true,"result":true}`))
	default:
		w.Write([]byte(`{"ok":true,"result":{}}`))
	}
}

func (f *fakeTelegram) sentTexts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.texts...)
}

func TestHandleTextPrivatePanicClearsSessionAndReplies(t *testing.T) {
	telegram := &fakeTelegram{}
	srv := httptest.NewServer(telegram)
	defer srv.Close()

	b, err := bot.New("123:test", bot.WithServerURL(srv.URL), bot.WithSkipGetMe())
	require.NoError(t, err)

	sessions := service.NewSessionStore(12)
	sessions.Append(42, domain.ChatMessage{Role: domain.RoleUser, Content: "earlier message"})

	active := service.NewActiveRequests()
	h := New(Deps{
		Bot:       b,
		Cfg:       &config.Config{},
		Processor: panickingProcessor{},
		Sessions:  sessions,
		Active:    active,
	})

	update := &models.Update{Message: &models.Message{
		Text: "hello",
		Chat: models.Chat{ID: 42, Type: "private"},
		From: &models.User{ID: 42},
	}}

	require.NotPanics(t, func() { h.HandleTextPrivate(context.Background(), b, update) })

	assert.Contains(t, telegram.sentTexts(), errorText)
	assert.Empty(t, sessions.History(42))

	// The in-flight slot was released despite the panic.
	assert.NoError(t, active.TrySet(42))
}
