package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/service"
)

// Processor handles one inbound message end to end.
type Processor interface {
	Process(ctx context.Context, userID int64, text string) (*service.Reply, error)
}

// Handler holds all dependencies needed by command and message handlers.
type Handler struct {
	bot       *bot.Bot
	cfg       *config.Config
	processor Processor
	sessions  *service.SessionStore
	active    *service.ActiveRequests
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Bot       *bot.Bot
	Cfg       *config.Config
	Processor Processor
	Sessions  *service.SessionStore
	Active    *service.ActiveRequests
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		bot:       deps.Bot,
		cfg:       deps.Cfg,
		processor: deps.Processor,
		sessions:  deps.Sessions,
		active:    deps.Active,
	}
}
