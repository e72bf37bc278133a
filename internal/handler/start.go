package handler

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

const welcomeText = "💚 Hi! I'm your Mental Health Companion.\n\n" +
	"Feel free to share how you're feeling today.\n\n" +
	"⚠️ I'm an AI — not a replacement for professional help.\n\n" +
	"Commands:\n/start - Restart\n/clear - Clear history"

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}
	b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text:   welcomeText,
	})
}
