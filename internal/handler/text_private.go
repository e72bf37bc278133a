package handler

import (
	"context"
	"log/slog"
	"runtime/debug"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	tg "github.com/mindhaven/companion/internal/telegram"
)

const (
	waitText  = "⏳ Please wait for the reply to your previous message."
	errorText = "Sorry, something went wrong. Try /clear and send your message again."
)

// HandleTextPrivate processes a private text message through the engine and
// maps the outcome to Telegram sends.
func (h *Handler) HandleTextPrivate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.Chat.Type != "private" {
		return
	}

	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") || msg.From == nil {
		return
	}

	chatID := msg.Chat.ID
	userID := msg.From.ID

	// One in-flight message per chat; concurrent ones get a wait reply instead
	// of racing the history.
	if err := h.active.TrySet(chatID); err != nil {
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: waitText})
		return
	}
	defer h.active.Remove(chatID)

	stopTyping := tg.StartTyping(ctx, b, chatID)
	defer stopTyping()

	// A panic here must not leave the user without a reply: clear the session
	// and answer with the generic recoverable message, same as an error return.
	defer func() {
		if r := recover(); r != nil {
			slog.Error("panic while processing message",
				"panic", r,
				"user_id", userID,
				"stack", string(debug.Stack()),
			)
			h.sessions.Clear(userID)
			b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: errorText})
		}
	}()

	reply, err := h.processor.Process(ctx, userID, msg.Text)
	if err != nil {
		slog.Error("process message", "error", err, "user_id", userID)
		b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: errorText})
		return
	}

	var markup models.ReplyMarkup
	if reply.Escalate {
		markup = tg.InlineKeyboard(tg.ButtonRow(
			tg.URLButton("🌸 Breathing Exercise", h.cfg.BreathingPageURL),
		))
	}

	if reply.Crisis {
		b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      chatID,
			Text:        reply.Text,
			ParseMode:   models.ParseModeMarkdownV1,
			ReplyMarkup: markup,
		})
		return
	}

	if err := tg.SendLongMessage(ctx, b, chatID, reply.Text, markup); err != nil {
		slog.Error("send reply", "error", err, "chat_id", chatID)
	}
}
