package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/domain"
	"golang.org/x/sync/errgroup"
)

const (
	crisisReply = "💚 I hear you, and I'm really glad you reached out.\n\n" +
		"What you're feeling right now is serious, and you deserve real support. " +
		"Please reach out to a crisis helpline immediately:\n\n" +
		"🇮🇳 *iCall (India):* 9152987821\n" +
		"🌍 *Crisis Text Line:* Text HOME to 741741\n\n" +
		"You are not alone. 💚"

	fallbackReply = "I'm here for you. Could you share more?"
)

// Reply is the outcome of processing one inbound message.
type Reply struct {
	Text      string
	RiskLevel int
	Escalate  bool // attach the breathing-exercise action
	Crisis    bool // crisis short-circuit: Text is the fixed escalation response
}

// MessageProcessor orchestrates one inbound message end to end: crisis check,
// concurrent risk rating and reply generation, history update, escalation
// decision.
type MessageProcessor struct {
	dispatcher *ChatDispatcher
	sessions   *SessionStore
	crisis     *CrisisDetector
	threshold  int
}

func NewMessageProcessor(dispatcher *ChatDispatcher, sessions *SessionStore, crisis *CrisisDetector, cfg *config.Config) *MessageProcessor {
	return &MessageProcessor{
		dispatcher: dispatcher,
		sessions:   sessions,
		crisis:     crisis,
		threshold:  cfg.RiskThreshold,
	}
}

// Process handles one message for one user. A crisis message is answered with
// the fixed escalation response and never touches history or the models. On a
// reply-path failure the user's session is cleared and the error returned; the
// caller owns the user-facing wording.
func (p *MessageProcessor) Process(ctx context.Context, userID int64, text string) (*Reply, error) {
	if p.crisis.Detect(text) {
		return &Reply{Text: crisisReply, RiskLevel: config.RiskMax, Escalate: true, Crisis: true}, nil
	}

	userKey := strconv.FormatInt(userID, 10)

	p.sessions.Append(userID, domain.ChatMessage{Role: domain.RoleUser, Content: text})
	history := p.sessions.History(userID)

	messages := make([]domain.ChatMessage, 0, len(history)+1)
	messages = append(messages, domain.ChatMessage{Role: domain.RoleSystem, Content: config.SystemPrompt})
	messages = append(messages, history...)

	// The rating and reply calls are independent dispatch runs issued together.
	// A rating failure degrades to the default level inside rateRisk; only a
	// reply failure fails the message. Neither call cancels the other.
	var (
		risk  int
		reply string
		g     errgroup.Group
	)
	g.Go(func() error {
		risk = p.rateRisk(ctx, text, userKey)
		return nil
	})
	g.Go(func() error {
		var err error
		reply, err = p.dispatcher.Send(ctx, messages, userKey, config.ReplyMaxTokens, config.ReplyTemperature)
		return err
	})
	if err := g.Wait(); err != nil {
		p.sessions.Clear(userID)
		return nil, fmt.Errorf("generate reply for user %d: %w", userID, err)
	}

	reply = strings.TrimSpace(reply)
	if reply == "" {
		reply = fallbackReply
	}
	p.sessions.Append(userID, domain.ChatMessage{Role: domain.RoleAssistant, Content: reply})

	return &Reply{
		Text:      reply,
		RiskLevel: risk,
		Escalate:  risk >= p.threshold,
	}, nil
}

// rateRisk classifies the distress level of a single message as 1-5. Any
// failure, including exhaustion of all models, degrades to the default level
// rather than failing the message.
func (p *MessageProcessor) rateRisk(ctx context.Context, text, userKey string) int {
	prompt := "You are a mental health triage assistant.\n" +
		"Rate emotional distress 1-5. 5=crisis/self-harm. Reply ONLY with 1 digit.\n" +
		fmt.Sprintf("Message: %q", text)
	messages := []domain.ChatMessage{
		{Role: domain.RoleSystem, Content: config.RiskSystemPrompt},
		{Role: domain.RoleUser, Content: prompt},
	}

	out, err := p.dispatcher.Send(ctx, messages, userKey, config.RiskMaxTokens, config.RiskTemperature)
	if err != nil {
		slog.Warn("risk rating failed, using default level", "error", err)
		return config.DefaultRiskLevel
	}

	out = strings.TrimSpace(out)
	if out == "" {
		return config.DefaultRiskLevel
	}
	level := int(out[0] - '0')
	if level < config.RiskMin || level > config.RiskMax {
		return config.DefaultRiskLevel
	}
	return level
}
