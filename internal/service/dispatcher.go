package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/domain"
)

// ChatDispatcher runs one logical request across the model catalog in priority
// order until a model produces a usable reply. Models in cooldown are skipped;
// transient failures advance the chain; a credential rejection aborts the whole
// run since retrying it elsewhere cannot help.
type ChatDispatcher struct {
	client   *OpenRouterClient
	catalog  *ModelCatalog
	cooldown *CooldownTracker
}

func NewChatDispatcher(client *OpenRouterClient, catalog *ModelCatalog, cooldown *CooldownTracker) *ChatDispatcher {
	return &ChatDispatcher{client: client, catalog: catalog, cooldown: cooldown}
}

// Send blocks until a model replies or every candidate has been skipped or has
// failed. Each model call carries its own fixed timeout.
func (d *ChatDispatcher) Send(ctx context.Context, messages []domain.ChatMessage, userKey string, maxTokens int, temperature float64) (string, error) {
	runID := uuid.NewString()

	tried := 0
	for _, model := range d.catalog.Models() {
		if !d.cooldown.Available(model) {
			continue
		}
		tried++

		callCtx, cancel := context.WithTimeout(ctx, config.ChatTimeout)
		res, err := d.client.Chat(callCtx, model, messages, userKey, maxTokens, temperature)
		cancel()

		if err != nil {
			if errors.Is(err, domain.ErrUnauthorized) {
				return "", fmt.Errorf("dispatch: %w", err)
			}
			slog.Warn("model call failed, trying next",
				"run_id", runID, "model", model, "error", err)
			d.cooldown.RecordFailure(model)
			continue
		}

		d.cooldown.RecordSuccess(model)
		slog.Info("model call succeeded",
			"run_id", runID, "model", model, "served_by", res.Model)
		return res.Content, nil
	}

	return "", fmt.Errorf("dispatch: %d models attempted: %w", tried, domain.ErrModelsExhausted)
}
