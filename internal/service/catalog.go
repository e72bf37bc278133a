package service

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/mindhaven/companion/internal/config"
)

// ModelCatalog holds the priority-ordered list of currently usable free models.
// The list is replaced atomically on refresh; dispatch runs read a snapshot, so
// a concurrent refresh only affects later runs.
type ModelCatalog struct {
	client *OpenRouterClient

	mu     sync.RWMutex
	models []string
}

func NewModelCatalog(client *OpenRouterClient) *ModelCatalog {
	return &ModelCatalog{
		client: client,
		models: slices.Clone(config.FallbackModels),
	}
}

// Models returns a snapshot of the current priority order.
func (c *ModelCatalog) Models() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.models)
}

// Refresh fetches the live models listing and keeps only models whose prompt
// and completion prices are both zero. The auto-router model is always first,
// exactly once, whether or not the listing included it. If the listing cannot
// be fetched the fixed fallback list is installed instead, so the catalog
// never ends up empty.
func (c *ModelCatalog) Refresh(ctx context.Context) []string {
	ctx, cancel := context.WithTimeout(ctx, config.ModelsTimeout)
	defer cancel()

	listing, err := c.client.ListModels(ctx)
	if err != nil {
		slog.Error("fetch free models failed, using fallback list", "error", err)
		c.set(slices.Clone(config.FallbackModels))
		return c.Models()
	}

	ordered := []string{config.DefaultModel}
	for _, m := range listing {
		if m.ID == config.DefaultModel || !m.IsFree() {
			continue
		}
		ordered = append(ordered, m.ID)
	}

	c.set(ordered)
	slog.Info("free model catalog refreshed", "count", len(ordered))
	return c.Models()
}

func (c *ModelCatalog) set(models []string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.models = models
}
