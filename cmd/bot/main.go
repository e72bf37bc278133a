package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/joho/godotenv"
	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/handler"
	"github.com/mindhaven/companion/internal/middleware"
	"github.com/mindhaven/companion/internal/service"
)

func main() {
	// .env is optional; real deployments use environment variables
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	// Setup context with graceful shutdown
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize the failover engine
	client := service.NewOpenRouterClient(cfg)
	catalog := service.NewModelCatalog(client)
	catalogModels := catalog.Refresh(ctx)
	slog.Info("model catalog loaded", "count", len(catalogModels))

	cooldown := service.NewCooldownTracker(cfg.FailureThreshold, cfg.ModelCooldown)
	dispatcher := service.NewChatDispatcher(client, catalog, cooldown)
	sessions := service.NewSessionStore(cfg.HistoryPairs)
	crisis := service.NewCrisisDetector()
	processor := service.NewMessageProcessor(dispatcher, sessions, crisis, cfg)
	active := service.NewActiveRequests()

	// Create bot
	opts := []bot.Option{
		bot.WithMiddlewares(
			middleware.Recover(),
			middleware.Logging(),
		),
	}

	b, err := bot.New(cfg.BotToken, opts...)
	if err != nil {
		slog.Error("failed to create bot", "error", err)
		os.Exit(1)
	}

	// Get bot info
	me, err := b.GetMe(ctx)
	if err != nil {
		slog.Error("failed to get bot info", "error", err)
		os.Exit(1)
	}

	// Initialize handler
	h := handler.New(handler.Deps{
		Bot:       b,
		Cfg:       cfg,
		Processor: processor,
		Sessions:  sessions,
		Active:    active,
	})

	// Register command handlers
	h.Register()

	// Register default text handler for AI messages
	b.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil {
			return
		}
		// Skip commands
		if len(update.Message.Text) > 0 && update.Message.Text[0] == '/' {
			return
		}
		if update.Message.Chat.Type == "private" {
			h.HandleTextPrivate(ctx, b, update)
		}
	})

	// Periodic free-model catalog refresh
	go func() {
		ticker := time.NewTicker(config.CatalogRefresh)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				catalog.Refresh(ctx)
			}
		}
	}()

	// Stale in-flight request cleanup
	go func() {
		ticker := time.NewTicker(config.StaleRequestCleanup)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := active.CleanupStale(config.StaleRequestAge); n > 0 {
					slog.Warn("removed stale in-flight requests", "count", n)
				}
			}
		}
	}()

	// Start bot
	slog.Info("starting bot", "username", me.Username, "id", me.ID)
	b.Start(ctx)

	// Graceful shutdown
	slog.Info("bot stopped gracefully")
}
