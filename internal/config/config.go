package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	// Core
	BotToken      string `env:"BOT_TOKEN,required"`
	OpenRouterKey string `env:"OPENROUTER_API_KEY,required"`

	// Optional OpenRouter attribution headers
	SiteURL string `env:"OPENROUTER_SITE_URL"`
	AppName string `env:"OPENROUTER_APP_NAME" envDefault:"TelegramBot"`

	// Escalation
	BreathingPageURL string `env:"BREATHING_PAGE_URL" envDefault:"https://yourusername.github.io/breathe"`
	RiskThreshold    int    `env:"RISK_ESCALATION_THRESHOLD" envDefault:"3"`

	// Model failover
	FailureThreshold int           `env:"MODEL_FAILURE_THRESHOLD" envDefault:"2"`
	ModelCooldown    time.Duration `env:"MODEL_COOLDOWN" envDefault:"60s"`

	// Conversation history retention, in user/assistant pairs
	HistoryPairs int `env:"HISTORY_PAIRS_TO_KEEP" envDefault:"12"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
