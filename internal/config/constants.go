package config

import "time"

const (
	// OpenRouter API
	OpenRouterBaseURL = "https://openrouter.ai/api/v1"

	// Auto-router model, always first in the catalog
	DefaultModel = "openrouter/free"

	// Per-call timeouts
	ChatTimeout   = 20 * time.Second
	ModelsTimeout = 10 * time.Second

	// Catalog refresh interval
	CatalogRefresh = 1 * time.Hour

	// Reply generation budget
	ReplyMaxTokens   = 220
	ReplyTemperature = 0.7

	// Risk rating budget
	RiskMaxTokens   = 3
	RiskTemperature = 0.0

	// Risk level bounds
	RiskMin          = 1
	RiskMax          = 5
	DefaultRiskLevel = 1

	// Telegram limits
	MaxTelegramMessageLen = 4096

	// Stale in-flight request cleanup
	StaleRequestCleanup = 60 * time.Second
	StaleRequestAge     = 3 * time.Minute
)

// FallbackModels is used whenever the live models listing cannot be fetched.
// The catalog must never be empty.
var FallbackModels = []string{
	DefaultModel,
	"liquid/lfm-2.5-1.2b-instruct:free",
	"google/gemma-3-27b-it:free",
}

// SystemPrompt steers the conversational reply. Injected at dispatch time,
// never stored in history.
const SystemPrompt = "You are a compassionate mental health companion. " +
	"Respond with empathy and warmth. Never diagnose. " +
	"Recommend professional help for serious issues. " +
	"Keep replies under 150 words."

// RiskSystemPrompt restricts the rating call to a single digit.
const RiskSystemPrompt = "You output only a single digit 1-5."
