package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/mindhaven/companion/internal/config"
	"github.com/mindhaven/companion/internal/domain"
)

// OpenRouterClient talks to the OpenRouter HTTP API. It performs exactly one
// call per method; retries and model selection live in ChatDispatcher.
type OpenRouterClient struct {
	apiKey     string
	siteURL    string
	appName    string
	baseURL    string
	httpClient *http.Client
}

func NewOpenRouterClient(cfg *config.Config) *OpenRouterClient {
	return &OpenRouterClient{
		apiKey:     cfg.OpenRouterKey,
		siteURL:    cfg.SiteURL,
		appName:    cfg.AppName,
		baseURL:    config.OpenRouterBaseURL,
		httpClient: &http.Client{},
	}
}

type ChatRequest struct {
	Model       string               `json:"model"`
	Messages    []domain.ChatMessage `json:"messages"`
	Temperature float64              `json:"temperature"`
	MaxTokens   int                  `json:"max_tokens"`
	User        string               `json:"user,omitempty"`
}

type ChatResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatResult is a successful completion with the model that actually served it.
type ChatResult struct {
	Content string
	Model   string
}

func (c *OpenRouterClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if c.siteURL != "" {
		req.Header.Set("HTTP-Referer", c.siteURL)
	}
	if c.appName != "" {
		req.Header.Set("X-Title", c.appName)
	}
}

// ListModels fetches the full models listing with wire-format pricing strings.
func (c *OpenRouterClient) ListModels(ctx context.Context) ([]domain.AIModel, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/models", nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch models: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch models: http %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var result struct {
		Data []struct {
			ID      string `json:"id"`
			Pricing struct {
				Prompt     string `json:"prompt"`
				Completion string `json:"completion"`
			} `json:"pricing"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("parse models: %w", err)
	}

	models := make([]domain.AIModel, 0, len(result.Data))
	for _, m := range result.Data {
		models = append(models, domain.AIModel{
			ID:              m.ID,
			PromptPrice:     m.Pricing.Prompt,
			CompletionPrice: m.Pricing.Completion,
		})
	}
	return models, nil
}

// Chat issues one completion request against a single model and classifies the
// outcome: a non-empty reply, domain.ErrUnauthorized on a credential rejection
// (fatal for the whole dispatch run), or a retryable error for everything else.
func (c *OpenRouterClient) Chat(ctx context.Context, model string, messages []domain.ChatMessage, userKey string, maxTokens int, temperature float64) (*ChatResult, error) {
	payload, err := json.Marshal(ChatRequest{
		Model:       model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
		User:        userKey,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden:
		return nil, fmt.Errorf("http %d: %w", resp.StatusCode, domain.ErrUnauthorized)
	case resp.StatusCode != http.StatusOK:
		// 404/410/429/5xx and anything else unexpected: retryable on another model.
		return nil, fmt.Errorf("model %s: http %d", model, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	var chatResp ChatResponse
	if err := json.Unmarshal(body, &chatResp); err != nil {
		return nil, fmt.Errorf("model %s: %w: %v", model, domain.ErrMalformedReply, err)
	}
	if len(chatResp.Choices) == 0 || strings.TrimSpace(chatResp.Choices[0].Message.Content) == "" {
		return nil, fmt.Errorf("model %s: %w", model, domain.ErrEmptyReply)
	}

	usedModel := chatResp.Model
	if usedModel == "" {
		usedModel = model
	}
	return &ChatResult{Content: chatResp.Choices[0].Message.Content, Model: usedModel}, nil
}
