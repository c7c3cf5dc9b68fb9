// Package gemini wraps the Google GenAI SDK behind the small text-generation
// surface the application needs.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"ultron_backend/platform/config"
)

// Client generates text with a Gemini model.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client from config. Returns an error when no API
// key is configured; callers that can operate without AI should check
// cfg.IsGeminiEnabled() first.
func NewClient(ctx context.Context, cfg config.GeminiConfig) (*Client, error) {
	if !cfg.IsGeminiEnabled() {
		return nil, fmt.Errorf("gemini API key is not configured")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: cfg.GetGeminiAPIKey(),
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &Client{
		client: client,
		model:  cfg.GetGeminiModel(),
	}, nil
}

// GenerateText runs a single-turn generation with an optional system
// instruction and returns the concatenated text of the response.
func (c *Client) GenerateText(ctx context.Context, system, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	genCfg := &genai.GenerateContentConfig{}
	if system != "" {
		genCfg.SystemInstruction = genai.NewContentFromText(system, genai.RoleUser)
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned an empty response")
	}

	return text, nil
}
