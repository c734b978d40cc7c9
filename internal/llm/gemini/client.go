package gemini

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"career-backend/internal/llm"
)

const defaultModel = "gemini-2.0-flash"

// Options configures the Gemini client.
type Options struct {
	APIKey string
	Model  string
	// BaseURL overrides the Gemini API endpoint.
	BaseURL     string
	Temperature float32
}

// Client completes prompts with the Gemini API.
type Client struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

// New constructs a Gemini client. No request is made until Complete.
func New(ctx context.Context, opts Options) (*Client, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, errors.New("GOOGLE_API_KEY is required for Gemini")
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultModel
	}
	cfg := &genai.ClientConfig{
		APIKey:  opts.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if opts.BaseURL != "" {
		cfg.HTTPOptions = genai.HTTPOptions{BaseURL: opts.BaseURL}
	}
	client, err := genai.NewClient(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini client: %w", err)
	}
	temp := opts.Temperature
	if temp == 0 {
		temp = 0.7
	}
	return &Client{
		client: client,
		model:  model,
		config: &genai.GenerateContentConfig{Temperature: genai.Ptr(temp)},
	}, nil
}

// Model returns the configured model name.
func (c *Client) Model() string { return c.model }

// Complete returns the generated text for prompt.
func (c *Client) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), c.config)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", fmt.Errorf("gemini generate: %w", ctxErr)
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", llm.ErrEmptyResponse
	}
	return text, nil
}

var _ llm.Client = (*Client)(nil)
