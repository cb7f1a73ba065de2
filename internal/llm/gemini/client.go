// Package gemini adapts Google's Gemini API to llm.Completer.
package gemini

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"google.golang.org/genai"

	"github.com/joseph-ayodele/policy-intake/internal/llm"
)

const providerName = "gemini"

type Config struct {
	APIKey      string
	Model       string // default gemini-2.5-flash
	VisionModel string // defaults to Model
	Temperature float32
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	client *genai.Client
	logger *slog.Logger
}

// NewClient builds a Gemini API client. An empty key is llm.ErrMissingCredentials.
func NewClient(ctx context.Context, cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, llm.ErrMissingCredentials
	}
	if cfg.Model == "" {
		cfg.Model = "gemini-2.5-flash"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = cfg.Model
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &Client{cfg: cfg, client: client, logger: logger}, nil
}

func (c *Client) Name() string { return providerName }

func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	model := c.cfg.Model
	parts := make([]*genai.Part, 0, 2)
	if req.User != "" {
		parts = append(parts, genai.NewPartFromText(req.User))
	}
	if req.Image != nil {
		model = c.cfg.VisionModel
		parts = append(parts, genai.NewPartFromBytes(req.Image.Data, req.Image.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	system := req.System
	if req.Schema != nil {
		system += "\n\n" + llm.SchemaInstruction(req.Schema)
	}
	config := &genai.GenerateContentConfig{
		Temperature:       genai.Ptr(c.cfg.Temperature),
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
		ResponseMIMEType:  "application/json",
	}

	start := time.Now()
	resp, err := c.client.Models.GenerateContent(ctx, model, contents, config)
	if err != nil {
		c.logger.Error("llm.gemini.generate_error", "model", model, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		var apiErr genai.APIError
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{Provider: providerName, Status: apiErr.Code, Message: apiErr.Message}
		}
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(resp.Text())
	c.logger.Info("llm.gemini.response", "model", model, "bytes", len(text), "elapsed_ms", time.Since(start).Milliseconds())
	if text == "" {
		return "", fmt.Errorf("no response generated from gemini")
	}
	return text, nil
}
