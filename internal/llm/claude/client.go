// Package claude adapts Anthropic's Messages API to llm.Completer.
package claude

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/joseph-ayodele/policy-intake/internal/llm"
)

const providerName = "claude"

type Config struct {
	APIKey      string
	Model       string // default claude-sonnet-4-5
	VisionModel string // defaults to Model
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
}

type Client struct {
	cfg    Config
	client anthropic.Client
	logger *slog.Logger
}

// NewClient returns llm.ErrMissingCredentials when no key is configured.
func NewClient(cfg Config, logger *slog.Logger) (*Client, error) {
	if cfg.APIKey == "" {
		return nil, llm.ErrMissingCredentials
	}
	if cfg.Model == "" {
		cfg.Model = "claude-sonnet-4-5"
	}
	if cfg.VisionModel == "" {
		cfg.VisionModel = cfg.Model
	}
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = 4096
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 45 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	client := anthropic.NewClient(
		option.WithAPIKey(cfg.APIKey),
		option.WithRequestTimeout(cfg.Timeout),
	)
	return &Client{cfg: cfg, client: client, logger: logger}, nil
}

func (c *Client) Name() string { return providerName }

func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	model := c.cfg.Model
	blocks := make([]anthropic.ContentBlockParamUnion, 0, 2)
	if req.Image != nil {
		model = c.cfg.VisionModel
		blocks = append(blocks, anthropic.NewImageBlockBase64(req.Image.MIMEType, base64.StdEncoding.EncodeToString(req.Image.Data)))
	}
	if req.User != "" {
		blocks = append(blocks, anthropic.NewTextBlock(req.User))
	}

	system := req.System
	if req.Schema != nil {
		system += "\n\n" + llm.SchemaInstruction(req.Schema)
	}
	params := anthropic.MessageNewParams{
		Model:     anthropic.Model(model),
		MaxTokens: int64(c.cfg.MaxTokens),
		Messages:  []anthropic.MessageParam{anthropic.NewUserMessage(blocks...)},
		System:    []anthropic.TextBlockParam{{Text: system}},
	}
	if c.cfg.Temperature > 0 {
		params.Temperature = anthropic.Float(float64(c.cfg.Temperature))
	}

	start := time.Now()
	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		c.logger.Error("llm.claude.messages_error", "model", model, "error", err, "elapsed_ms", time.Since(start).Milliseconds())
		var apiErr *anthropic.Error
		if errors.As(err, &apiErr) {
			return "", &llm.ProviderError{Provider: providerName, Status: apiErr.StatusCode, Message: apiErr.Error()}
		}
		return "", fmt.Errorf("claude messages: %w", err)
	}

	var out strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			out.WriteString(block.Text)
		}
	}
	c.logger.Info("llm.claude.response", "model", model, "bytes", out.Len(), "elapsed_ms", time.Since(start).Milliseconds())
	if out.Len() == 0 {
		return "", fmt.Errorf("no response generated from claude")
	}
	return out.String(), nil
}
