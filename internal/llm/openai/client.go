package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/joseph-ayodele/policy-intake/internal/llm"
)

const providerName = "openai"

func (c *Client) Name() string { return providerName }

// Complete implements llm.Completer over chat/completions with JSON output mode.
func (c *Client) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	model := c.cfg.Model
	var user any = req.User
	if req.Image != nil {
		model = c.cfg.VisionModel
		parts := make([]map[string]any, 0, 2)
		if req.User != "" {
			parts = append(parts, map[string]any{"type": "text", "text": req.User})
		}
		parts = append(parts, map[string]any{
			"type":      "image_url",
			"image_url": map[string]any{"url": llm.DataURL(req.Image)},
		})
		user = parts
	}

	messages := []map[string]any{
		{"role": "system", "content": req.System},
		{"role": "user", "content": user},
	}
	if req.Schema != nil {
		messages = append(messages, map[string]any{"role": "system", "content": llm.SchemaInstruction(req.Schema)})
	}

	body := map[string]any{
		"model":           model,
		"temperature":     c.cfg.Temperature,
		"response_format": map[string]any{"type": "json_object"},
		"messages":        messages,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + "/chat/completions"
	raw, err := llm.SendJSON(ctx, c.http, providerName, endpoint, body, headers, c.logger)
	if err != nil {
		return "", err
	}

	var cc struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(raw, &cc); err != nil {
		c.logger.Error("llm.openai.decode_error", "error", err, "raw_bytes", len(raw))
		return "", fmt.Errorf("decode openai response: %w", err)
	}
	if len(cc.Choices) == 0 {
		c.logger.Error("llm.openai.no_choices", "raw", string(raw))
		return "", fmt.Errorf("no choices in openai response")
	}
	return strings.TrimSpace(cc.Choices[0].Message.Content), nil
}
