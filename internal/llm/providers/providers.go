// Package providers selects and builds the configured llm.Completer.
package providers

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/joseph-ayodele/policy-intake/internal/llm"
	"github.com/joseph-ayodele/policy-intake/internal/llm/claude"
	"github.com/joseph-ayodele/policy-intake/internal/llm/gemini"
	"github.com/joseph-ayodele/policy-intake/internal/llm/openai"
)

const (
	OpenAI = "openai"
	Gemini = "gemini"
	Claude = "claude"
)

// Settings is the provider-neutral slice of configuration the factory needs.
type Settings struct {
	Provider    string
	APIKey      string
	BaseURL     string
	Model       string
	VisionModel string
	Temperature float32
	Timeout     time.Duration
}

// New builds the completer for s.Provider. A missing key surfaces as
// llm.ErrMissingCredentials before any document is processed.
func New(ctx context.Context, s Settings, logger *slog.Logger) (llm.Completer, error) {
	switch strings.ToLower(strings.TrimSpace(s.Provider)) {
	case "", OpenAI:
		c, err := openai.NewClient(openai.Config{
			APIKey:      s.APIKey,
			BaseURL:     s.BaseURL,
			Model:       s.Model,
			VisionModel: s.VisionModel,
			Temperature: s.Temperature,
			Timeout:     s.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("openai: %w", err)
		}
		return c, nil
	case Gemini:
		c, err := gemini.NewClient(ctx, gemini.Config{
			APIKey:      s.APIKey,
			Model:       s.Model,
			VisionModel: s.VisionModel,
			Temperature: s.Temperature,
			Timeout:     s.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("gemini: %w", err)
		}
		return c, nil
	case Claude:
		c, err := claude.NewClient(claude.Config{
			APIKey:      s.APIKey,
			Model:       s.Model,
			VisionModel: s.VisionModel,
			Temperature: s.Temperature,
			Timeout:     s.Timeout,
		}, logger)
		if err != nil {
			return nil, fmt.Errorf("claude: %w", err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown llm provider %q", s.Provider)
	}
}
