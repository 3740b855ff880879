// Package narrator writes a short coaching paragraph for a computed profile.
package narrator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/lsat-prep/diagnostics/internal/config"
	"github.com/lsat-prep/diagnostics/internal/models"
)

var ErrNarrationDisabled = errors.New("narration disabled")

type Narrator struct {
	llm   LLMClient
	model string
}

func NewNarrator(llm LLMClient, model string) *Narrator {
	return &Narrator{llm: llm, model: model}
}

// FromConfig picks the backend named by cfg.NarrationMode. It returns
// ErrNarrationDisabled when narration is off.
func FromConfig(cfg config.LLMConfig) (*Narrator, error) {
	switch cfg.NarrationMode {
	case "api":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("narration mode api requires ANTHROPIC_API_KEY")
		}
		slog.Info("narrator using Anthropic API", "model", cfg.Model)
		return NewNarrator(NewAPIClient(cfg.APIKey, cfg.Model), cfg.Model), nil
	case "mock":
		slog.Info("narrator using mock client")
		return NewNarrator(NewMockClient(), "mock"), nil
	case "", "off":
		return nil, ErrNarrationDisabled
	default:
		return nil, fmt.Errorf("unknown narration mode %q", cfg.NarrationMode)
	}
}

func (n *Narrator) ModelName() string {
	return n.model
}

func (n *Narrator) Narrate(ctx context.Context, profile *models.Profile) (string, error) {
	if profile == nil {
		return "", fmt.Errorf("narrate: nil profile")
	}

	resp, err := n.llm.Generate(ctx, SystemPrompt(), BuildUserPrompt(profile))
	if err != nil {
		return "", fmt.Errorf("narrate: %w", err)
	}

	text := strings.TrimSpace(resp.Content)
	if text == "" {
		return "", fmt.Errorf("narrate: empty response")
	}

	slog.Debug("narration generated",
		"model", n.model,
		"prompt_tokens", resp.PromptTokens,
		"output_tokens", resp.OutputTokens)
	return text, nil
}
