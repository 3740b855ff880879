package narrator

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"
	"github.com/anthropics/anthropic-sdk-go/packages/param"
)

// LLMClient is the interface both narrator backends satisfy.
type LLMClient interface {
	Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error)
}

// LLMResponse holds the raw response content and token usage.
type LLMResponse struct {
	Content      string
	PromptTokens int
	OutputTokens int
}

// ── APIClient (Anthropic SDK) ──────────────────────────────

type APIClient struct {
	client   *anthropic.Client
	model    string
	attempts int
	backoff  time.Duration
}

func NewAPIClient(apiKey, model string) *APIClient {
	client := anthropic.NewClient(
		option.WithAPIKey(apiKey),
	)
	return &APIClient{client: &client, model: model, attempts: 2, backoff: time.Second}
}

func (c *APIClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	params := anthropic.MessageNewParams{
		Model:       anthropic.Model(c.model),
		MaxTokens:   1024,
		Temperature: param.NewOpt(0.4),
		System: []anthropic.TextBlockParam{
			{Text: systemPrompt},
		},
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(userPrompt)),
		},
	}

	message, err := withRetry(ctx, c.attempts, c.backoff, func() (*anthropic.Message, error) {
		return c.client.Messages.New(ctx, params)
	})
	if err != nil {
		return nil, err
	}

	var responseText string
	for _, block := range message.Content {
		if block.Type == "text" {
			responseText = block.Text
			break
		}
	}

	if responseText == "" {
		return nil, fmt.Errorf("no text content in API response")
	}

	return &LLMResponse{
		Content:      responseText,
		PromptTokens: int(message.Usage.InputTokens),
		OutputTokens: int(message.Usage.OutputTokens),
	}, nil
}

// withRetry calls fn up to attempts times, doubling the wait between tries.
// It gives up early when ctx is done.
func withRetry[T any](ctx context.Context, attempts int, backoff time.Duration, fn func() (T, error)) (T, error) {
	var zero T
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			wait := backoff << uint(attempt-1)
			slog.Warn("retrying LLM call", "wait", wait, "attempt", attempt+1)
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(wait):
			}
		}

		v, err := fn()
		if err == nil {
			return v, nil
		}
		lastErr = err
		slog.Warn("LLM call failed", "attempt", attempt+1, "error", err)
	}
	return zero, fmt.Errorf("LLM call failed after %d attempts: %w", attempts, lastErr)
}

// ── MockClient (local development) ─────────────────────────

type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

// Generate echoes the headline lines of the prompt so callers can see
// what would have been sent.
func (m *MockClient) Generate(ctx context.Context, systemPrompt string, userPrompt string) (*LLMResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return &LLMResponse{
		Content:      "[Mock] " + firstLine(userPrompt) + " Focus on the weaknesses listed and revisit them this week.",
		PromptTokens: len(systemPrompt) / 4,
		OutputTokens: 40,
	}, nil
}
