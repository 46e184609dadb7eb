package api

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"
)

// Generator is the external generation call: a project description and
// its selected roles in, unstructured text out. It is the pipeline's
// only suspension point; implementations must honor ctx cancellation.
type Generator interface {
	Generate(ctx context.Context, description string, roles []string) (string, error)
}

// ClaudeGenerator implements Generator against the Anthropic Messages API.
type ClaudeGenerator struct {
	client    *Client
	maxTokens int64
}

// NewClaudeGenerator creates a generator on top of an existing client.
func NewClaudeGenerator(client *Client, maxTokens int64) *ClaudeGenerator {
	if maxTokens <= 0 {
		maxTokens = 2048
	}
	return &ClaudeGenerator{client: client, maxTokens: maxTokens}
}

// Generate makes a single Messages call and returns the concatenated
// text blocks of the response. It never retries; callers wanting retry
// wrap it with GenerateWithRetry.
func (g *ClaudeGenerator) Generate(ctx context.Context, description string, roles []string) (string, error) {
	prompt := BuildTaskPrompt(description, roles)

	resp, err := g.client.sdk().Messages.New(ctx, anthropic.MessageNewParams{
		Model:     g.client.Model(),
		MaxTokens: g.maxTokens,
		Messages: []anthropic.MessageParam{
			anthropic.NewUserMessage(anthropic.NewTextBlock(prompt)),
		},
	})
	if err != nil {
		return "", fmt.Errorf("messages call: %w", err)
	}

	g.client.Tracker().Add(resp.Usage.InputTokens, resp.Usage.OutputTokens)

	var sb strings.Builder
	for _, block := range resp.Content {
		if variant, ok := block.AsAny().(anthropic.TextBlock); ok {
			sb.WriteString(variant.Text)
		}
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("empty response from model")
	}
	return text, nil
}

// GenerateWithRetry calls gen up to attempts times, sleeping delay
// between failures. Context cancellation stops the loop immediately.
func GenerateWithRetry(ctx context.Context, gen Generator, description string, roles []string, attempts int, delay time.Duration) (string, error) {
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		text, err := gen.Generate(ctx, description, roles)
		if err == nil {
			return text, nil
		}
		lastErr = err

		if attempt < attempts {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(delay):
			}
		}
	}
	return "", fmt.Errorf("failed after %d attempts: %w", attempts, lastErr)
}
