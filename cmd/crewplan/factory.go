package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/anthropics/anthropic-sdk-go"

	"crewplan/internal/api"
	"crewplan/internal/breakdown"
	"crewplan/internal/catalog"
	"crewplan/internal/config"
	"crewplan/internal/state"
	"crewplan/pkg/models"
)

// newGenerator builds the Claude-backed generator from config. The
// client is returned alongside so callers can report token usage and
// backend details after a run.
func newGenerator(cfg *config.Config) (api.Generator, *api.Client, error) {
	client, err := api.NewClient(api.ClientConfig{
		Model:         anthropic.Model(cfg.Anthropic.Model),
		APIKey:        cfg.Anthropic.APIKey,
		UseAWSBedrock: cfg.Anthropic.UseBedrock,
		AWSRegion:     cfg.Anthropic.AWSRegion,
		AWSProfile:    cfg.Anthropic.AWSProfile,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("create API client: %w", err)
	}
	return api.NewClaudeGenerator(client, int64(cfg.Anthropic.MaxTokens)), client, nil
}

// newOrchestrator wires the role catalog and a generator into the
// pipeline.
func newOrchestrator(gen api.Generator) (*breakdown.Orchestrator, error) {
	cat, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load role catalog: %w", err)
	}
	return breakdown.New(cat, gen), nil
}

// retryingGenerator wraps a Generator with the retry policy from
// config. Serve mode uses it; one-shot runs call the generator once.
type retryingGenerator struct {
	gen      api.Generator
	attempts int
	delay    time.Duration
}

func (r *retryingGenerator) Generate(ctx context.Context, description string, roles []string) (string, error) {
	return api.GenerateWithRetry(ctx, r.gen, description, roles, r.attempts, r.delay)
}

// openHistory opens the breakdown history store, or returns nil when
// history is disabled.
func openHistory(cfg *config.Config) (*state.DB, error) {
	if !cfg.History.Enabled {
		return nil, nil
	}
	path := cfg.History.DBPath
	if path == "" {
		path = state.DefaultDBPath()
	}
	db, err := state.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate history store: %w", err)
	}
	return db, nil
}

// recordResult stores a produced breakdown in the history. Failures
// are reported but never abort the run.
func recordResult(db *state.DB, res *breakdown.Result) {
	if db == nil {
		return
	}
	rec := &state.Record{
		Breakdown:    res.Breakdown,
		Strategy:     res.Strategy,
		UsedFallback: res.UsedFallback,
	}
	if err := db.SaveBreakdown(rec); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record breakdown: %v\n", err)
	}
}

// writeBreakdownFile writes the canonical JSON schema to path.
func writeBreakdownFile(path string, b *models.Breakdown) error {
	out, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("encode breakdown: %w", err)
	}
	out = append(out, '\n')
	if err := os.WriteFile(path, out, 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// slugFilename derives a save filename from a project description.
func slugFilename(description string) string {
	var sb strings.Builder
	for _, r := range strings.ToLower(strings.TrimSpace(description)) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			sb.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			sb.WriteByte('_')
		}
	}
	slug := sb.String()
	for strings.Contains(slug, "__") {
		slug = strings.ReplaceAll(slug, "__", "_")
	}
	slug = strings.Trim(slug, "_")
	if len(slug) > 40 {
		slug = slug[:40]
		slug = strings.TrimRight(slug, "_")
	}
	if slug == "" {
		slug = "project"
	}
	return slug + "_task_breakdown.json"
}
