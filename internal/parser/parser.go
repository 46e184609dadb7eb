// Package parser recovers role -> task mappings from raw generation
// output. Generators are asked for a fixed format but frequently return
// JSON embedded in prose, emoji-decorated pseudo-markdown, or plain
// numbered lists, so recovery runs as a chain of strategies tried in
// fixed priority order.
package parser

import (
	"strings"

	"crewplan/pkg/models"
)

// Strategy is one self-contained algorithm for recovering a role -> task
// mapping from unstructured text. Parse reports ok when it recovered at
// least one role with at least one task.
type Strategy interface {
	// Name identifies the strategy for diagnostics.
	Name() string
	// Parse attempts recovery on the full text.
	Parse(text string) (models.RoleTaskList, bool)
}

// Chain tries strategies in order and returns the first non-empty result.
type Chain struct {
	strategies []Strategy
}

// NewChain returns the default chain: JSON-first extraction, then
// decorated-section split, then generic line classification. JSON comes
// first because it is lossless when the generator complied with the
// requested schema.
func NewChain() *Chain {
	return &Chain{
		strategies: []Strategy{
			&jsonStrategy{},
			&sectionStrategy{},
			&lineStrategy{},
		},
	}
}

// NewChainWith builds a chain from explicit strategies, in order.
func NewChainWith(strategies ...Strategy) *Chain {
	return &Chain{strategies: strategies}
}

// Parse runs the chain on raw generation output. Each strategy is
// all-or-nothing: a partial recognition does not mix with results from a
// later strategy. When no strategy succeeds, Parse returns an empty
// mapping and no error; deciding whether empty is fatal belongs to the
// orchestrator.
func (c *Chain) Parse(raw string) models.RoleTaskList {
	mapping, _ := c.ParseWithStrategy(raw)
	return mapping
}

// ParseWithStrategy is Parse plus the name of the strategy that
// succeeded ("" when none did).
func (c *Chain) ParseWithStrategy(raw string) (models.RoleTaskList, string) {
	text := strings.TrimSpace(raw)
	if text == "" {
		return nil, ""
	}

	for _, s := range c.strategies {
		if mapping, ok := s.Parse(text); ok {
			return mapping, s.Name()
		}
	}
	return nil, ""
}
