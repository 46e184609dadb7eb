package breakdown

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"crewplan/internal/api"
	"crewplan/internal/catalog"
	"crewplan/internal/parser"
	"crewplan/pkg/models"
)

// fallbackTasksPerRole is how many templated tasks the fallback
// synthesizes for each selected role.
const fallbackTasksPerRole = 3

// Result carries a produced breakdown plus pipeline diagnostics.
type Result struct {
	// Breakdown is the canonical output, never nil on success.
	Breakdown *models.Breakdown
	// SelectedRoles is the role selection that fed the generation call.
	SelectedRoles []string
	// SelectionWeight is the summed complexity weight of the selection.
	SelectionWeight int
	// Strategy names the parse strategy that recovered the mapping
	// ("" when the fallback synthesized it).
	Strategy string
	// UsedFallback is true when the generation call failed or parsed
	// to nothing and templated tasks were substituted.
	UsedFallback bool
	// GenerationErr is the upstream error the fallback recovered from,
	// if any. It is informational; the pipeline already handled it.
	GenerationErr error
}

// Orchestrator sequences the pipeline: select roles, invoke the
// generation call, parse the response, and fall back to synthesized
// tasks when nothing usable came back. Every produced breakdown is
// non-empty and schema-valid; the orchestrator never surfaces a raw
// upstream failure.
type Orchestrator struct {
	catalog   *catalog.Catalog
	gen       api.Generator
	chain     *parser.Chain
	formatter *Formatter
}

// New creates an Orchestrator. The generator is the only collaborator
// that can block or fail; catalog and chain are pure.
func New(cat *catalog.Catalog, gen api.Generator) *Orchestrator {
	return &Orchestrator{
		catalog:   cat,
		gen:       gen,
		chain:     parser.NewChain(),
		formatter: NewFormatter(),
	}
}

// ProduceBreakdown runs the full pipeline for one project description.
// The generation call is made at most once; ctx bounds it. Failure of
// the call, or a parse that recovers nothing, triggers the fallback
// synthesis instead of an error.
func (o *Orchestrator) ProduceBreakdown(ctx context.Context, description string) (*Result, error) {
	description = strings.TrimSpace(description)
	if description == "" {
		return nil, ErrEmptyDescription
	}

	roles := o.catalog.Select(description)
	if len(roles) == 0 {
		roles = catalog.DefaultRolePair()
	}
	if len(roles) == 0 {
		return nil, ErrNoMeaningfulBreakdown
	}

	res := &Result{
		SelectedRoles:   roles,
		SelectionWeight: o.catalog.SelectionWeight(roles),
	}

	raw, genErr := o.gen.Generate(ctx, description, roles)
	if genErr != nil {
		res.GenerationErr = fmt.Errorf("generation call: %w", genErr)
	}

	var mapping models.RoleTaskList
	if genErr == nil {
		mapping, res.Strategy = o.chain.ParseWithStrategy(raw)
	}
	if mapping.Len() == 0 {
		mapping = synthesizeFallback(roles)
		res.UsedFallback = true
		res.Strategy = ""
	}

	b := o.formatter.Normalize(description, mapping)
	b.ID = uuid.New().String()
	b.GeneratedAt = time.Now().UTC()
	res.Breakdown = b

	return res, nil
}

// synthesizeFallback emits three generic templated tasks per selected
// role so downstream consumers always receive a non-empty, schema-valid
// breakdown.
func synthesizeFallback(roles []string) models.RoleTaskList {
	var mapping models.RoleTaskList
	for _, role := range roles {
		mapping = mapping.Append(role,
			fmt.Sprintf("Set up the development environment and tooling for the %s work", role),
			fmt.Sprintf("Implement the core %s functionality for the project", role),
			fmt.Sprintf("Test and optimize the %s deliverables", role),
		)
	}
	return mapping
}
