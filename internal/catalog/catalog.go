// Package catalog provides the static role taxonomy and keyword-based
// role selection for project descriptions.
package catalog

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"crewplan/pkg/models"
)

//go:embed roles.yaml
var rolesYAML []byte

// generalAppTerms are coarse project-type signals. A description that
// mentions any of them gets the core frontend/backend pair even when no
// role keyword matched, because keyword absence does not imply those
// roles are irrelevant.
var generalAppTerms = []string{
	"web",
	"app",
	"platform",
	"system",
	"full stack",
}

// aiTerms force-include the AI/ML role for AI-flavored projects.
var aiTerms = []string{
	"ai",
	"artificial intelligence",
	"machine learning",
	"ml",
	"intelligent",
}

// Core role names used by the forced-inclusion rules and the fallback pair.
const (
	roleFrontend = "Frontend Developer"
	roleBackend  = "Backend Developer"
	roleAIML     = "AI/ML Engineer"
)

// Catalog is the read-only role taxonomy. It is loaded once at process
// start and shared across requests without locking.
type Catalog struct {
	roles []models.Role
}

// Load parses the embedded taxonomy into a Catalog.
func Load() (*Catalog, error) {
	return loadFrom(rolesYAML)
}

func loadFrom(data []byte) (*Catalog, error) {
	var doc struct {
		Roles []models.Role `yaml:"roles"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse role taxonomy: %w", err)
	}
	if len(doc.Roles) == 0 {
		return nil, fmt.Errorf("role taxonomy is empty")
	}

	seen := make(map[string]bool, len(doc.Roles))
	for _, r := range doc.Roles {
		if r.Name == "" {
			return nil, fmt.Errorf("role with empty name in taxonomy")
		}
		if seen[r.Name] {
			return nil, fmt.Errorf("duplicate role %q in taxonomy", r.Name)
		}
		seen[r.Name] = true
	}

	return &Catalog{roles: doc.Roles}, nil
}

// Roles returns all roles in taxonomy order.
func (c *Catalog) Roles() []models.Role {
	out := make([]models.Role, len(c.roles))
	copy(out, c.roles)
	return out
}

// Lookup returns the role with the given name.
func (c *Catalog) Lookup(name string) (models.Role, bool) {
	for _, r := range c.roles {
		if r.Name == name {
			return r, true
		}
	}
	return models.Role{}, false
}

// Select returns the role names relevant to a project description, in
// taxonomy order, deduplicated. A role matches when any of its keywords
// is a case-insensitive substring of the description. Two forced-inclusion
// rules run afterward: general-application terms add the core
// frontend/backend pair, and AI terms add the AI/ML role.
//
// Select can return an empty slice; callers must substitute
// DefaultRolePair rather than proceed with no roles.
func (c *Catalog) Select(description string) []string {
	lower := strings.ToLower(description)

	var selected []string
	included := make(map[string]bool)
	include := func(name string) {
		if !included[name] {
			included[name] = true
			selected = append(selected, name)
		}
	}

	for _, role := range c.roles {
		for _, kw := range role.Keywords {
			if strings.Contains(lower, strings.ToLower(kw)) {
				include(role.Name)
				break
			}
		}
	}

	if containsAny(lower, generalAppTerms) {
		include(roleFrontend)
		include(roleBackend)
	}
	if containsAny(lower, aiTerms) {
		include(roleAIML)
	}

	return selected
}

// SelectionWeight sums the complexity weights of the named roles.
// Unknown names contribute nothing.
func (c *Catalog) SelectionWeight(names []string) int {
	total := 0
	for _, name := range names {
		if role, ok := c.Lookup(name); ok {
			total += role.ComplexityWeight
		}
	}
	return total
}

// DefaultRolePair is the hardcoded minimal selection used when keyword
// matching and the forced-inclusion rules all come up empty. An empty
// selection is never returned to the pipeline silently.
func DefaultRolePair() []string {
	return []string{roleFrontend, roleBackend}
}

func containsAny(lower string, terms []string) bool {
	for _, term := range terms {
		if strings.Contains(lower, term) {
			return true
		}
	}
	return false
}
