package models

// Role represents a professional specialty in the taxonomy.
// Roles are static configuration: loaded once at process start and
// never mutated afterward.
type Role struct {
	// Name is the canonical role label and its identity.
	Name string `json:"name" yaml:"name"`
	// Domain is the taxonomy group the role belongs to.
	Domain string `json:"domain" yaml:"domain"`
	// Keywords are the case-insensitive terms that make a project
	// description relevant to this role.
	Keywords []string `json:"keywords" yaml:"keywords"`
	// ComplexityWeight is a coarse effort weight used when summarizing
	// a selection (higher means more involved work).
	ComplexityWeight int `json:"complexity_weight" yaml:"complexity_weight"`
}
