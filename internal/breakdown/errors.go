// Package breakdown coordinates role selection, task generation, and
// normalization into the canonical project breakdown.
package breakdown

import "errors"

// ErrEmptyDescription is returned when the caller submits an empty or
// whitespace-only project description. This is the one input the
// pipeline rejects outright instead of recovering from.
var ErrEmptyDescription = errors.New("project description is empty")

// ErrNoMeaningfulBreakdown is returned when role selection produced
// nothing even after the forced-inclusion rules and the default pair.
// It is a deliberate refusal, distinct from a silently empty result.
var ErrNoMeaningfulBreakdown = errors.New("could not produce a meaningful breakdown")
