package breakdown

import (
	"context"
	"errors"
	"strings"
	"testing"

	"crewplan/internal/catalog"
)

// fakeGenerator returns canned text or a canned error and records the
// roles it was invoked with.
type fakeGenerator struct {
	text  string
	err   error
	calls int
	roles []string
}

func (f *fakeGenerator) Generate(ctx context.Context, description string, roles []string) (string, error) {
	f.calls++
	f.roles = roles
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

func newOrchestrator(t *testing.T, gen *fakeGenerator) *Orchestrator {
	t.Helper()
	cat, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load: %v", err)
	}
	return New(cat, gen)
}

func TestProduceBreakdown_HappyPath(t *testing.T) {
	gen := &fakeGenerator{text: `Frontend Developer:
1. Build the workout tracking screens
2. Add the social feed components

Backend Developer:
1. Design schema for workouts and users
2. Build the recommendation API endpoints`}

	o := newOrchestrator(t, gen)
	res, err := o.ProduceBreakdown(context.Background(), "a mobile fitness app with AI recommendations")
	if err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}

	if res.UsedFallback {
		t.Error("fallback used despite parseable response")
	}
	if res.Strategy == "" {
		t.Error("strategy not reported")
	}
	b := res.Breakdown
	if !b.Valid() {
		t.Error("breakdown invariants violated")
	}
	if b.Summary.TotalRoles != 2 || b.Summary.TotalTasks != 4 {
		t.Errorf("summary = %+v, want 2 roles / 4 tasks", b.Summary)
	}
	if b.ID == "" || b.GeneratedAt.IsZero() {
		t.Error("breakdown missing ID or timestamp")
	}
	if res.SelectionWeight <= 0 {
		t.Errorf("selection weight = %d, want > 0", res.SelectionWeight)
	}
}

func TestProduceBreakdown_RoleSelectionFeedsGenerator(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("short-circuit")}

	o := newOrchestrator(t, gen)
	if _, err := o.ProduceBreakdown(context.Background(), "a mobile fitness app with AI recommendations"); err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}

	var hasMobile, hasAI bool
	for _, r := range gen.roles {
		if r == "Mobile Developer" {
			hasMobile = true
		}
		if r == "AI/ML Engineer" {
			hasAI = true
		}
	}
	if !hasMobile || !hasAI {
		t.Errorf("selected roles = %v, want mobile and AI/ML roles included", gen.roles)
	}
}

func TestProduceBreakdown_GenerationFailureFallsBack(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream timeout")}

	o := newOrchestrator(t, gen)
	res, err := o.ProduceBreakdown(context.Background(), "a web dashboard for analytics")
	if err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}

	if !res.UsedFallback {
		t.Fatal("fallback not used after generation failure")
	}
	if res.GenerationErr == nil {
		t.Error("generation error not recorded")
	}

	// Exactly three templated tasks per selected role.
	b := res.Breakdown
	if b.Roles.Len() != len(res.SelectedRoles) {
		t.Errorf("roles = %d, want %d", b.Roles.Len(), len(res.SelectedRoles))
	}
	for _, rt := range b.Roles {
		if len(rt.Tasks) != fallbackTasksPerRole {
			t.Errorf("role %q has %d tasks, want %d", rt.Role, len(rt.Tasks), fallbackTasksPerRole)
		}
		for _, task := range rt.Tasks {
			if !strings.Contains(task, rt.Role) {
				t.Errorf("fallback task %q not parameterized by role %q", task, rt.Role)
			}
		}
	}
}

func TestProduceBreakdown_UnparseableResponseFallsBack(t *testing.T) {
	gen := &fakeGenerator{text: "I'm sorry, I cannot break this project down."}

	o := newOrchestrator(t, gen)
	res, err := o.ProduceBreakdown(context.Background(), "a web platform for bird watchers")
	if err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}

	if !res.UsedFallback {
		t.Fatal("fallback not used for unparseable response")
	}
	if res.GenerationErr != nil {
		t.Errorf("generation error recorded for a successful call: %v", res.GenerationErr)
	}
	if res.Breakdown.Summary.TotalTasks == 0 {
		t.Error("fallback produced no tasks")
	}
}

func TestProduceBreakdown_NoKeywordMatchUsesDefaultPair(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("short-circuit")}

	o := newOrchestrator(t, gen)
	res, err := o.ProduceBreakdown(context.Background(), "an interpretive dance archive")
	if err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}

	want := catalog.DefaultRolePair()
	if len(res.SelectedRoles) != len(want) {
		t.Fatalf("selected roles = %v, want default pair %v", res.SelectedRoles, want)
	}
	for i, r := range want {
		if res.SelectedRoles[i] != r {
			t.Errorf("selected roles = %v, want %v", res.SelectedRoles, want)
		}
	}
}

func TestProduceBreakdown_EmptyDescription(t *testing.T) {
	gen := &fakeGenerator{}

	o := newOrchestrator(t, gen)
	for _, desc := range []string{"", "   ", "\n\t"} {
		if _, err := o.ProduceBreakdown(context.Background(), desc); !errors.Is(err, ErrEmptyDescription) {
			t.Errorf("ProduceBreakdown(%q) err = %v, want ErrEmptyDescription", desc, err)
		}
	}
	if gen.calls != 0 {
		t.Errorf("generator called %d times for invalid input", gen.calls)
	}
}

func TestProduceBreakdown_NeverEmpty(t *testing.T) {
	// Across failure combinations, the result always has >= 1 role and
	// >= 1 task.
	tests := []struct {
		name string
		gen  *fakeGenerator
		desc string
	}{
		{"generator error", &fakeGenerator{err: errors.New("boom")}, "a web app"},
		{"empty response", &fakeGenerator{text: ""}, "a web app"},
		{"prose response", &fakeGenerator{text: "no breakdown today"}, "a web app"},
		{"no keyword match", &fakeGenerator{err: errors.New("boom")}, "knitting circle newsletter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := newOrchestrator(t, tt.gen)
			res, err := o.ProduceBreakdown(context.Background(), tt.desc)
			if err != nil {
				t.Fatalf("ProduceBreakdown: %v", err)
			}
			if res.Breakdown.Summary.TotalRoles < 1 || res.Breakdown.Summary.TotalTasks < 1 {
				t.Errorf("summary = %+v, want >= 1 role and >= 1 task", res.Breakdown.Summary)
			}
			if !res.Breakdown.Valid() {
				t.Error("breakdown invariants violated")
			}
		})
	}
}

func TestProduceBreakdown_AtMostOneCall(t *testing.T) {
	gen := &fakeGenerator{err: errors.New("upstream down")}

	o := newOrchestrator(t, gen)
	if _, err := o.ProduceBreakdown(context.Background(), "a web app"); err != nil {
		t.Fatalf("ProduceBreakdown: %v", err)
	}
	if gen.calls != 1 {
		t.Errorf("generator calls = %d, want exactly 1", gen.calls)
	}
}
