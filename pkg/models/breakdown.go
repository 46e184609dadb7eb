package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// RoleTasks pairs a role name with its ordered task list.
type RoleTasks struct {
	// Role is the canonical role name.
	Role string `json:"role"`
	// Tasks are the role's tasks in discovery order.
	Tasks []string `json:"tasks"`
}

// RoleTaskList is an insertion-ordered role -> tasks mapping.
// Go maps do not preserve key order, but the canonical output schema is a
// JSON object whose key order must match role discovery order, so the
// mapping is kept as a slice with uniqueness enforced by Append.
type RoleTaskList []RoleTasks

// Get returns the task list for a role and whether the role is present.
func (l RoleTaskList) Get(role string) ([]string, bool) {
	for _, rt := range l {
		if rt.Role == role {
			return rt.Tasks, true
		}
	}
	return nil, false
}

// Append adds tasks to a role, creating the entry if needed.
// Existing entries keep their original position.
func (l RoleTaskList) Append(role string, tasks ...string) RoleTaskList {
	for i, rt := range l {
		if rt.Role == role {
			l[i].Tasks = append(l[i].Tasks, tasks...)
			return l
		}
	}
	return append(l, RoleTasks{Role: role, Tasks: tasks})
}

// Len returns the number of roles in the mapping.
func (l RoleTaskList) Len() int {
	return len(l)
}

// TotalTasks returns the number of tasks across all roles.
func (l RoleTaskList) TotalTasks() int {
	n := 0
	for _, rt := range l {
		n += len(rt.Tasks)
	}
	return n
}

// MarshalJSON encodes the list as a JSON object in list order.
func (l RoleTaskList) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, rt := range l {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(rt.Role)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		tasks := rt.Tasks
		if tasks == nil {
			tasks = []string{}
		}
		val, err := json.Marshal(tasks)
		if err != nil {
			return nil, err
		}
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object preserving its key order.
func (l *RoleTaskList) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected JSON object, got %v", tok)
	}

	var out RoleTaskList
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		role, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("expected string key, got %v", keyTok)
		}
		var tasks []string
		if err := dec.Decode(&tasks); err != nil {
			return fmt.Errorf("tasks for role %q: %w", role, err)
		}
		out = out.Append(role, tasks...)
	}

	*l = out
	return nil
}

// Summary holds the recomputed counts for a breakdown.
// Counts are always derived from the role list, never supplied directly.
type Summary struct {
	// TotalRoles is the number of roles in the breakdown.
	TotalRoles int `json:"total_roles"`
	// TotalTasks is the number of tasks across all roles.
	TotalTasks int `json:"total_tasks"`
}

// Breakdown is the canonical output: a project's roles mapped to their
// tasks, plus summary counts. It is the only type that crosses the
// pipeline boundary to callers.
type Breakdown struct {
	// ID uniquely identifies this breakdown (used by the history store).
	ID string `json:"id,omitempty"`
	// ProjectName is the label for the project, usually the description.
	ProjectName string `json:"project_name"`
	// Roles maps role names to their ordered task lists.
	Roles RoleTaskList `json:"roles_and_responsibilities"`
	// Summary holds the recomputed counts.
	Summary Summary `json:"summary"`
	// GeneratedAt is when the breakdown was produced.
	GeneratedAt time.Time `json:"generated_at,omitempty"`
}

// Recompute refreshes the summary counts from the role list.
func (b *Breakdown) Recompute() {
	b.Summary = Summary{
		TotalRoles: b.Roles.Len(),
		TotalTasks: b.Roles.TotalTasks(),
	}
}

// Valid reports whether the breakdown satisfies its invariants:
// consistent summary counts, unique role names, and no empty entries.
func (b *Breakdown) Valid() bool {
	if b.Summary.TotalRoles != b.Roles.Len() || b.Summary.TotalTasks != b.Roles.TotalTasks() {
		return false
	}
	seen := make(map[string]bool, len(b.Roles))
	for _, rt := range b.Roles {
		if rt.Role == "" || seen[rt.Role] {
			return false
		}
		seen[rt.Role] = true
	}
	return true
}
