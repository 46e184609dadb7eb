package breakdown

import (
	"encoding/json"
	"fmt"
	"strings"

	"crewplan/pkg/models"
)

// Formatter projects any role -> task mapping into the canonical
// Breakdown with recomputed summary counts. It contains no parsing or
// generation logic.
type Formatter struct{}

// NewFormatter creates a Formatter.
func NewFormatter() *Formatter {
	return &Formatter{}
}

// Normalize builds the canonical breakdown from a mapping, trimming role
// and task strings, dropping empties, and recomputing the summary.
func (f *Formatter) Normalize(projectName string, mapping models.RoleTaskList) *models.Breakdown {
	var roles models.RoleTaskList
	for _, rt := range mapping {
		role := strings.TrimSpace(rt.Role)
		if role == "" {
			continue
		}
		var tasks []string
		for _, task := range rt.Tasks {
			if t := strings.TrimSpace(task); t != "" {
				tasks = append(tasks, t)
			}
		}
		if len(tasks) > 0 {
			roles = roles.Append(role, tasks...)
		}
	}

	b := &models.Breakdown{
		ProjectName: strings.TrimSpace(projectName),
		Roles:       roles,
	}
	b.Recompute()
	return b
}

// rawEnvelope covers the intermediate schemas produced by upstream
// collaborators: the canonical nesting, the task-only nesting, and the
// role-selection-only shape.
type rawEnvelope struct {
	RolesAndResponsibilities models.RoleTaskList `json:"roles_and_responsibilities"`
	RoleTasks                models.RoleTaskList `json:"role_tasks"`
	SelectedRoles            []string            `json:"selected_roles"`
}

// NormalizeRaw accepts a JSON payload in any of the accepted nestings
// and normalizes it to the canonical breakdown. A selection-only payload
// yields roles with empty task lists (total_tasks 0); the caller decides
// whether that is enough.
func (f *Formatter) NormalizeRaw(projectName string, payload []byte) (*models.Breakdown, error) {
	var env rawEnvelope
	if err := json.Unmarshal(payload, &env); err != nil {
		return nil, fmt.Errorf("decode breakdown payload: %w", err)
	}

	switch {
	case env.RolesAndResponsibilities.Len() > 0:
		return f.Normalize(projectName, env.RolesAndResponsibilities), nil
	case env.RoleTasks.Len() > 0:
		return f.Normalize(projectName, env.RoleTasks), nil
	case len(env.SelectedRoles) > 0:
		var roles models.RoleTaskList
		for _, role := range env.SelectedRoles {
			if r := strings.TrimSpace(role); r != "" {
				if _, ok := roles.Get(r); !ok {
					roles = append(roles, models.RoleTasks{Role: r})
				}
			}
		}
		b := &models.Breakdown{
			ProjectName: strings.TrimSpace(projectName),
			Roles:       roles,
		}
		b.Recompute()
		return b, nil
	default:
		return nil, fmt.Errorf("payload contains no recognized role mapping")
	}
}
