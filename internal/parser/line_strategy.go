package parser

import (
	"strings"

	"crewplan/pkg/models"
)

// scanState is the tagged state of the line scanner. The machine has two
// states and one transition trigger: header lines.
type scanState int

const (
	// stateNoRole is the initial state; task lines seen here have no
	// owner and are dropped.
	stateNoRole scanState = iota
	// stateInRole means a role header has been seen and task lines
	// attach to it.
	stateInRole
)

// lineStrategy is the last-resort recovery: a sequential scan that
// classifies each line as a role header (contains a colon, is not a task
// item) or a task (leading enumerator with a surviving remainder).
// Headers move the cursor; tasks append to the current role.
type lineStrategy struct{}

func (s *lineStrategy) Name() string { return "lines" }

func (s *lineStrategy) Parse(text string) (models.RoleTaskList, bool) {
	var mapping models.RoleTaskList

	state := stateNoRole
	currentRole := ""

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)
		if isNoiseLine(trimmed) {
			continue
		}

		if isLineHeader(trimmed) {
			name := trimmed
			if idx := strings.Index(trimmed, ":"); idx != -1 {
				name = trimmed[:idx]
			}
			currentRole = cleanRoleName(name)
			if currentRole == "" {
				state = stateNoRole
				continue
			}
			state = stateInRole
			continue
		}

		if state != stateInRole || !hasEnumerator(trimmed) {
			continue
		}
		if task, ok := cleanTask(trimmed); ok {
			mapping = mapping.Append(currentRole, task)
		}
	}

	mapping = prune(mapping)
	return mapping, mapping.Len() > 0
}

// isLineHeader reports whether a line acts as a role header for the
// generic scan: it contains a colon and is not itself a task-list item.
func isLineHeader(line string) bool {
	if !strings.Contains(line, ":") {
		return false
	}
	return !hasEnumerator(line)
}
