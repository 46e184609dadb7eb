package parser

import (
	"strings"

	"crewplan/pkg/models"
)

// sectionStrategy splits the text on decorated role headers: lines led by
// a known symbol marker, or title-case "Word Word:" lines. A header line
// starts a new section and everything until the next header is that
// section's body. The split uses lookahead boundary detection over the
// line list rather than regex splitting, so a header on the first line
// and consecutive headers both behave.
type sectionStrategy struct{}

func (s *sectionStrategy) Name() string { return "sections" }

type section struct {
	header string
	body   []string
}

func (s *sectionStrategy) Parse(text string) (models.RoleTaskList, bool) {
	sections := splitSections(text)
	if len(sections) == 0 {
		return nil, false
	}

	var mapping models.RoleTaskList
	for _, sec := range sections {
		role := cleanRoleName(sec.header)
		if role == "" {
			continue
		}
		var tasks []string
		for _, line := range sec.body {
			if isNoiseLine(line) {
				continue
			}
			if task, ok := cleanTask(line); ok {
				tasks = append(tasks, task)
			}
		}
		if len(tasks) > 0 {
			mapping = mapping.Append(role, tasks...)
		}
	}

	mapping = prune(mapping)
	return mapping, mapping.Len() > 0
}

// splitSections walks the lines, opening a new section at every header
// line. Lines before the first header are discarded.
func splitSections(text string) []section {
	var sections []section
	var current *section

	for _, line := range strings.Split(text, "\n") {
		if isDecoratedHeader(line) {
			sections = append(sections, section{header: line})
			current = &sections[len(sections)-1]
			continue
		}
		if current != nil {
			current.body = append(current.body, line)
		}
	}
	return sections
}

// isDecoratedHeader reports whether a line looks like a role header for
// the section strategy: it ends with a colon (after emphasis stripping)
// and is either led by a known symbol marker or written in title case.
// Task-list items never qualify, even when they contain a colon.
func isDecoratedHeader(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || hasEnumerator(trimmed) {
		return false
	}

	decorated := false
	for _, m := range headerMarkers {
		if strings.HasPrefix(trimmed, m) {
			decorated = true
			break
		}
	}

	rest := stripMarkers(trimmed, headerMarkers)
	rest = strings.Trim(rest, "*_")
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ":") {
		return false
	}
	name := strings.TrimSpace(strings.TrimSuffix(rest, ":"))
	if name == "" || strings.Contains(name, ":") {
		return false
	}

	if decorated {
		return true
	}
	return isTitleCase(name)
}
