package parser

import (
	"encoding/json"
	"strings"

	"crewplan/pkg/models"
)

// mappingFields are the recognized field names under which generators
// nest the role/task mapping when they follow (or half-follow) the
// requested schema.
var mappingFields = []string{
	"roles_and_responsibilities",
	"role_tasks",
	"roles_and_tasks",
}

// jsonStrategy recovers the mapping from structured JSON embedded in the
// response. It slices from the first '{' to the last '}' so prose or
// markdown fences around the object do not matter. This path is lossless
// when the generator complied, so results are only trimmed, never run
// through the noise filter.
type jsonStrategy struct{}

func (s *jsonStrategy) Name() string { return "json" }

func (s *jsonStrategy) Parse(text string) (models.RoleTaskList, bool) {
	payload, ok := extractJSONObject(text)
	if !ok {
		return nil, false
	}

	var top map[string]json.RawMessage
	if err := json.Unmarshal([]byte(payload), &top); err != nil {
		return nil, false
	}

	for _, field := range mappingFields {
		raw, ok := top[field]
		if !ok {
			continue
		}
		var mapping models.RoleTaskList
		if err := json.Unmarshal(raw, &mapping); err != nil {
			continue
		}
		if mapping = tidyMapping(mapping); mapping.Len() > 0 {
			return mapping, true
		}
	}

	// No recognized wrapper field; the object itself may be the mapping.
	// Known schema fields must not be read as role names here: a
	// selection-only payload like {"selected_roles": [...]} is an
	// intermediate shape, not a role called "selected_roles".
	var mapping models.RoleTaskList
	if err := json.Unmarshal([]byte(payload), &mapping); err != nil {
		return nil, false
	}
	var roles models.RoleTaskList
	for _, rt := range mapping {
		if isSchemaField(rt.Role) {
			continue
		}
		roles = append(roles, rt)
	}
	if roles = tidyMapping(roles); roles.Len() > 0 {
		return roles, true
	}
	return nil, false
}

// isSchemaField reports whether name is a known envelope field rather
// than a role name.
func isSchemaField(name string) bool {
	for _, field := range mappingFields {
		if name == field {
			return true
		}
	}
	return name == "selected_roles"
}

// extractJSONObject returns the substring from the first '{' to the last
// '}', after stripping markdown code fences.
func extractJSONObject(text string) (string, bool) {
	text = stripCodeFences(text)

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start == -1 || end == -1 || end < start {
		return "", false
	}
	return text[start : end+1], true
}

// stripCodeFences removes a surrounding ```json ... ``` or ``` ... ```
// block if present.
func stripCodeFences(text string) string {
	text = strings.TrimSpace(text)
	for _, fence := range []string{"```json", "```"} {
		if strings.HasPrefix(text, fence) {
			text = strings.TrimPrefix(text, fence)
			if idx := strings.LastIndex(text, "```"); idx != -1 {
				text = text[:idx]
			}
			return strings.TrimSpace(text)
		}
	}
	return text
}

// tidyMapping trims role names and task strings, dropping tasks that
// trim to nothing and roles left without tasks.
func tidyMapping(mapping models.RoleTaskList) models.RoleTaskList {
	var out models.RoleTaskList
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
			out = out.Append(role, tasks...)
		}
	}
	return out
}
