package parser

import (
	"strings"
	"unicode"

	"crewplan/pkg/models"
)

// minTaskLength is the noise threshold: a candidate task whose cleaned
// text is this many characters or fewer is rejected. Filters out empty
// bullets, stray punctuation, and truncated fragments.
const minTaskLength = 10

// minTasksPerRole is the retention rule: a role needs at least this many
// surviving tasks to stay in the mapping. A role entry with one stray
// line under it is noise, not a responsibility list.
const minTasksPerRole = 2

// headerMarkers are the decorative symbols generators put in front of
// role headers.
var headerMarkers = []string{
	"🎨", "⚡", "🤖", "☁️", "💾", "🎯", "🔍", "📊", "🛡️", "📱", "🌐", "🔸",
}

// taskMarkers are the decorative symbols generators put in front of
// individual tasks.
var taskMarkers = []string{
	"▶️", "✨", "🔧", "⭐", "🚀", "💡", "🎯", "🔥",
}

// cleanTask strips enumerator prefixes (digits with . or ), dashes,
// bullets, asterisks), decorative symbol prefixes, and surrounding
// whitespace. The second return is false when the remainder is too short
// to be a real task.
func cleanTask(line string) (string, bool) {
	s := strings.TrimSpace(line)
	s = stripEnumerator(s)
	s = stripMarkers(s, taskMarkers)
	s = strings.TrimSpace(s)
	if len(s) <= minTaskLength {
		return "", false
	}
	return s, true
}

// cleanRoleName strips decorative symbol prefixes, emphasis markers,
// the trailing colon, and whitespace, collapsing header variants that
// differ only in decoration to the same canonical label. Decorations
// nest in either order ("**Name:**" wraps the colon in emphasis), so
// stripping loops until a fixed point.
func cleanRoleName(line string) string {
	s := strings.TrimSpace(line)
	for {
		prev := s
		s = stripMarkers(s, headerMarkers)
		s = strings.Trim(s, "*_")
		s = strings.TrimSuffix(s, ":")
		s = strings.TrimSpace(s)
		if s == prev {
			return s
		}
	}
}

// stripEnumerator removes a leading list enumerator: one or more digits
// followed by '.' or ')', or a single '-', '•', or '*'.
func stripEnumerator(s string) string {
	if s == "" {
		return s
	}

	if i := digitSpan(s); i > 0 {
		rest := s[i:]
		if strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")") {
			return strings.TrimSpace(rest[1:])
		}
		return s
	}

	// A dash or asterisk is a bullet only when followed by whitespace;
	// "**bold**" emphasis must not be mistaken for one.
	if isBulletPrefix(s) {
		return strings.TrimSpace(s[1:])
	}
	if strings.HasPrefix(s, "•") {
		return strings.TrimSpace(strings.TrimPrefix(s, "•"))
	}
	return s
}

// isBulletPrefix reports whether s starts with a '-' or '*' bullet
// (standing alone or followed by whitespace).
func isBulletPrefix(s string) bool {
	if s == "" || (s[0] != '-' && s[0] != '*') {
		return false
	}
	return len(s) == 1 || s[1] == ' ' || s[1] == '\t'
}

// stripMarkers removes any leading decorative symbols from the set,
// repeatedly, with surrounding whitespace.
func stripMarkers(s string, markers []string) string {
	for {
		trimmed := strings.TrimSpace(s)
		stripped := trimmed
		for _, m := range markers {
			stripped = strings.TrimPrefix(stripped, m)
		}
		if stripped == trimmed {
			return trimmed
		}
		s = stripped
	}
}

// hasEnumerator reports whether the line starts with a task enumerator
// or a decorative task symbol.
func hasEnumerator(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	if i := digitSpan(s); i > 0 {
		rest := s[i:]
		return strings.HasPrefix(rest, ".") || strings.HasPrefix(rest, ")")
	}
	if isBulletPrefix(s) {
		return true
	}
	if strings.HasPrefix(s, "•") {
		return true
	}
	// Some symbols appear in both marker sets. A colon-terminated line
	// led by one of those is a header, not a task item.
	for _, m := range taskMarkers {
		if strings.HasPrefix(s, m) {
			if isHeaderMarker(m) && headerShaped(s) {
				return false
			}
			return true
		}
	}
	return false
}

// isHeaderMarker reports whether the symbol also belongs to the header
// marker set.
func isHeaderMarker(m string) bool {
	for _, h := range headerMarkers {
		if h == m {
			return true
		}
	}
	return false
}

// headerShaped reports whether the line, with leading markers and
// emphasis stripped, is a single colon-terminated name.
func headerShaped(s string) bool {
	rest := stripMarkers(s, headerMarkers)
	rest = strings.Trim(rest, "*_")
	rest = strings.TrimSpace(rest)
	if !strings.HasSuffix(rest, ":") {
		return false
	}
	name := strings.TrimSpace(strings.TrimSuffix(rest, ":"))
	return name != "" && !strings.Contains(name, ":")
}

// digitSpan returns the number of leading ASCII digits in s.
func digitSpan(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

// isNoiseLine reports whether a body line is formatting noise rather
// than a task candidate: blank, markdown heading, or separator run.
func isNoiseLine(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	if strings.HasPrefix(s, "#") || strings.HasPrefix(s, "---") {
		return true
	}
	return strings.Trim(s, "=-─┈═ ") == ""
}

// isTitleCase reports whether every word in s starts with an uppercase
// letter. Words made of symbols or connectives like "&" are ignored.
func isTitleCase(s string) bool {
	words := strings.Fields(s)
	if len(words) == 0 {
		return false
	}
	for _, w := range words {
		r := firstLetter(w)
		if r == 0 {
			continue
		}
		if !unicode.IsUpper(r) {
			return false
		}
	}
	return true
}

func firstLetter(w string) rune {
	for _, r := range w {
		if unicode.IsLetter(r) {
			return r
		}
	}
	return 0
}

// prune applies the retention rule, dropping roles with fewer than
// minTasksPerRole surviving tasks while preserving order.
func prune(mapping models.RoleTaskList) models.RoleTaskList {
	var out models.RoleTaskList
	for _, rt := range mapping {
		if len(rt.Tasks) >= minTasksPerRole {
			out = append(out, rt)
		}
	}
	return out
}
