package parser

import "testing"

func TestCleanTask(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
		ok   bool
	}{
		{"numbered", "1. Build login page with OAuth", "Build login page with OAuth", true},
		{"numbered paren", "2) Add responsive navigation bar", "Add responsive navigation bar", true},
		{"dash", "- Design the database schema", "Design the database schema", true},
		{"bullet", "• Implement caching layer with Redis", "Implement caching layer with Redis", true},
		{"asterisk", "* Write integration tests for the API", "Write integration tests for the API", true},
		{"decorated", "▶️ Set up CI/CD pipeline with GitHub Actions", "Set up CI/CD pipeline with GitHub Actions", true},
		{"enumerator then decoration", "1. 🔧 Containerize services with Docker", "Containerize services with Docker", true},
		{"too short", "3. Fix bug", "", false},
		{"empty bullet", "-", "", false},
		{"whitespace only", "   ", "", false},
		{"bare fragment at threshold", "1. exactly10c", "", false},
		{"plain long line", "Deploy the staging environment", "Deploy the staging environment", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := cleanTask(tt.in)
			if ok != tt.ok {
				t.Fatalf("cleanTask(%q) ok = %v, want %v", tt.in, ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("cleanTask(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanRoleName(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain with colon", "Frontend Developer:", "Frontend Developer"},
		{"emoji decorated", "🎨 Frontend Developer:", "Frontend Developer"},
		{"bold", "**Backend Developer:**", "Backend Developer"},
		{"bold inside colon", "**Backend Developer**:", "Backend Developer"},
		{"underscore emphasis", "__QA Engineer__:", "QA Engineer"},
		{"decoration variants collapse", "🤖 **AI/ML Engineer:**", "AI/ML Engineer"},
		{"no colon", "Data Engineer", "Data Engineer"},
		{"whitespace", "  Cloud & DevOps Engineer:  ", "Cloud & DevOps Engineer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := cleanRoleName(tt.in); got != tt.want {
				t.Errorf("cleanRoleName(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestCleanRoleName_VariantsCollapse(t *testing.T) {
	variants := []string{
		"Frontend Developer:",
		"🎨 Frontend Developer:",
		"**Frontend Developer:**",
		"🎨 **Frontend Developer**:",
	}
	for _, v := range variants {
		if got := cleanRoleName(v); got != "Frontend Developer" {
			t.Errorf("cleanRoleName(%q) = %q, want Frontend Developer", v, got)
		}
	}
}

func TestHasEnumerator(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"1. task", true},
		{"12) task", true},
		{"- task", true},
		{"* task", true},
		{"• task", true},
		{"▶️ task", true},
		{"Frontend Developer:", false},
		{"plain text", false},
		{"", false},
		{"2023 was a year", false},
		// 🎯 is both a header and a task symbol; the colon-terminated
		// shape decides.
		{"🎯 UI/UX Designer:", false},
		{"🎯 Ship the launch checklist", true},
	}

	for _, tt := range tests {
		if got := hasEnumerator(tt.in); got != tt.want {
			t.Errorf("hasEnumerator(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestIsNoiseLine(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"", true},
		{"   ", true},
		{"# heading", true},
		{"---", true},
		{"──────────", true},
		{"==========", true},
		{"1. real task line here", false},
		{"Backend Developer:", false},
	}

	for _, tt := range tests {
		if got := isNoiseLine(tt.in); got != tt.want {
			t.Errorf("isNoiseLine(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
