package main

import "testing"

func TestSlugFilename(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want string
	}{
		{"simple", "a mobile fitness app", "a_mobile_fitness_app_task_breakdown.json"},
		{"punctuation stripped", "CRM: leads & deals!", "crm_leads_deals_task_breakdown.json"},
		{"whitespace trimmed", "  a web app  ", "a_web_app_task_breakdown.json"},
		{"long description truncated", "a very long project description that keeps going and going forever", "a_very_long_project_description_that_kee_task_breakdown.json"},
		{"empty falls back", "!!!", "project_task_breakdown.json"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := slugFilename(tt.desc); got != tt.want {
				t.Errorf("slugFilename(%q) = %q, want %q", tt.desc, got, tt.want)
			}
		})
	}
}
