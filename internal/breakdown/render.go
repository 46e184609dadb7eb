package breakdown

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"crewplan/pkg/models"
)

var (
	titleStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2).
			Bold(true)

	roleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	taskStyle = lipgloss.NewStyle().
			PaddingLeft(2)

	summaryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))
)

// Render produces the human display of a breakdown: a titled header,
// one section per role with numbered tasks, and the summary counts.
// Role order is preserved.
func Render(b *models.Breakdown) string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("PROJECT BREAKDOWN\n" + b.ProjectName))
	sb.WriteString("\n\n")

	for _, rt := range b.Roles {
		sb.WriteString(roleStyle.Render(rt.Role))
		sb.WriteString("\n")
		for i, task := range rt.Tasks {
			sb.WriteString(taskStyle.Render(fmt.Sprintf("%d. %s", i+1, task)))
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	sb.WriteString(summaryStyle.Render(fmt.Sprintf(
		"Roles: %d  Tasks: %d", b.Summary.TotalRoles, b.Summary.TotalTasks)))
	sb.WriteString("\n")

	return sb.String()
}
