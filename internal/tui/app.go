// Package tui implements the interactive mode: type a project
// description, watch the pipeline run, review the rendered breakdown.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"crewplan/internal/breakdown"
)

// Planner produces a breakdown for a project description. It is
// satisfied by breakdown.Orchestrator.
type Planner interface {
	ProduceBreakdown(ctx context.Context, description string) (*breakdown.Result, error)
}

// SaveFunc persists a finished result. A nil SaveFunc disables saving.
type SaveFunc func(*breakdown.Result) error

type phase int

const (
	phaseInput phase = iota
	phaseWorking
	phaseResult
)

// breakdownMsg carries the pipeline outcome back into the update loop.
type breakdownMsg struct {
	res *breakdown.Result
	err error
}

// savedMsg reports the outcome of a save request.
type savedMsg struct {
	err error
}

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")).
			Bold(true)

	promptBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	errStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("196"))

	noteStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214"))
)

// App is the bubbletea model for interactive mode.
type App struct {
	planner Planner
	save    SaveFunc
	timeout time.Duration

	input    textinput.Model
	spin     spinner.Model
	phase    phase
	res      *breakdown.Result
	err      error
	status   string
	width    int
	quitting bool
}

// NewApp creates the interactive model. The timeout bounds each
// pipeline run; zero means no bound.
func NewApp(planner Planner, save SaveFunc, timeout time.Duration) *App {
	ti := textinput.New()
	ti.Placeholder = "Describe your project and press Enter..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("39"))

	return &App{
		planner: planner,
		save:    save,
		timeout: timeout,
		input:   ti,
		spin:    sp,
		width:   80,
	}
}

// Run starts the interactive program and blocks until it exits.
func Run(planner Planner, save SaveFunc, timeout time.Duration) error {
	p := tea.NewProgram(NewApp(planner, save, timeout), tea.WithAltScreen())
	_, err := p.Run()
	return err
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return a.handleKey(msg)

	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.input.Width = msg.Width - 6
		return a, nil

	case spinner.TickMsg:
		if a.phase != phaseWorking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case breakdownMsg:
		a.phase = phaseResult
		a.res = msg.res
		a.err = msg.err
		a.status = ""
		return a, nil

	case savedMsg:
		if msg.err != nil {
			a.status = errStyle.Render(fmt.Sprintf("save failed: %v", msg.err))
		} else {
			a.status = noteStyle.Render("saved")
		}
		return a, nil
	}

	return a, nil
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		a.quitting = true
		return a, tea.Quit
	}

	switch a.phase {
	case phaseInput:
		if msg.String() == "enter" {
			desc := strings.TrimSpace(a.input.Value())
			if desc == "" {
				return a, nil
			}
			a.phase = phaseWorking
			a.input.Reset()
			return a, tea.Batch(a.spin.Tick, a.produce(desc))
		}
		var cmd tea.Cmd
		a.input, cmd = a.input.Update(msg)
		return a, cmd

	case phaseResult:
		switch msg.String() {
		case "q", "esc":
			a.quitting = true
			return a, tea.Quit
		case "n":
			a.phase = phaseInput
			a.res = nil
			a.err = nil
			a.status = ""
			return a, a.input.Focus()
		case "s":
			if a.save != nil && a.res != nil {
				res := a.res
				return a, func() tea.Msg {
					return savedMsg{err: a.save(res)}
				}
			}
		}
	}

	return a, nil
}

// produce runs the pipeline off the update loop, bounded by the
// configured timeout.
func (a *App) produce(description string) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if a.timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, a.timeout)
			defer cancel()
		}
		res, err := a.planner.ProduceBreakdown(ctx, description)
		return breakdownMsg{res: res, err: err}
	}
}

// View implements tea.Model.
func (a *App) View() string {
	if a.quitting {
		return "Goodbye!\n"
	}

	var sb strings.Builder
	sb.WriteString(headerStyle.Render("crewplan"))
	sb.WriteString("\n\n")

	switch a.phase {
	case phaseInput:
		sb.WriteString(promptBoxStyle.Width(a.width - 2).Render(a.input.View()))
		sb.WriteString("\n")
		sb.WriteString(helpStyle.Render("enter: generate  ctrl+c: quit"))

	case phaseWorking:
		sb.WriteString(a.spin.View())
		sb.WriteString(" breaking down the project...")

	case phaseResult:
		if a.err != nil {
			sb.WriteString(errStyle.Render(fmt.Sprintf("error: %v", a.err)))
		} else {
			if a.res.UsedFallback {
				sb.WriteString(noteStyle.Render("generation unavailable, showing baseline tasks"))
				sb.WriteString("\n\n")
			}
			sb.WriteString(breakdown.Render(a.res.Breakdown))
		}
		sb.WriteString("\n")
		if a.status != "" {
			sb.WriteString(a.status)
			sb.WriteString("\n")
		}
		help := "n: new  q: quit"
		if a.save != nil && a.err == nil {
			help = "s: save  " + help
		}
		sb.WriteString(helpStyle.Render(help))
	}

	sb.WriteString("\n")
	return sb.String()
}
