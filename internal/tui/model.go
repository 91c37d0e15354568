// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-02-14

package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/similigh/agent-router/internal/core/router"
)

// Decision statuses shown next to each handler.
const (
	StatusRouted  = "routed"
	StatusPosting = "posting"
	StatusPosted  = "posted"
	StatusFailed  = "failed"
)

// activityTimeout bounds how long the view waits for the router.
const activityTimeout = 30 * time.Second

// EventMsg announces the event being routed.
type EventMsg struct {
	RunID   string
	Summary string
}

// MatchedMsg carries the sorted decisions.
type MatchedMsg struct {
	Decisions []router.Decision
}

// DecisionStatusMsg indicates a status update for one decision.
type DecisionStatusMsg struct {
	Index   int
	Status  string
	Message string
}

// ResultMsg indicates the final result.
type ResultMsg struct {
	Success bool
	Output  string
}

// Model for the TUI.
type Model struct {
	spinner   spinner.Model
	runID     string
	summary   string
	decisions []router.Decision
	status    map[int]string
	matched   bool
	logs      []string
	done      bool
	quitting  bool
	err       error
	activity  <-chan tea.Msg
}

// NewModel creates a new TUI model fed by activity.
func NewModel(activity <-chan tea.Msg) Model {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(primaryColor)

	return Model{
		spinner:  s,
		status:   make(map[int]string),
		activity: activity,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spinner.Tick,
		m.waitForActivity(),
	)
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "q" || msg.String() == "ctrl+c" {
			m.quitting = true
			return m, tea.Quit
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case EventMsg:
		m.runID = msg.RunID
		m.summary = msg.Summary
		return m, m.waitForActivity()

	case MatchedMsg:
		m.matched = true
		m.decisions = msg.Decisions
		return m, m.waitForActivity()

	case DecisionStatusMsg:
		m.status[msg.Index] = msg.Status
		if msg.Message != "" {
			m.logs = append(m.logs, fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), msg.Message))
		}
		return m, m.waitForActivity()

	case ResultMsg:
		if !msg.Success && msg.Output != "" {
			m.err = fmt.Errorf("%s", msg.Output)
		}
		m.done = true
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) waitForActivity() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg, ok := <-m.activity:
			if !ok {
				return ResultMsg{Success: true}
			}
			return msg
		case <-time.After(activityTimeout):
			// Timeout waiting for router activity
			return ResultMsg{
				Success: false,
				Output:  "router timed out waiting for activity",
			}
		}
	}
}

// View renders the TUI.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var s strings.Builder

	s.WriteString(titleStyle.Render("Agent Router"))
	s.WriteString("\n")

	if m.summary != "" {
		s.WriteString(m.summary + "\n")
		s.WriteString(subtleStyle.Render("run "+m.runID) + "\n\n")
	}

	switch {
	case !m.matched:
		s.WriteString(m.spinner.View() + " matching rules...\n")
	case len(m.decisions) == 0:
		s.WriteString(subtleStyle.Render("No rules matched") + "\n")
	}

	for i, d := range m.decisions {
		prefix := "  "
		style := stepStyle

		switch m.status[i] {
		case StatusPosting:
			prefix = m.spinner.View() + " "
			style = activeStepStyle
		case StatusPosted:
			prefix = "✓ "
			style = doneStepStyle
		case StatusFailed:
			prefix = "✗ "
			style = errorStepStyle
		case StatusRouted:
			prefix = "○ "
		}

		line := fmt.Sprintf("%s%s %s %s\n",
			prefix,
			style.Render(d.Handler),
			priorityStyle(d.Priority).Render("["+d.Priority.String()+"]"),
			d.Description,
		)
		s.WriteString(line)
	}

	if len(m.logs) > 0 {
		s.WriteString("\nLogs:\n")
		// Show last 5 logs
		start := 0
		if len(m.logs) > 5 {
			start = len(m.logs) - 5
		}
		for _, log := range m.logs[start:] {
			s.WriteString(subtleStyle.Render(log) + "\n")
		}
	}

	if m.err != nil {
		s.WriteString("\n" + errorStepStyle.Render(fmt.Sprintf("Error: %v", m.err)) + "\n")
	}

	if !m.done {
		s.WriteString(subtleStyle.Render("\nPress q to quit\n"))
	}

	return s.String()
}
