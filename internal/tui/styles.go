// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-02
// Last Modified: 2026-02-14

package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/similigh/agent-router/internal/core/router"
)

// Brand color
var (
	primaryColor = lipgloss.Color("#ff7300")
	subtleColor  = lipgloss.Color("#626262")
	successColor = lipgloss.Color("#04B575")
	errorColor   = lipgloss.Color("#FF0000")
	warnColor    = lipgloss.Color("#E5C07B")

	titleStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true).
			MarginBottom(1)

	stepStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	activeStepStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	doneStepStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStepStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	subtleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)
)

// priorityStyle colors a priority badge by urgency.
func priorityStyle(p router.Priority) lipgloss.Style {
	switch p {
	case router.Critical:
		return lipgloss.NewStyle().Foreground(errorColor).Bold(true)
	case router.High:
		return lipgloss.NewStyle().Foreground(primaryColor).Bold(true)
	case router.Medium:
		return lipgloss.NewStyle().Foreground(warnColor)
	default:
		return subtleStyle
	}
}
