// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package tui

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/similigh/agent-router/internal/core/router"
)

// RenderRules renders the rule table in evaluation order.
func RenderRules(rules []router.Rule) string {
	if len(rules) == 0 {
		return subtleStyle.Render("No rules configured")
	}

	rows := make([][]string, 0, len(rules))
	for i, r := range rules {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			r.Name,
			r.Handler,
			r.Priority.String(),
			r.Description,
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(subtleStyle).
		Headers("#", "RULE", "HANDLER", "PRIORITY", "DESCRIPTION").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			base := lipgloss.NewStyle().Padding(0, 1)
			if row == table.HeaderRow {
				return base.Foreground(primaryColor).Bold(true)
			}
			if col == 3 {
				return priorityStyle(rules[row].Priority).Padding(0, 1)
			}
			return base
		})

	return t.String()
}
