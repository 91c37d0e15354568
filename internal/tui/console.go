// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package tui

import (
	"fmt"
	"io"

	"github.com/similigh/agent-router/internal/core/event"
	"github.com/similigh/agent-router/internal/core/router"
)

// ConsoleReporter prints a routing pass as plain styled lines.
// It is used in CI where no interactive terminal is available.
type ConsoleReporter struct {
	out io.Writer
}

// NewConsoleReporter creates a reporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Received prints the inbound event.
func (c *ConsoleReporter) Received(runID string, ev event.Event) {
	fmt.Fprintln(c.out, titleStyle.Render("[Agent Router] "+ev.Summary()))
	fmt.Fprintln(c.out, subtleStyle.Render("run "+runID))
}

// Matched prints the match count.
func (c *ConsoleReporter) Matched(decisions []router.Decision) {
	if len(decisions) == 0 {
		fmt.Fprintln(c.out, subtleStyle.Render("No rules matched"))
		return
	}
	fmt.Fprintf(c.out, "Matched %d rule(s)\n", len(decisions))
}

// Decided prints one routing decision.
func (c *ConsoleReporter) Decided(d router.Decision) {
	fmt.Fprintln(c.out, FormatDecision(d))
}

// Annotated prints the outcome of an annotation attempt.
func (c *ConsoleReporter) Annotated(d router.Decision, err error) {
	if err != nil {
		fmt.Fprintln(c.out, errorStepStyle.Render(fmt.Sprintf("  ✗ note for %s not posted: %v", d.Handler, err)))
		return
	}
	fmt.Fprintln(c.out, doneStepStyle.Render(fmt.Sprintf("  ✓ annotation done for %s", d.Handler)))
}

// FormatDecision renders a decision as "→ Handler [priority] description".
func FormatDecision(d router.Decision) string {
	return fmt.Sprintf("→ %s %s %s",
		activeStepStyle.Render(d.Handler),
		priorityStyle(d.Priority).Render("["+d.Priority.String()+"]"),
		d.Description,
	)
}
