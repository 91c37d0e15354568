// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package tui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/agent-router/internal/core/event"
	"github.com/similigh/agent-router/internal/core/router"
)

// ChannelReporter forwards routing progress to a Model.
// Decisions arrive in order, so the reporter tracks the index of the
// decision currently being annotated.
type ChannelReporter struct {
	out      chan<- tea.Msg
	current  int
	numbered bool
}

// NewChannelReporter creates a reporter that sends messages to out.
func NewChannelReporter(out chan<- tea.Msg) *ChannelReporter {
	return &ChannelReporter{out: out, current: -1}
}

// Received announces the event.
func (r *ChannelReporter) Received(runID string, ev event.Event) {
	r.numbered = ev.HasNumber()
	r.out <- EventMsg{RunID: runID, Summary: ev.Summary()}
}

// Matched sends the sorted decisions.
func (r *ChannelReporter) Matched(decisions []router.Decision) {
	r.out <- MatchedMsg{Decisions: decisions}
}

// Decided marks the next decision as routed, or as posting when a note will
// follow.
func (r *ChannelReporter) Decided(d router.Decision) {
	r.current++
	status := StatusRouted
	if r.numbered {
		status = StatusPosting
	}
	r.out <- DecisionStatusMsg{
		Index:   r.current,
		Status:  status,
		Message: fmt.Sprintf("%s [%s]: %s", d.Handler, d.Priority, d.Description),
	}
}

// Annotated records the annotation outcome of the current decision.
func (r *ChannelReporter) Annotated(d router.Decision, err error) {
	if err != nil {
		r.out <- DecisionStatusMsg{Index: r.current, Status: StatusFailed, Message: err.Error()}
		return
	}
	r.out <- DecisionStatusMsg{Index: r.current, Status: StatusPosted, Message: "annotation done for " + d.Handler}
}
