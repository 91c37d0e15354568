// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package tui

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/similigh/agent-router/internal/core/event"
	"github.com/similigh/agent-router/internal/core/router"
)

var testDecisions = []router.Decision{
	{Rule: "issue-agent-execute", Handler: "CoordinatorAgent", Priority: router.Critical, Description: "Execute autonomous task"},
	{Rule: "audit", Handler: "AuditAgent", Priority: router.Low, Description: "Record label change"},
}

func TestConsoleReporter(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)

	ev := event.Event{Kind: event.KindIssue, Action: "labeled", Number: 42}
	rep.Received("run-1", ev)
	rep.Matched(testDecisions)
	rep.Decided(testDecisions[0])
	rep.Annotated(testDecisions[0], nil)
	rep.Decided(testDecisions[1])
	rep.Annotated(testDecisions[1], errors.New("forbidden"))

	out := buf.String()
	for _, want := range []string{
		"issue.labeled #42",
		"run-1",
		"Matched 2 rule(s)",
		"CoordinatorAgent",
		"[critical]",
		"Execute autonomous task",
		"AuditAgent",
		"[low]",
		"forbidden",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q, got:\n%s", want, out)
		}
	}
}

func TestConsoleReporterNoMatch(t *testing.T) {
	var buf bytes.Buffer
	rep := NewConsoleReporter(&buf)
	rep.Matched(nil)

	if !strings.Contains(buf.String(), "No rules matched") {
		t.Errorf("Expected no-match notice, got %q", buf.String())
	}
}

func TestChannelReporterSequence(t *testing.T) {
	ch := make(chan tea.Msg, 16)
	rep := NewChannelReporter(ch)

	rep.Received("run-1", event.Event{Kind: event.KindIssue, Action: "labeled", Number: 42})
	rep.Matched(testDecisions)
	rep.Decided(testDecisions[0])
	rep.Annotated(testDecisions[0], nil)
	rep.Decided(testDecisions[1])
	rep.Annotated(testDecisions[1], errors.New("forbidden"))
	close(ch)

	var msgs []tea.Msg
	for msg := range ch {
		msgs = append(msgs, msg)
	}
	if len(msgs) != 6 {
		t.Fatalf("Expected 6 messages, got %d", len(msgs))
	}

	if ev, ok := msgs[0].(EventMsg); !ok || ev.RunID != "run-1" {
		t.Errorf("Expected EventMsg, got %#v", msgs[0])
	}

	wantStatus := []struct {
		index  int
		status string
	}{
		{0, StatusPosting},
		{0, StatusPosted},
		{1, StatusPosting},
		{1, StatusFailed},
	}
	for i, want := range wantStatus {
		got, ok := msgs[i+2].(DecisionStatusMsg)
		if !ok {
			t.Fatalf("Message %d: expected DecisionStatusMsg, got %#v", i+2, msgs[i+2])
		}
		if got.Index != want.index || got.Status != want.status {
			t.Errorf("Message %d: expected (%d, %s), got (%d, %s)", i+2, want.index, want.status, got.Index, got.Status)
		}
	}
}

func TestChannelReporterWithoutNumber(t *testing.T) {
	ch := make(chan tea.Msg, 4)
	rep := NewChannelReporter(ch)

	rep.Received("run-1", event.Event{Kind: event.KindPush, Action: "push", Branch: "main"})
	rep.Decided(router.Decision{Handler: "DeploymentAgent", Priority: router.Medium})

	<-ch
	msg := (<-ch).(DecisionStatusMsg)
	if msg.Status != StatusRouted {
		t.Errorf("Expected routed status, got %s", msg.Status)
	}
}

func TestModelUpdate(t *testing.T) {
	m := NewModel(make(chan tea.Msg))

	var model tea.Model = m
	model, _ = model.Update(EventMsg{RunID: "run-1", Summary: "issue.labeled #42"})
	model, _ = model.Update(MatchedMsg{Decisions: testDecisions})
	model, _ = model.Update(DecisionStatusMsg{Index: 0, Status: StatusPosted, Message: "annotation done for CoordinatorAgent"})
	model, _ = model.Update(DecisionStatusMsg{Index: 1, Status: StatusFailed, Message: "forbidden"})

	view := model.View()
	for _, want := range []string{"issue.labeled #42", "run-1", "✓", "CoordinatorAgent", "✗", "AuditAgent", "forbidden"} {
		if !strings.Contains(view, want) {
			t.Errorf("Expected view to contain %q, got:\n%s", want, view)
		}
	}

	model, cmd := model.Update(ResultMsg{Success: true})
	if cmd == nil {
		t.Error("Expected quit command after result")
	}
	if !strings.Contains(model.View(), "CoordinatorAgent") {
		t.Error("Expected final view to keep decisions visible")
	}
}

func TestModelNoMatchView(t *testing.T) {
	var model tea.Model = NewModel(make(chan tea.Msg))
	model, _ = model.Update(MatchedMsg{})

	if !strings.Contains(model.View(), "No rules matched") {
		t.Errorf("Expected no-match view, got:\n%s", model.View())
	}
}

func TestModelQuitKey(t *testing.T) {
	var model tea.Model = NewModel(make(chan tea.Msg))
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	if cmd == nil {
		t.Error("Expected quit command")
	}
	if model.View() != "" {
		t.Error("Expected empty view after quitting")
	}
}

func TestRenderRules(t *testing.T) {
	out := RenderRules(router.DefaultRules())

	for _, want := range []string{"RULE", "issue-agent-execute", "DeploymentAgent", "critical"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected rule table to contain %q, got:\n%s", want, out)
		}
	}

	if got := RenderRules(nil); !strings.Contains(got, "No rules configured") {
		t.Errorf("Expected empty table message, got %q", got)
	}
}
