// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package router

import (
	"strings"

	"github.com/similigh/agent-router/internal/core/event"
)

// Predicate decides whether a rule applies to an event.
// Predicates must be pure and must treat absent optional fields as
// "condition not met".
type Predicate func(ev event.Event) bool

// Rule maps matching events to a handler.
type Rule struct {
	Name        string
	Match       Predicate
	Handler     string
	Priority    Priority
	Description string
}

// AgentExecuteLabel marks an issue for autonomous execution.
const AgentExecuteLabel = "agent-execute"

// CommandPrefix starts a comment addressed to the coordinator.
const CommandPrefix = "/agent"

// DefaultRules returns the built-in rule table in declaration order.
func DefaultRules() []Rule {
	return []Rule{
		{
			Name: "issue-agent-execute",
			Match: func(ev event.Event) bool {
				return ev.Kind == event.KindIssue && ev.Action == "labeled" && ev.HasLabel(AgentExecuteLabel)
			},
			Handler:     "CoordinatorAgent",
			Priority:    Critical,
			Description: "Execute autonomous task",
		},
		{
			Name: "comment-agent-command",
			Match: func(ev event.Event) bool {
				return ev.Kind == event.KindComment && strings.HasPrefix(ev.Body, CommandPrefix)
			},
			Handler:     "CoordinatorAgent",
			Priority:    Critical,
			Description: "Parse and execute command",
		},
		{
			Name:        "issue-opened",
			Match:       kindAction(event.KindIssue, "opened"),
			Handler:     "IssueAgent",
			Priority:    High,
			Description: "Analyze and auto-label issue",
		},
		{
			Name:        "issue-assigned",
			Match:       kindAction(event.KindIssue, "assigned"),
			Handler:     "IssueAgent",
			Priority:    High,
			Description: "Transition to implementing state",
		},
		{
			Name:        "issue-closed",
			Match:       kindAction(event.KindIssue, "closed"),
			Handler:     "IssueAgent",
			Priority:    Medium,
			Description: "Transition to done state",
		},
		{
			Name:        "pr-opened",
			Match:       kindAction(event.KindPullRequest, "opened"),
			Handler:     "ReviewAgent",
			Priority:    High,
			Description: "Run quality checks",
		},
		{
			Name:        "pr-ready-for-review",
			Match:       kindAction(event.KindPullRequest, "ready_for_review"),
			Handler:     "ReviewAgent",
			Priority:    High,
			Description: "Run quality checks and request review",
		},
		{
			Name: "push-main",
			Match: func(ev event.Event) bool {
				return ev.Kind == event.KindPush && ev.Branch == "main"
			},
			Handler:     "DeploymentAgent",
			Priority:    Medium,
			Description: "Deploy to production",
		},
	}
}

// kindAction matches events of one kind with one action.
func kindAction(kind event.Kind, action string) Predicate {
	return func(ev event.Event) bool {
		return ev.Kind == kind && ev.Action == action
	}
}
