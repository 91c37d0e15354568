// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

// Package event defines the inbound event routed by the agent router and
// the helpers that build it from a CLI invocation and its environment.
package event

import (
	"fmt"
	"strings"
)

// Kind identifies what kind of repository activity an event describes.
type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pr"
	KindPush        Kind = "push"
	KindComment     Kind = "comment"
)

// Kinds lists the kinds accepted on the command line.
var Kinds = []Kind{KindIssue, KindPullRequest, KindPush, KindComment}

// ParseKind converts a CLI argument into a Kind.
// The returned bool is false for kinds the router does not know about; the
// Kind is still returned verbatim so the caller can decide what to do.
func ParseKind(s string) (Kind, bool) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, true
		}
	}
	return k, false
}

// Event is a single piece of repository activity.
// Only Kind and Action are always set; every other field is optional and
// left at its zero value when it does not apply to the kind.
type Event struct {
	Kind   Kind   `json:"kind"`
	Action string `json:"action"`

	// Number is the issue or pull request number. Zero means unset.
	Number int      `json:"number,omitempty"`
	Title  string   `json:"title,omitempty"`
	Body   string   `json:"body,omitempty"`
	Labels []string `json:"labels,omitempty"`
	Author string   `json:"author,omitempty"`

	Branch string `json:"branch,omitempty"`
	Commit string `json:"commit,omitempty"`
}

// HasNumber reports whether the event identifies a tracked issue or PR.
func (e Event) HasNumber() bool {
	return e.Number > 0
}

// HasLabel reports whether the event carries the given label.
// An event without labels never has a label.
func (e Event) HasLabel(name string) bool {
	for _, l := range e.Labels {
		if l == name {
			return true
		}
	}
	return false
}

// Summary returns a one-line description suitable for logs.
func (e Event) Summary() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s.%s", e.Kind, e.Action)

	if e.HasNumber() {
		fmt.Fprintf(&sb, " #%d", e.Number)
	}
	if e.Title != "" {
		fmt.Fprintf(&sb, " %q", e.Title)
	}
	if e.Branch != "" {
		fmt.Fprintf(&sb, " on %s", e.Branch)
	}
	if e.Commit != "" {
		fmt.Fprintf(&sb, " @%s", shortSHA(e.Commit))
	}
	if e.Author != "" {
		fmt.Fprintf(&sb, " by @%s", e.Author)
	}
	if len(e.Labels) > 0 {
		fmt.Fprintf(&sb, " [%s]", strings.Join(e.Labels, ", "))
	}
	return sb.String()
}

func shortSHA(sha string) string {
	if len(sha) > 7 {
		return sha[:7]
	}
	return sha
}
