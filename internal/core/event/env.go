// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package event

import (
	"fmt"
	"log"
	"strconv"
	"strings"

	"github.com/caarlos0/env/v11"
)

// Env holds the event fields a workflow passes through environment variables.
type Env struct {
	IssueTitle  string `env:"ISSUE_TITLE"`
	PRTitle     string `env:"PR_TITLE"`
	IssueBody   string `env:"ISSUE_BODY"`
	CommentBody string `env:"COMMENT_BODY"`
	Author      string `env:"AUTHOR"`
	Labels      string `env:"LABELS"`
}

// LoadEnv reads Env from the process environment.
func LoadEnv() (Env, error) {
	var e Env
	if err := env.Parse(&e); err != nil {
		return e, fmt.Errorf("failed to parse event environment: %w", err)
	}
	return e, nil
}

// LoadEnvFrom reads Env from an explicit variable map instead of the process
// environment.
func LoadEnvFrom(vars map[string]string) (Env, error) {
	var e Env
	if err := env.ParseWithOptions(&e, env.Options{Environment: vars}); err != nil {
		return e, fmt.Errorf("failed to parse event environment: %w", err)
	}
	return e, nil
}

// FromInvocation builds an Event from the positional CLI arguments that follow
// <event-kind> <action>, plus the workflow environment.
//
// For issue, pr and comment events args are [number] [author].
// For push events args are [branch] [commit].
func FromInvocation(kind Kind, action string, args []string, e Env) Event {
	ev := Event{Kind: kind, Action: action}

	if kind == KindPush {
		ev.Branch = argAt(args, 0)
		ev.Commit = argAt(args, 1)
		return ev
	}

	if raw := argAt(args, 0); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			log.Printf("[event] Warning: ignoring non-numeric identifier %q", raw)
		} else {
			ev.Number = n
		}
	}

	ev.Title = e.title(kind)
	ev.Body = e.body(kind)

	ev.Author = strings.TrimSpace(e.Author)
	if ev.Author == "" {
		ev.Author = argAt(args, 1)
	}

	labels, err := ParseLabels(e.Labels)
	if err != nil {
		log.Printf("[event] Warning: %v; continuing without labels", err)
		labels = nil
	}
	ev.Labels = labels

	return ev
}

// title prefers the variable matching the kind and falls back to the other.
func (e Env) title(kind Kind) string {
	if kind == KindPullRequest {
		return firstNonEmpty(e.PRTitle, e.IssueTitle)
	}
	return firstNonEmpty(e.IssueTitle, e.PRTitle)
}

// body uses only COMMENT_BODY for comments so that commands are never read
// from the issue text.
func (e Env) body(kind Kind) string {
	if kind == KindComment {
		return e.CommentBody
	}
	return firstNonEmpty(e.IssueBody, e.CommentBody)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func argAt(args []string, i int) string {
	if i < len(args) {
		return strings.TrimSpace(args[i])
	}
	return ""
}
