// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-04
// Last Modified: 2026-02-14

package router

import (
	"strings"

	"github.com/similigh/agent-router/internal/core/config"
	"github.com/similigh/agent-router/internal/core/event"
)

// conditionMatcher evaluates the declarative conditions of a config rule.
type conditionMatcher struct {
	rule config.RuleConfig
}

// matches checks if an event satisfies every condition type set on the rule.
// All specified conditions must match (AND logic between condition types).
func (m conditionMatcher) matches(ev event.Event) bool {
	rule := m.rule

	// Kinds (OR)
	if len(rule.Kinds) > 0 && !matchExactAny(string(ev.Kind), rule.Kinds) {
		return false
	}

	// Actions (OR)
	if len(rule.Actions) > 0 && !matchExactAny(ev.Action, rule.Actions) {
		return false
	}

	// Labels (AND): ALL must match
	if len(rule.Labels) > 0 && !matchLabelsAll(ev.Labels, rule.Labels) {
		return false
	}

	// LabelsAny (OR): ANY must match
	if len(rule.LabelsAny) > 0 && !matchLabelsAny(ev.Labels, rule.LabelsAny) {
		return false
	}

	// TitleContains (OR): ANY must match
	if len(rule.TitleContains) > 0 && !matchContainsAny(ev.Title, rule.TitleContains) {
		return false
	}

	// BodyContains (OR): ANY must match
	if len(rule.BodyContains) > 0 && !matchContainsAny(ev.Body, rule.BodyContains) {
		return false
	}

	if rule.BodyPrefix != "" && !strings.HasPrefix(ev.Body, rule.BodyPrefix) {
		return false
	}

	// Authors (OR): ANY must match
	if len(rule.Authors) > 0 && !matchAuthor(ev.Author, rule.Authors) {
		return false
	}

	// Branches (OR)
	if len(rule.Branches) > 0 && !matchExactAny(ev.Branch, rule.Branches) {
		return false
	}

	return true
}

// matchExactAny returns true if value equals any candidate (case-sensitive).
// An empty value never matches.
func matchExactAny(value string, candidates []string) bool {
	if value == "" {
		return false
	}
	for _, c := range candidates {
		if c == value {
			return true
		}
	}
	return false
}

// matchLabelsAll returns true if all required labels are present (case-insensitive).
func matchLabelsAll(eventLabels, requiredLabels []string) bool {
	labelSet := lowerSet(eventLabels)
	for _, required := range requiredLabels {
		if !labelSet[strings.ToLower(required)] {
			return false
		}
	}
	return true
}

// matchLabelsAny returns true if any of the required labels are present (case-insensitive).
func matchLabelsAny(eventLabels, requiredLabels []string) bool {
	labelSet := lowerSet(eventLabels)
	for _, required := range requiredLabels {
		if labelSet[strings.ToLower(required)] {
			return true
		}
	}
	return false
}

func lowerSet(values []string) map[string]bool {
	set := make(map[string]bool, len(values))
	for _, v := range values {
		set[strings.ToLower(v)] = true
	}
	return set
}

// matchContainsAny returns true if the text contains any of the patterns (case-insensitive).
func matchContainsAny(text string, patterns []string) bool {
	lowerText := strings.ToLower(text)
	for _, pattern := range patterns {
		if strings.Contains(lowerText, strings.ToLower(pattern)) {
			return true
		}
	}
	return false
}

// matchAuthor returns true if the author matches any in the list (case-insensitive).
func matchAuthor(author string, authors []string) bool {
	if author == "" {
		return false
	}
	for _, a := range authors {
		if strings.EqualFold(a, author) {
			return true
		}
	}
	return false
}
