// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package router

import (
	"fmt"

	"github.com/similigh/agent-router/internal/core/config"
	"github.com/similigh/agent-router/internal/core/event"
)

// Compile builds the rule table for a configuration: the built-in rules
// (unless disabled) followed by the enabled config rules in file order.
func Compile(cfg *config.Config) ([]Rule, error) {
	var rules []Rule
	if cfg == nil || cfg.DefaultRulesEnabled() {
		rules = append(rules, DefaultRules()...)
	}
	if cfg == nil {
		return rules, nil
	}

	for _, rc := range cfg.Rules {
		if !rc.IsEnabled() {
			continue
		}
		rule, err := CompileRule(rc)
		if err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, nil
}

// CompileRule turns a config rule into a Rule whose predicate combines the
// declarative conditions and the optional `when` expression.
func CompileRule(rc config.RuleConfig) (Rule, error) {
	if rc.Priority == "" {
		rc.Priority = config.DefaultPriority
	}
	priority, err := ParsePriority(rc.Priority)
	if err != nil {
		return Rule{}, fmt.Errorf("rule %s: %w", rc.Name, err)
	}

	conditions := conditionMatcher{rule: rc}

	var expr *expressionMatcher
	if rc.When != "" {
		expr, err = compileExpression(rc.Name, rc.When)
		if err != nil {
			return Rule{}, err
		}
	}

	description := rc.Description
	if description == "" {
		description = "Handle " + rc.Name
	}

	return Rule{
		Name: rc.Name,
		Match: func(ev event.Event) bool {
			if !conditions.matches(ev) {
				return false
			}
			return expr == nil || expr.matches(ev)
		},
		Handler:     rc.Handler,
		Priority:    priority,
		Description: description,
	}, nil
}
