// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package router

import (
	"fmt"
	"log"
	"strings"

	"github.com/Knetic/govaluate"

	"github.com/similigh/agent-router/internal/core/event"
)

// expressionFunctions are available inside `when` expressions.
var expressionFunctions = map[string]govaluate.ExpressionFunction{
	"contains": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("contains expects 2 arguments, got %d", len(args))
		}
		needle := fmt.Sprint(args[1])
		switch haystack := args[0].(type) {
		case []interface{}:
			for _, item := range haystack {
				if fmt.Sprint(item) == needle {
					return true, nil
				}
			}
			return false, nil
		case string:
			return strings.Contains(haystack, needle), nil
		default:
			return false, nil
		}
	},
	"startsWith": func(args ...interface{}) (interface{}, error) {
		if len(args) != 2 {
			return nil, fmt.Errorf("startsWith expects 2 arguments, got %d", len(args))
		}
		s, ok := args[0].(string)
		if !ok {
			return false, nil
		}
		return strings.HasPrefix(s, fmt.Sprint(args[1])), nil
	},
	"lower": func(args ...interface{}) (interface{}, error) {
		if len(args) != 1 {
			return nil, fmt.Errorf("lower expects 1 argument, got %d", len(args))
		}
		return strings.ToLower(fmt.Sprint(args[0])), nil
	},
}

// expressionMatcher evaluates a compiled `when` expression.
type expressionMatcher struct {
	name string
	expr *govaluate.EvaluableExpression
}

func compileExpression(name, when string) (*expressionMatcher, error) {
	expr, err := govaluate.NewEvaluableExpressionWithFunctions(when, expressionFunctions)
	if err != nil {
		return nil, fmt.Errorf("rule %s: invalid when expression: %w", name, err)
	}
	return &expressionMatcher{name: name, expr: expr}, nil
}

// matches returns false for evaluation errors and non-boolean results.
func (m *expressionMatcher) matches(ev event.Event) bool {
	result, err := m.expr.Evaluate(expressionParameters(ev))
	if err != nil {
		log.Printf("[router] Warning: rule %s expression failed: %v", m.name, err)
		return false
	}
	ok, isBool := result.(bool)
	if !isBool {
		log.Printf("[router] Warning: rule %s expression returned %T, expected bool", m.name, result)
		return false
	}
	return ok
}

// expressionParameters exposes every event field so that expressions never
// hit a missing parameter; absent fields are zero values.
func expressionParameters(ev event.Event) map[string]interface{} {
	labels := make([]interface{}, 0, len(ev.Labels))
	for _, l := range ev.Labels {
		labels = append(labels, l)
	}

	return map[string]interface{}{
		"kind":   string(ev.Kind),
		"action": ev.Action,
		"number": float64(ev.Number),
		"title":  ev.Title,
		"body":   ev.Body,
		"labels": labels,
		"author": ev.Author,
		"branch": ev.Branch,
		"commit": ev.Commit,
	}
}
