// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

// Package router matches events against an ordered rule table and resolves
// which handlers act on them, and in what order.
package router

import (
	"context"
	"fmt"
	"log"
	"sort"

	"github.com/google/uuid"

	"github.com/similigh/agent-router/internal/core/event"
)

// Annotator records a routing decision on the tracked issue or pull request.
type Annotator interface {
	Annotate(ctx context.Context, note Note) error
}

// Note is what an Annotator receives for one decision.
type Note struct {
	RunID       string
	Number      int
	Handler     string
	Priority    Priority
	Description string
}

// Reporter observes a routing pass.
type Reporter interface {
	// Received is called once with the inbound event.
	Received(runID string, ev event.Event)
	// Matched is called once with the sorted decisions; an empty slice means
	// no rules matched.
	Matched(decisions []Decision)
	// Decided is called for every decision in sorted order.
	Decided(d Decision)
	// Annotated is called after each annotation attempt; err is nil on success.
	Annotated(d Decision, err error)
}

// AnnotationError wraps an annotator failure for a single decision.
type AnnotationError struct {
	Number  int
	Handler string
	Err     error
}

func (e *AnnotationError) Error() string {
	return fmt.Sprintf("failed to annotate #%d for %s: %v", e.Number, e.Handler, e.Err)
}

func (e *AnnotationError) Unwrap() error {
	return e.Err
}

// Decision is the outcome of one rule matching one event.
type Decision struct {
	Rule        string   `json:"rule"`
	Handler     string   `json:"handler"`
	Priority    Priority `json:"priority"`
	Description string   `json:"description"`
}

// Result is the outcome of routing one event.
type Result struct {
	RunID     string
	Event     event.Event
	Decisions []Decision
	// Annotated counts decisions that were recorded successfully.
	Annotated int
	// Failures holds one *AnnotationError per failed annotation.
	Failures []error
}

// Matched reports whether at least one rule matched.
func (r *Result) Matched() bool {
	return len(r.Decisions) > 0
}

// Router evaluates a fixed rule table.
type Router struct {
	rules     []Rule
	annotator Annotator
	reporter  Reporter
	newRunID  func() string
}

// Option configures a Router.
type Option func(*Router)

// WithAnnotator sets the annotator used for events that carry a number.
func WithAnnotator(a Annotator) Option {
	return func(r *Router) {
		if a != nil {
			r.annotator = a
		}
	}
}

// WithReporter sets the reporter notified during Route.
func WithReporter(rep Reporter) Option {
	return func(r *Router) {
		if rep != nil {
			r.reporter = rep
		}
	}
}

// WithRunID overrides run id generation.
func WithRunID(fn func() string) Option {
	return func(r *Router) {
		if fn != nil {
			r.newRunID = fn
		}
	}
}

// New creates a Router over rules. The slice is copied; the table is fixed
// for the lifetime of the Router.
func New(rules []Rule, opts ...Option) *Router {
	table := make([]Rule, len(rules))
	copy(table, rules)

	r := &Router{
		rules:     table,
		annotator: nopAnnotator{},
		reporter:  nopReporter{},
		newRunID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rules returns a copy of the rule table in evaluation order.
func (r *Router) Rules() []Rule {
	out := make([]Rule, len(r.rules))
	copy(out, r.rules)
	return out
}

// Match evaluates every rule against ev and returns the matching decisions
// sorted by priority. Equal priorities keep rule declaration order.
func (r *Router) Match(ev event.Event) []Decision {
	decisions := make([]Decision, 0, 2)
	for _, rule := range r.rules {
		if rule.Match == nil || !rule.Match(ev) {
			continue
		}
		decisions = append(decisions, Decision{
			Rule:        rule.Name,
			Handler:     rule.Handler,
			Priority:    rule.Priority,
			Description: rule.Description,
		})
	}

	sort.SliceStable(decisions, func(i, j int) bool {
		return decisions[i].Priority.Rank() < decisions[j].Priority.Rank()
	})
	return decisions
}

// Route matches ev, reports every decision, and annotates the tracked item
// when ev carries a number. Annotation failures are logged and collected in
// the result; they never stop the remaining decisions.
func (r *Router) Route(ctx context.Context, ev event.Event) *Result {
	result := &Result{
		RunID: r.newRunID(),
		Event: ev,
	}

	r.reporter.Received(result.RunID, ev)
	log.Printf("[router] Routing %s (run %s)", ev.Summary(), result.RunID)

	result.Decisions = r.Match(ev)
	r.reporter.Matched(result.Decisions)

	if !result.Matched() {
		log.Printf("[router] No rules matched")
		return result
	}
	log.Printf("[router] %d rule(s) matched", len(result.Decisions))

	for _, d := range result.Decisions {
		r.reporter.Decided(d)
		log.Printf("[router] -> %s [%s]: %s", d.Handler, d.Priority, d.Description)

		if !ev.HasNumber() {
			continue
		}

		err := r.annotator.Annotate(ctx, Note{
			RunID:       result.RunID,
			Number:      ev.Number,
			Handler:     d.Handler,
			Priority:    d.Priority,
			Description: d.Description,
		})
		if err != nil {
			annErr := &AnnotationError{Number: ev.Number, Handler: d.Handler, Err: err}
			log.Printf("[router] Warning: %v", annErr)
			result.Failures = append(result.Failures, annErr)
			r.reporter.Annotated(d, annErr)
			continue
		}
		result.Annotated++
		r.reporter.Annotated(d, nil)
	}

	return result
}

type nopAnnotator struct{}

func (nopAnnotator) Annotate(context.Context, Note) error { return nil }

type nopReporter struct{}

func (nopReporter) Received(string, event.Event) {}
func (nopReporter) Matched([]Decision)           {}
func (nopReporter) Decided(Decision)             {}
func (nopReporter) Annotated(Decision, error)    {}
