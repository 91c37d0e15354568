// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/similigh/agent-router/internal/core/event"
	"github.com/similigh/agent-router/internal/core/router"
	"github.com/similigh/agent-router/internal/integrations/github"
	"github.com/similigh/agent-router/internal/tui"
)

var (
	dryRun     bool
	plain      bool
	jsonOutput bool
)

func init() {
	rootCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Compute decisions without posting notes")
	rootCmd.Flags().BoolVar(&plain, "plain", false, "Print plain output instead of the interactive view")
	rootCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the routing result as JSON")
}

// resultJSON is the machine-readable routing result.
type resultJSON struct {
	RunID     string            `json:"run_id"`
	Event     event.Event       `json:"event"`
	Matched   bool              `json:"matched"`
	Decisions []router.Decision `json:"decisions"`
	Annotated int               `json:"annotated"`
	Failures  []string          `json:"failures,omitempty"`
}

// dryRunAnnotator logs notes instead of posting them.
type dryRunAnnotator struct{}

func (dryRunAnnotator) Annotate(_ context.Context, note router.Note) error {
	log.Printf("[router] DRY RUN: Would post routing note for %s on #%d", note.Handler, note.Number)
	return nil
}

func runRoute(cmd *cobra.Command, args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &UnhandledError{Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	loadDotEnv()
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, rules, err := loadRules()
	if err != nil {
		return &UnhandledError{Err: err}
	}

	kind, known := event.ParseKind(args[0])
	if !known {
		log.Printf("[router] Warning: unknown event kind %q; no built-in rule will match", args[0])
	}

	envVals, err := event.LoadEnv()
	if err != nil {
		return &UnhandledError{Err: err}
	}
	ev := event.FromInvocation(kind, args[1], args[2:], envVals)

	var annotator router.Annotator = dryRunAnnotator{}
	if !dryRun {
		settings, err := github.ResolveSettings(cfg.Annotator, nil)
		if err != nil {
			return &UnhandledError{Err: err}
		}
		annotator, err = github.NewAnnotator(ctx, settings)
		if err != nil {
			return &UnhandledError{Err: err}
		}
	}

	out := cmd.OutOrStdout()

	var result *router.Result
	if plain || jsonOutput || isCI() {
		// Run directly without TUI in CI environments
		w := out
		if jsonOutput {
			w = io.Discard
		}
		r := router.New(rules, router.WithAnnotator(annotator), router.WithReporter(tui.NewConsoleReporter(w)))
		result = r.Route(ctx, ev)
	} else {
		result, err = routeInteractive(ctx, rules, annotator, ev, runView)
		if err != nil {
			return &UnhandledError{Err: err}
		}
	}

	if jsonOutput {
		return writeResultJSON(out, result)
	}
	if verbose && len(result.Failures) > 0 {
		fmt.Fprintf(out, "%d of %d routing note(s) could not be posted\n", len(result.Failures), len(result.Decisions))
	}
	return nil
}

// viewRunner runs the interactive view until it exits.
type viewRunner func(activity <-chan tea.Msg) error

func runView(activity <-chan tea.Msg) error {
	_, err := tea.NewProgram(tui.NewModel(activity)).Run()
	return err
}

// routeInteractive renders routing progress with the TUI while the router
// runs in the background. The view may exit before routing finishes; the
// router is always awaited and its failures are logged once the view is gone.
func routeInteractive(ctx context.Context, rules []router.Rule, annotator router.Annotator, ev event.Event, run viewRunner) (*router.Result, error) {
	// One event, one match message, and up to two status messages per rule.
	activity := make(chan tea.Msg, 2+2*len(rules))
	reporter := tui.NewChannelReporter(activity)
	r := router.New(rules, router.WithAnnotator(annotator), router.WithReporter(reporter))

	prevLog := log.Writer()
	if !verbose {
		// Log lines would corrupt the interactive view.
		log.SetOutput(io.Discard)
	}

	done := make(chan *router.Result, 1)
	go func() {
		defer close(activity)
		done <- r.Route(ctx, ev)
	}()

	runErr := run(activity)
	result := <-done
	log.SetOutput(prevLog)

	if !verbose {
		for _, f := range result.Failures {
			log.Printf("[router] Warning: %v", f)
		}
	}

	if runErr != nil {
		return result, fmt.Errorf("error running TUI: %w", runErr)
	}
	return result, nil
}

func writeResultJSON(out io.Writer, result *router.Result) error {
	payload := resultJSON{
		RunID:     result.RunID,
		Event:     result.Event,
		Matched:   result.Matched(),
		Decisions: result.Decisions,
		Annotated: result.Annotated,
	}
	for _, f := range result.Failures {
		payload.Failures = append(payload.Failures, f.Error())
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	if err := enc.Encode(payload); err != nil {
		return &UnhandledError{Err: fmt.Errorf("failed to write result: %w", err)}
	}
	return nil
}
