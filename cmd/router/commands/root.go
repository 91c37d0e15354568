// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

// Package commands implements the agent router CLI.
package commands

import (
	"errors"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	envFile string
	verbose bool
)

// UsageError reports a malformed invocation. No routing is attempted.
type UsageError struct {
	Msg string
}

func (e *UsageError) Error() string {
	return e.Msg
}

// UnhandledError wraps any other failure that aborts routing.
type UnhandledError struct {
	Err error
}

func (e *UnhandledError) Error() string {
	return fmt.Sprintf("routing failed: %v", e.Err)
}

func (e *UnhandledError) Unwrap() error {
	return e.Err
}

// rootCmd routes a single event.
var rootCmd = &cobra.Command{
	Use:   "router <event-kind> <action> [args...]",
	Short: "Route a repository event to the agents that should handle it",
	Long: `Route a single repository event through the agent routing rules.

Event kinds: issue, pr, push, comment.

  router issue <action> [number] [author]
  router pr <action> [number] [author]
  router comment <action> [number] [author]
  router push <action> <branch> [commit]

Titles, bodies, labels and authors are read from ISSUE_TITLE, PR_TITLE,
ISSUE_BODY, COMMENT_BODY, LABELS (JSON array of {"name": ...}) and AUTHOR.
Routing notes are posted to GitHub when GITHUB_TOKEN and the repository
(REPOSITORY_OWNER/REPOSITORY_NAME or GITHUB_REPOSITORY) are set.`,
	Args:          usageArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoute,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file (default: .github/agent-router.yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Env file loaded outside CI (ignored if missing)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
}

// Execute runs the root command and reports failures on stderr.
// The returned error is non-nil when the process should exit non-zero.
func Execute() error {
	err := rootCmd.Execute()
	if err == nil {
		return nil
	}

	var usageErr *UsageError
	if errors.As(err, &usageErr) {
		fmt.Fprintf(os.Stderr, "Error: %v\n\n%s", usageErr, rootCmd.UsageString())
		return err
	}

	log.Printf("[router] Error: %v", err)
	fmt.Fprintf(os.Stderr, "❌ %v\n", err)
	return err
}

// usageArgs requires an event kind and an action.
func usageArgs(cmd *cobra.Command, args []string) error {
	if len(args) < 2 {
		return &UsageError{Msg: fmt.Sprintf("expected <event-kind> <action> [args...], got %d argument(s)", len(args))}
	}
	return nil
}

// loadDotEnv loads the env file for local runs. CI provides its own
// environment, so the file is skipped there. Existing variables win.
func loadDotEnv() {
	if isCI() || envFile == "" {
		return
	}
	if _, err := os.Stat(envFile); err != nil {
		return
	}
	if err := godotenv.Load(envFile); err != nil {
		log.Printf("[router] Warning: Failed to load %s: %v", envFile, err)
		return
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded environment from %s\n", envFile)
	}
}

// isCI reports whether we are running in a non-interactive CI environment.
func isCI() bool {
	return os.Getenv("CI") == "true" || os.Getenv("GITHUB_ACTIONS") == "true"
}
