// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/similigh/agent-router/internal/tui"
)

// rulesCmd prints the effective rule table.
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Show the effective routing rules",
	Long: `Show the rule table the router evaluates, in declaration order.
Built-in rules come first unless use_default_rules is false in the config,
followed by the enabled rules from the config file.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		loadDotEnv()

		_, rules, err := loadRules()
		if err != nil {
			return &UnhandledError{Err: err}
		}

		fmt.Fprintln(cmd.OutOrStdout(), tui.RenderRules(rules))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(rulesCmd)
}
