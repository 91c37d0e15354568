// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/similigh/agent-router/internal/core/config"
	"github.com/similigh/agent-router/internal/core/router"
	"github.com/similigh/agent-router/internal/integrations/github"
)

// loadConfig resolves the config file and its extends chain.
// Without a config file the built-in defaults are used.
func loadConfig() (*config.Config, error) {
	actualCfgPath := config.FindConfigPath(cfgFile)
	if cfgFile != "" && actualCfgPath == "" {
		return nil, fmt.Errorf("config file %s not found", cfgFile)
	}

	if actualCfgPath == "" {
		if verbose {
			fmt.Fprintln(os.Stderr, "No configuration file found. Using built-in rules.")
		}
		return config.Default(), nil
	}

	// Remote parents are fetched with the workflow token.
	fetcher := func(ref string) ([]byte, error) {
		org, repo, branch, path, err := config.ParseExtendsRef(ref)
		if err != nil {
			return nil, err
		}

		token := os.Getenv("GITHUB_TOKEN")
		if token == "" {
			return nil, fmt.Errorf("GITHUB_TOKEN required to fetch remote config %s", ref)
		}

		ghClient := github.NewClient(context.Background(), token)
		return ghClient.GetFileContent(context.Background(), org, repo, path, branch)
	}

	cfg, err := config.LoadWithInheritance(actualCfgPath, fetcher)
	if err != nil {
		return nil, fmt.Errorf("failed to load config from %s: %w", actualCfgPath, err)
	}
	if verbose {
		fmt.Fprintf(os.Stderr, "Loaded config from %s\n", actualCfgPath)
	}
	return cfg, nil
}

// loadRules builds the rule table for the effective configuration.
func loadRules() (*config.Config, []router.Rule, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	rules, err := router.Compile(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile rules: %w", err)
	}
	return cfg, rules, nil
}
