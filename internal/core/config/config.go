// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-02-14

// Package config handles loading and merging agent router configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DefaultPriority is applied to config rules that do not set one.
const DefaultPriority = "medium"

// Config is the root configuration structure.
type Config struct {
	// Extends allows inheriting from a remote config (e.g., "org/repo@branch").
	Extends string `yaml:"extends,omitempty"`

	// Annotator configures where routing decisions are recorded.
	Annotator AnnotatorConfig `yaml:"annotator"`

	// UseDefaultRules keeps the built-in rule table ahead of Rules.
	// Nil means true.
	UseDefaultRules *bool `yaml:"use_default_rules,omitempty"`

	// Rules are evaluated after the built-in table, in file order.
	Rules []RuleConfig `yaml:"rules,omitempty"`
}

// AnnotatorConfig holds the settings for posting routing comments.
type AnnotatorConfig struct {
	// Enabled is nil when unset, which means enabled.
	Enabled *bool  `yaml:"enabled,omitempty"`
	Owner   string `yaml:"owner,omitempty"`
	Repo    string `yaml:"repo,omitempty"`
	Token   string `yaml:"token,omitempty"`
	Header  string `yaml:"header,omitempty"`
}

// IsEnabled reports whether annotation is switched on.
func (a AnnotatorConfig) IsEnabled() bool {
	return a.Enabled == nil || *a.Enabled
}

// RuleConfig defines a routing rule in YAML.
// All condition types that are set must match (AND); within a list the
// semantics are noted per field.
type RuleConfig struct {
	Name        string `yaml:"name"`
	Handler     string `yaml:"handler"`
	Priority    string `yaml:"priority,omitempty"`
	Description string `yaml:"description,omitempty"`
	Enabled     *bool  `yaml:"enabled,omitempty"`

	// Kinds (OR): event kind must be one of these.
	Kinds []string `yaml:"kinds,omitempty"`
	// Actions (OR): event action must be one of these.
	Actions []string `yaml:"actions,omitempty"`
	// Labels (AND): all must be present, case-insensitive.
	Labels []string `yaml:"labels,omitempty"`
	// LabelsAny (OR): at least one must be present, case-insensitive.
	LabelsAny []string `yaml:"labels_any,omitempty"`
	// TitleContains (OR), case-insensitive.
	TitleContains []string `yaml:"title_contains,omitempty"`
	// BodyContains (OR), case-insensitive.
	BodyContains []string `yaml:"body_contains,omitempty"`
	// BodyPrefix must be a literal prefix of the body.
	BodyPrefix string `yaml:"body_prefix,omitempty"`
	// Authors (OR), case-insensitive.
	Authors []string `yaml:"authors,omitempty"`
	// Branches (OR): exact branch names.
	Branches []string `yaml:"branches,omitempty"`

	// When is a boolean expression over the event fields.
	When string `yaml:"when,omitempty"`
}

// IsEnabled reports whether the rule takes part in routing.
func (r RuleConfig) IsEnabled() bool {
	return r.Enabled == nil || *r.Enabled
}

// hasCondition reports whether the rule constrains the event at all.
func (r RuleConfig) hasCondition() bool {
	return len(r.Kinds) > 0 || len(r.Actions) > 0 ||
		len(r.Labels) > 0 || len(r.LabelsAny) > 0 ||
		len(r.TitleContains) > 0 || len(r.BodyContains) > 0 ||
		r.BodyPrefix != "" || len(r.Authors) > 0 ||
		len(r.Branches) > 0 || r.When != ""
}

// DefaultRulesEnabled reports whether the built-in rule table is in use.
func (c *Config) DefaultRulesEnabled() bool {
	return c.UseDefaultRules == nil || *c.UseDefaultRules
}

// Load reads a config file from the given path and expands environment variables.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	if err := cfg.finalize(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadWithInheritance loads a config and resolves the 'extends' chain.
// The fetcher function is used to retrieve remote configs.
func LoadWithInheritance(path string, fetcher func(ref string) ([]byte, error)) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg, err := parseRaw(data)
	if err != nil {
		return nil, err
	}

	if cfg.Extends == "" {
		if err := cfg.finalize(); err != nil {
			return nil, err
		}
		return cfg, nil
	}

	// Fetch and parse the parent config
	parentData, err := fetcher(cfg.Extends)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch parent config '%s': %w", cfg.Extends, err)
	}

	parentCfg, err := parseRaw(parentData)
	if err != nil {
		return nil, fmt.Errorf("failed to parse parent config: %w", err)
	}

	// Merge: child overrides parent
	merged := mergeConfigs(parentCfg, cfg)
	if err := merged.finalize(); err != nil {
		return nil, err
	}
	return merged, nil
}

// Default returns the configuration used when no file is found.
func Default() *Config {
	cfg := &Config{}
	cfg.applyDefaults()
	return cfg
}

// FindConfigPath searches for a config file in standard locations.
func FindConfigPath(explicit string) string {
	if explicit != "" {
		if _, err := os.Stat(explicit); err == nil {
			return explicit
		}
		return ""
	}

	// Search in common locations
	candidates := []string{
		".github/agent-router.yaml",
		".github/agent-router.yml",
		".agent-router.yaml",
		".agent-router.yml",
	}

	for _, c := range candidates {
		if _, err := os.Stat(c); err == nil {
			abs, _ := filepath.Abs(c)
			return abs
		}
	}

	return ""
}

// parseRaw expands environment variables and decodes YAML without defaults.
func parseRaw(data []byte) (*Config, error) {
	expanded := os.ExpandEnv(string(data))

	var cfg Config
	if err := yaml.Unmarshal([]byte(expanded), &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

func (c *Config) finalize() error {
	c.applyDefaults()
	normalized, err := normalizeRules(c.Rules)
	if err != nil {
		return err
	}
	c.Rules = normalized
	return nil
}

// applyDefaults sets default values for unset fields.
func (c *Config) applyDefaults() {
	if c.Annotator.Header == "" {
		c.Annotator.Header = "🤖 Agent Routing"
	}
	for i := range c.Rules {
		if strings.TrimSpace(c.Rules[i].Priority) == "" {
			c.Rules[i].Priority = DefaultPriority
		}
	}
}

// normalizeRules trims rule fields and rejects rules that cannot be routed.
func normalizeRules(rules []RuleConfig) ([]RuleConfig, error) {
	out := make([]RuleConfig, 0, len(rules))
	for i := range rules {
		rule := rules[i]
		rule.Name = strings.TrimSpace(rule.Name)
		rule.Handler = strings.TrimSpace(rule.Handler)
		rule.Priority = strings.ToLower(strings.TrimSpace(rule.Priority))
		rule.Description = strings.TrimSpace(rule.Description)
		rule.When = strings.TrimSpace(rule.When)
		rule.Kinds = trimAll(rule.Kinds)
		rule.Actions = trimAll(rule.Actions)
		rule.Labels = trimAll(rule.Labels)
		rule.LabelsAny = trimAll(rule.LabelsAny)
		rule.TitleContains = trimAll(rule.TitleContains)
		rule.BodyContains = trimAll(rule.BodyContains)
		rule.Authors = trimAll(rule.Authors)
		rule.Branches = trimAll(rule.Branches)

		if rule.Name == "" {
			rule.Name = fmt.Sprintf("rule-%d", i+1)
		}
		if rule.Handler == "" {
			return nil, fmt.Errorf("rule %d (%s) is missing handler", i, rule.Name)
		}
		if !rule.hasCondition() {
			return nil, fmt.Errorf("rule %d (%s) has no conditions", i, rule.Name)
		}
		if !validPriority(rule.Priority) {
			return nil, fmt.Errorf("rule %d (%s) has invalid priority %q", i, rule.Name, rule.Priority)
		}
		out = append(out, rule)
	}
	return out, nil
}

func validPriority(p string) bool {
	switch p {
	case "critical", "high", "medium", "low":
		return true
	}
	return false
}

func trimAll(values []string) []string {
	if len(values) == 0 {
		return values
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// mergeConfigs merges a child config onto a parent config.
// Non-zero values in child override parent.
func mergeConfigs(parent, child *Config) *Config {
	result := *parent

	// Annotator: override if any field is set
	if child.Annotator.Enabled != nil {
		result.Annotator.Enabled = child.Annotator.Enabled
	}
	if child.Annotator.Owner != "" {
		result.Annotator.Owner = child.Annotator.Owner
	}
	if child.Annotator.Repo != "" {
		result.Annotator.Repo = child.Annotator.Repo
	}
	if child.Annotator.Token != "" {
		result.Annotator.Token = child.Annotator.Token
	}
	if child.Annotator.Header != "" {
		result.Annotator.Header = child.Annotator.Header
	}

	if child.UseDefaultRules != nil {
		result.UseDefaultRules = child.UseDefaultRules
	}

	// Rules: child completely overrides if non-empty
	if len(child.Rules) > 0 {
		result.Rules = child.Rules
	}

	result.Extends = child.Extends
	return &result
}

// ParseExtendsRef parses "org/repo@branch" into components.
func ParseExtendsRef(ref string) (org, repo, branch, path string, err error) {
	// Format: org/repo@branch or org/repo@branch:path
	parts := strings.SplitN(ref, "@", 2)
	if len(parts) != 2 {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo@branch)", ref)
	}

	orgRepo := strings.SplitN(parts[0], "/", 2)
	if len(orgRepo) != 2 || orgRepo[0] == "" || orgRepo[1] == "" {
		return "", "", "", "", fmt.Errorf("invalid extends reference: %s (expected org/repo)", ref)
	}

	org = orgRepo[0]
	repo = orgRepo[1]

	// Check for path
	branchPath := strings.SplitN(parts[1], ":", 2)
	branch = branchPath[0]
	if len(branchPath) == 2 {
		path = branchPath[1]
	} else {
		path = ".github/agent-router.yaml" // default path
	}

	return org, repo, branch, path, nil
}
