// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-02-14

package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "agent-router.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}
	return path
}

func boolPtr(b bool) *bool {
	return &b
}

// TestConfigDefaults verifies that default values are applied correctly.
func TestConfigDefaults(t *testing.T) {
	cfg := Default()

	if cfg.Annotator.Header != "🤖 Agent Routing" {
		t.Errorf("Expected default header, got %q", cfg.Annotator.Header)
	}
	if !cfg.Annotator.IsEnabled() {
		t.Error("Expected annotator to be enabled by default")
	}
	if !cfg.DefaultRulesEnabled() {
		t.Error("Expected default rules to be enabled by default")
	}
}

func TestLoadConfigWithRules(t *testing.T) {
	t.Setenv("ROUTER_TEST_OWNER", "similigh")

	path := writeConfig(t, `
annotator:
  owner: ${ROUTER_TEST_OWNER}
  repo: agent-router
rules:
  - name: security
    handler: " SecurityAgent "
    priority: Critical
    labels: [security]
  - handler: DocsAgent
    title_contains: [docs, " readme "]
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Annotator.Owner != "similigh" {
		t.Errorf("Expected expanded owner, got %q", cfg.Annotator.Owner)
	}
	if len(cfg.Rules) != 2 {
		t.Fatalf("Expected 2 rules, got %d", len(cfg.Rules))
	}

	sec := cfg.Rules[0]
	if sec.Handler != "SecurityAgent" || sec.Priority != "critical" {
		t.Errorf("Expected normalized handler/priority, got %q/%q", sec.Handler, sec.Priority)
	}

	docs := cfg.Rules[1]
	if docs.Name != "rule-2" {
		t.Errorf("Expected generated name rule-2, got %q", docs.Name)
	}
	if docs.Priority != DefaultPriority {
		t.Errorf("Expected default priority, got %q", docs.Priority)
	}
	if docs.TitleContains[1] != "readme" {
		t.Errorf("Expected trimmed pattern, got %q", docs.TitleContains[1])
	}
}

func TestLoadConfigRejectsInvalidRules(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name: "missing handler",
			content: `
rules:
  - name: nohandler
    actions: [opened]
`,
			wantErr: "missing handler",
		},
		{
			name: "no conditions",
			content: `
rules:
  - name: catchall
    handler: Agent
`,
			wantErr: "no conditions",
		},
		{
			name: "bad priority",
			content: `
rules:
  - name: urgent
    handler: Agent
    priority: urgent
    actions: [opened]
`,
			wantErr: "invalid priority",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadWithInheritance(t *testing.T) {
	path := writeConfig(t, `
extends: similigh/.github@main
annotator:
  repo: child-repo
use_default_rules: false
`)

	var requested string
	fetcher := func(ref string) ([]byte, error) {
		requested = ref
		return []byte(`
annotator:
  owner: parent-owner
  repo: parent-repo
  header: Parent Header
rules:
  - name: parent-rule
    handler: ParentAgent
    actions: [opened]
`), nil
	}

	cfg, err := LoadWithInheritance(path, fetcher)
	if err != nil {
		t.Fatalf("LoadWithInheritance failed: %v", err)
	}

	if requested != "similigh/.github@main" {
		t.Errorf("Expected fetcher to receive extends ref, got %q", requested)
	}
	if cfg.Annotator.Owner != "parent-owner" || cfg.Annotator.Repo != "child-repo" {
		t.Errorf("Unexpected annotator merge: %+v", cfg.Annotator)
	}
	if cfg.Annotator.Header != "Parent Header" {
		t.Errorf("Expected parent header, got %q", cfg.Annotator.Header)
	}
	if cfg.DefaultRulesEnabled() {
		t.Error("Expected child to disable default rules")
	}
	if len(cfg.Rules) != 1 || cfg.Rules[0].Handler != "ParentAgent" {
		t.Errorf("Expected parent rules to be inherited, got %+v", cfg.Rules)
	}
}

func TestLoadWithInheritanceFetchError(t *testing.T) {
	path := writeConfig(t, "extends: org/repo@main\n")

	fetchErr := errors.New("boom")
	_, err := LoadWithInheritance(path, func(string) ([]byte, error) {
		return nil, fetchErr
	})
	if !errors.Is(err, fetchErr) {
		t.Errorf("Expected wrapped fetch error, got %v", err)
	}
}

func TestMergeConfigsRulesOverride(t *testing.T) {
	parent := &Config{
		Annotator: AnnotatorConfig{Enabled: boolPtr(true)},
		Rules:     []RuleConfig{{Name: "parent", Handler: "A", Actions: []string{"opened"}}},
	}
	child := &Config{
		Annotator: AnnotatorConfig{Enabled: boolPtr(false)},
		Rules:     []RuleConfig{{Name: "child", Handler: "B", Actions: []string{"closed"}}},
	}

	merged := mergeConfigs(parent, child)
	if merged.Annotator.IsEnabled() {
		t.Error("Expected child to disable annotator")
	}
	if len(merged.Rules) != 1 || merged.Rules[0].Name != "child" {
		t.Errorf("Expected child rules to replace parent, got %+v", merged.Rules)
	}
}

func TestParseExtendsRef(t *testing.T) {
	tests := []struct {
		ref        string
		wantOrg    string
		wantRepo   string
		wantBranch string
		wantPath   string
		wantErr    bool
	}{
		{"org/repo@main", "org", "repo", "main", ".github/agent-router.yaml", false},
		{"org/repo@v1:configs/router.yaml", "org", "repo", "v1", "configs/router.yaml", false},
		{"org/repo", "", "", "", "", true},
		{"orgrepo@main", "", "", "", "", true},
		{"/repo@main", "", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			org, repo, branch, path, err := ParseExtendsRef(tt.ref)
			if tt.wantErr {
				if err == nil {
					t.Errorf("Expected error for %q", tt.ref)
				}
				return
			}
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if org != tt.wantOrg || repo != tt.wantRepo || branch != tt.wantBranch || path != tt.wantPath {
				t.Errorf("Got (%s, %s, %s, %s)", org, repo, branch, path)
			}
		})
	}
}

func TestFindConfigPathExplicit(t *testing.T) {
	path := writeConfig(t, "rules: []\n")
	if got := FindConfigPath(path); got != path {
		t.Errorf("Expected %s, got %s", path, got)
	}
	if got := FindConfigPath(filepath.Join(t.TempDir(), "missing.yaml")); got != "" {
		t.Errorf("Expected empty path for missing file, got %s", got)
	}
}
