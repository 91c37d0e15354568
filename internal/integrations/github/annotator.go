// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-14
// Last Modified: 2026-02-14

package github

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/similigh/agent-router/internal/core/config"
	"github.com/similigh/agent-router/internal/core/router"
)

const defaultAPIURL = "https://api.github.com"

// Settings identifies where routing notes are posted.
type Settings struct {
	Enabled bool
	Token   string
	Owner   string
	Repo    string
	Header  string
	APIURL  string
}

// Complete reports whether the settings are enough to post comments.
func (s Settings) Complete() bool {
	return s.Enabled && s.Token != "" && s.Owner != "" && s.Repo != ""
}

// settingsEnv holds raw env values for the annotator.
type settingsEnv struct {
	Token      string `env:"GITHUB_TOKEN"`
	Owner      string `env:"REPOSITORY_OWNER"`
	Repo       string `env:"REPOSITORY_NAME"`
	Repository string `env:"GITHUB_REPOSITORY"`
	APIURL     string `env:"GITHUB_API_URL"`
}

// ResolveSettings combines the annotator config with the environment.
// Config values win; env fills the gaps. A nil environ reads the process
// environment.
func ResolveSettings(cfg config.AnnotatorConfig, environ map[string]string) (Settings, error) {
	var raw settingsEnv
	opts := env.Options{}
	if environ != nil {
		opts.Environment = environ
	}
	if err := env.ParseWithOptions(&raw, opts); err != nil {
		return Settings{}, fmt.Errorf("failed to parse GitHub environment: %w", err)
	}

	s := Settings{
		Enabled: cfg.IsEnabled(),
		Token:   firstNonEmpty(cfg.Token, raw.Token),
		Owner:   firstNonEmpty(cfg.Owner, raw.Owner),
		Repo:    firstNonEmpty(cfg.Repo, raw.Repo),
		Header:  cfg.Header,
		APIURL:  firstNonEmpty(raw.APIURL, defaultAPIURL),
	}

	if (s.Owner == "" || s.Repo == "") && raw.Repository != "" {
		if owner, repo, ok := strings.Cut(raw.Repository, "/"); ok {
			s.Owner = firstNonEmpty(s.Owner, owner)
			s.Repo = firstNonEmpty(s.Repo, repo)
		}
	}

	return s, nil
}

// commenter is the subset of Client the annotator needs.
type commenter interface {
	CreateComment(ctx context.Context, org, repo string, number int, body string) error
}

// CommentAnnotator records routing decisions as issue comments.
type CommentAnnotator struct {
	client commenter
	owner  string
	repo   string
	header string
	now    func() time.Time
}

// NewAnnotator returns a CommentAnnotator for complete settings and a no-op
// annotator otherwise, so decisions are still computed and reported.
func NewAnnotator(ctx context.Context, s Settings) (router.Annotator, error) {
	if !s.Complete() {
		log.Printf("[annotator] GitHub token, owner or repository not set; routing notes will not be posted")
		return noopAnnotator{}, nil
	}

	client := NewClient(ctx, s.Token)
	if s.APIURL != "" && strings.TrimSuffix(s.APIURL, "/") != defaultAPIURL {
		var err error
		client, err = NewClientWithBaseURL(ctx, s.Token, s.APIURL)
		if err != nil {
			return nil, err
		}
	}

	return newCommentAnnotator(client, s), nil
}

func newCommentAnnotator(client commenter, s Settings) *CommentAnnotator {
	header := s.Header
	if header == "" {
		header = "🤖 Agent Routing"
	}
	return &CommentAnnotator{
		client: client,
		owner:  s.Owner,
		repo:   s.Repo,
		header: header,
		now:    time.Now,
	}
}

// Annotate posts one routing note.
func (a *CommentAnnotator) Annotate(ctx context.Context, note router.Note) error {
	body := FormatNote(a.header, note, a.now())
	if err := a.client.CreateComment(ctx, a.owner, a.repo, note.Number, body); err != nil {
		return err
	}
	log.Printf("[annotator] Posted routing note for %s on %s/%s#%d", note.Handler, a.owner, a.repo, note.Number)
	return nil
}

// FormatNote renders the markdown body of a routing note.
func FormatNote(header string, note router.Note, at time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "## %s\n\n", header)
	fmt.Fprintf(&sb, "**Agent**: %s\n", note.Handler)
	fmt.Fprintf(&sb, "**Priority**: %s\n", note.Priority)
	fmt.Fprintf(&sb, "**Action**: %s\n", note.Description)
	fmt.Fprintf(&sb, "**Timestamp**: %s\n", at.UTC().Format(time.RFC3339))
	sb.WriteString("\n---\n")
	if note.RunID != "" {
		fmt.Fprintf(&sb, "<sub>Automated by Agent Router · run `%s`</sub>\n", note.RunID)
	} else {
		sb.WriteString("<sub>Automated by Agent Router</sub>\n")
	}
	return sb.String()
}

type noopAnnotator struct{}

func (noopAnnotator) Annotate(context.Context, router.Note) error { return nil }

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
