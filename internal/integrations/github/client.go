// Author: Kaviru Hapuarachchi
// GitHub: https://github.com/Kavirubc
// Created: 2026-02-02
// Last Modified: 2026-02-14

package github

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/go-github/v60/github"
)

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// CreateComment posts a comment on an issue or pull request.
func (c *Client) CreateComment(ctx context.Context, org, repo string, number int, body string) error {
	if strings.TrimSpace(body) == "" {
		return fmt.Errorf("comment body cannot be empty")
	}
	if number <= 0 {
		return fmt.Errorf("invalid issue number %d", number)
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	_, _, err := c.client.Issues.CreateComment(ctx, org, repo, number, comment)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}
	return nil
}

// GetFileContent fetches a file from a repository at the given ref.
// An empty ref uses the default branch.
func (c *Client) GetFileContent(ctx context.Context, org, repo, path, ref string) ([]byte, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("file path cannot be empty")
	}

	var opts *github.RepositoryContentGetOptions
	if ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: ref}
	}

	file, _, _, err := c.client.Repositories.GetContents(ctx, org, repo, path, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s from %s/%s: %w", path, org, repo, err)
	}
	if file == nil {
		return nil, fmt.Errorf("%s in %s/%s is a directory", path, org, repo)
	}

	content, err := file.GetContent()
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return []byte(content), nil
}
