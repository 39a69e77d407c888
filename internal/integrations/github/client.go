// Package github wraps the GitHub REST API calls the bot needs: reading
// and patching pull requests, reading issue labels, and posting comments.
package github

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/google/go-github/v60/github"
)

// RemoteError wraps any failure talking to the GitHub API, including
// non-2xx responses and malformed reply bodies.
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("github: %s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

// Client wraps the GitHub API client.
type Client struct {
	client *github.Client
}

// WithBaseURL points the client at an alternate API endpoint, for tests or
// GitHub Enterprise. The URL must end with a trailing slash to be accepted
// by the underlying client, so one is appended when missing.
func (c *Client) WithBaseURL(baseURL string) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	parsed, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", baseURL, err)
	}
	c.client.BaseURL = parsed
	return c, nil
}

// GetPullRequest fetches pull request details.
func (c *Client) GetPullRequest(ctx context.Context, owner, repo string, number int) (*github.PullRequest, error) {
	pr, _, err := c.client.PullRequests.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, &RemoteError{Op: "get pull request", Err: err}
	}

	return pr, nil
}

// UpdatePullRequest patches a pull request's title, body and state.
// An empty state defaults to "open".
func (c *Client) UpdatePullRequest(ctx context.Context, owner, repo string, number int, title, body, state string) (*github.PullRequest, error) {
	if state == "" {
		state = "open"
	}

	patch := &github.PullRequest{
		Title: github.String(title),
		Body:  github.String(body),
		State: github.String(state),
	}
	pr, _, err := c.client.PullRequests.Edit(ctx, owner, repo, number, patch)
	if err != nil {
		return nil, &RemoteError{Op: "update pull request", Err: err}
	}

	return pr, nil
}

// CommentOnPullRequest posts a comment on a pull request. Pull requests
// are issues on GitHub, so this goes through the issue-comments endpoint.
func (c *Client) CommentOnPullRequest(ctx context.Context, owner, repo string, number int, body string) (*github.IssueComment, error) {
	if strings.TrimSpace(body) == "" {
		return nil, fmt.Errorf("comment body cannot be empty")
	}

	comment := &github.IssueComment{
		Body: github.String(body),
	}
	created, _, err := c.client.Issues.CreateComment(ctx, owner, repo, number, comment)
	if err != nil {
		return nil, &RemoteError{Op: "comment on pull request", Err: err}
	}
	return created, nil
}

// GetIssue fetches the issue behind a pull request, used to read its
// labels.
func (c *Client) GetIssue(ctx context.Context, owner, repo string, number int) (*github.Issue, error) {
	issue, _, err := c.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, &RemoteError{Op: "get issue", Err: err}
	}

	return issue, nil
}
