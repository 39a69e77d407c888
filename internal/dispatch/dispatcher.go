// Package dispatch interprets inbound pull request webhook events and
// drives the matching GitHub side effects: prefixing a tracker story link
// on open, validating the description and commenting on edit.
package dispatch

import (
	"context"
	"embed"
	"fmt"
	"log"
	"strings"

	gh "github.com/google/go-github/v60/github"
	"github.com/valyala/fasttemplate"

	"github.com/pullcheck/pullcheck-bot/internal/core/config"
	"github.com/pullcheck/pullcheck-bot/internal/core/rules"
)

//go:embed static/*.txt
var commentFiles embed.FS

// trackerBaseURL is the story link prefix built from the branch ticket id.
const trackerBaseURL = "https://pivotaltracker.com/story/show"

// API is the subset of the GitHub client the dispatcher needs.
type API interface {
	GetPullRequest(ctx context.Context, owner, repo string, number int) (*gh.PullRequest, error)
	UpdatePullRequest(ctx context.Context, owner, repo string, number int, title, body, state string) (*gh.PullRequest, error)
	CommentOnPullRequest(ctx context.Context, owner, repo string, number int, body string) (*gh.IssueComment, error)
	GetIssue(ctx context.Context, owner, repo string, number int) (*gh.Issue, error)
}

// Dispatcher routes webhook events to the link-prefix or validation action.
type Dispatcher struct {
	api   API
	rules *rules.Set

	defaultOwner string
	defaultRepo  string
	ignoreLabel  string

	goodComment string
	issuesTpl   *fasttemplate.Template
}

// New creates a dispatcher. Routing defaults and the ignore label come from
// the supplied configuration; the comment texts are embedded assets.
func New(api API, set *rules.Set, cfg *config.Config) (*Dispatcher, error) {
	good, err := commentFiles.ReadFile("static/good_comment.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load good comment asset: %w", err)
	}

	issues, err := commentFiles.ReadFile("static/issues.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to load issues comment asset: %w", err)
	}

	tpl, err := fasttemplate.NewTemplate(string(issues), "{{", "}}")
	if err != nil {
		return nil, fmt.Errorf("failed to parse issues template: %w", err)
	}

	return &Dispatcher{
		api:          api,
		rules:        set,
		defaultOwner: cfg.GitHub.Owner,
		defaultRepo:  cfg.GitHub.Repo,
		ignoreLabel:  cfg.GitHub.IgnoreLabel,
		goodComment:  string(good),
		issuesTpl:    tpl,
	}, nil
}

// Dispatch inspects the event and performs at most one action. Ping
// deliveries and unrecognized actions are successful no-ops; a missing
// action is ErrNoAction.
func (d *Dispatcher) Dispatch(ctx context.Context, event *Event) error {
	if event.Zen != "" {
		// GitHub liveness ping
		log.Printf("[dispatch] ping pong (zen: %q)", event.Zen)
		return nil
	}

	owner, repo := d.ownerRepo(event)

	switch event.Action {
	case "":
		return ErrNoAction
	case "opened", "reopened":
		return d.prefixStoryLink(ctx, owner, repo, event.Number)
	case "edited":
		return d.validateDescription(ctx, owner, repo, event.Number)
	default:
		log.Printf("[dispatch] ignoring action %q for %s/%s#%d", event.Action, owner, repo, event.Number)
		return nil
	}
}

// ownerRepo resolves the repository from the payload, falling back to the
// configured defaults when the payload carries none.
func (d *Dispatcher) ownerRepo(event *Event) (string, string) {
	if event.Repo != nil && event.Repo.FullName != "" {
		parts := strings.SplitN(event.Repo.FullName, "/", 2)
		if len(parts) == 2 && parts[0] != "" && parts[1] != "" {
			return parts[0], parts[1]
		}
	}
	return d.defaultOwner, d.defaultRepo
}

// prefixStoryLink rewrites the pull request body so it starts with the
// tracker story link derived from the head branch name.
func (d *Dispatcher) prefixStoryLink(ctx context.Context, owner, repo string, number int) error {
	pr, err := d.api.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	// Branch names follow "<ticket id>-some-description".
	ticket := strings.SplitN(pr.GetHead().GetRef(), "-", 2)[0]
	link := fmt.Sprintf("%s/%s", trackerBaseURL, ticket)
	body := fmt.Sprintf("story: %s\r\n\n%s", link, pr.GetBody())

	log.Printf("[dispatch] prefixing story link %s on %s/%s#%d", link, owner, repo, number)

	_, err = d.api.UpdatePullRequest(ctx, owner, repo, number, pr.GetTitle(), body, "open")
	return err
}

// validateDescription qualifies the pull request body against the rule set
// and posts the verdict as a comment. A pull request labeled with the
// ignore label skips every rule.
func (d *Dispatcher) validateDescription(ctx context.Context, owner, repo string, number int) error {
	pr, err := d.api.GetPullRequest(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	issue, err := d.api.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return err
	}

	var exclude []string
	for _, label := range issue.Labels {
		if label.GetName() == d.ignoreLabel {
			exclude = d.rules.Names()
			break
		}
	}

	result, err := d.rules.Qualify(pr.GetBody(), exclude)
	if err != nil {
		return err
	}

	comment := d.goodComment
	if !result.OK {
		comment = d.issuesTpl.ExecuteString(map[string]interface{}{
			"issues": renderViolations(result.Violations),
		})
	}

	log.Printf("[dispatch] description of %s/%s#%d ok=%t violations=%d",
		owner, repo, number, result.OK, len(result.Violations))

	_, err = d.api.CommentOnPullRequest(ctx, owner, repo, number, comment)
	return err
}

// renderViolations formats violations as a markdown bullet list with a
// leading newline, one "- <text>" line per violation.
func renderViolations(violations []string) string {
	items := append([]string{""}, violations...)
	return strings.Join(items, "\n- ")
}
