package github

import (
	"context"
	"net/http"
	"time"

	"github.com/google/go-github/v60/github"
	"golang.org/x/oauth2"
)

// requestTimeout bounds every outbound GitHub API call. The upstream
// service applied no timeout at all; this is a hardening measure, not a
// behavioral change.
const requestTimeout = 30 * time.Second

// NewClient creates a new GitHub client authenticating with the given
// username/token pair. With a username the pair is sent as basic auth;
// with a token alone it is used as an OAuth2 bearer token. If both are
// empty, it returns an unauthenticated client.
func NewClient(ctx context.Context, username, token string) *Client {
	var hc *http.Client

	switch {
	case username != "" && token != "":
		transport := &github.BasicAuthTransport{
			Username: username,
			Password: token,
		}
		hc = transport.Client()
	case token != "":
		ts := oauth2.StaticTokenSource(
			&oauth2.Token{AccessToken: token},
		)
		hc = oauth2.NewClient(ctx, ts)
	default:
		hc = &http.Client{}
	}

	hc.Timeout = requestTimeout

	return &Client{
		client: github.NewClient(hc),
	}
}
