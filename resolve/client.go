// Package resolve turns a catalog title into stream links by driving a
// provider session through search, matching, detail and extraction.
package resolve

import (
	"context"
	"errors"
	"fmt"

	"github.com/cinelink/cinelink/extract"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/match"
	"github.com/cinelink/cinelink/session"
	"github.com/cinelink/cinelink/source"
)

// Client resolves titles against a single provider.
type Client struct {
	provider source.Provider
}

// NewClient returns a client for p. It holds no session state; every
// Resolve builds its own session.Manager.
func NewClient(p source.Provider) *Client {
	return &Client{provider: p}
}

// Resolve returns the stream links for title. The slice is never nil and
// is empty whenever nothing playable was found. The error only classifies
// what happened: source.ErrConfiguration, source.ErrAuthentication,
// source.ErrUpstreamUnavailable, source.ErrNoMatch or, alongside links,
// source.ErrExtractionDegraded.
func (c *Client) Resolve(
	ctx context.Context,
	creds source.Credentials,
	kind source.Kind,
	title string,
	externalID string,
) ([]source.StreamLink, error) {
	none := []source.StreamLink{}

	if !creds.Complete() {
		return none, fmt.Errorf("%w: username and password are required", source.ErrConfiguration)
	}

	mgr := session.New(c.provider)
	if !mgr.Login(ctx, creds) {
		return none, fmt.Errorf("%w: login to %s rejected", source.ErrAuthentication, c.provider.Name())
	}

	candidates, err := withReauth(ctx, mgr, func(s *source.Session) ([]*source.Candidate, error) {
		return c.provider.Search(ctx, s, title)
	})
	if err != nil {
		return none, classify(err)
	}

	best, ok := match.Best(candidates, title, kind).Get()
	if !ok {
		if closest, found := match.Closest(candidates, title).Get(); found {
			log.Debugf("no candidate for %q, closest was %q", title, closest.Name)
		}
		return none, fmt.Errorf("%w: %q among %d candidates", source.ErrNoMatch, title, len(candidates))
	}

	log.Debugf("matched %q to %q (id %s, score %d)", title, best.Candidate.Name, best.Candidate.ID, best.Score)

	detail, err := withReauth(ctx, mgr, func(s *source.Session) (*source.Detail, error) {
		return c.provider.Detail(ctx, s, best.Candidate.ID)
	})
	if err != nil {
		return none, classify(err)
	}

	res := extract.Build(kind, externalID, detail)
	if res.Degraded() {
		return res.Links, fmt.Errorf("%w: %d skipped", source.ErrExtractionDegraded, res.Skipped)
	}

	return res.Links, nil
}

// withReauth runs call with the current session. When the provider rejects
// the token it re-logs in once and retries once.
func withReauth[T any](ctx context.Context, mgr *session.Manager, call func(*source.Session) (T, error)) (T, error) {
	v, err := call(mgr.Session())
	if err == nil || !errors.Is(err, source.ErrUnauthorized) {
		return v, err
	}

	if !mgr.Reauthenticate(ctx) {
		return v, fmt.Errorf("%w: re-login failed: %w", source.ErrAuthentication, err)
	}

	v, err = call(mgr.Session())
	if errors.Is(err, source.ErrUnauthorized) {
		return v, fmt.Errorf("%w: rejected after re-login: %w", source.ErrAuthentication, err)
	}
	return v, err
}

// classify keeps authentication failures and folds everything else into
// source.ErrUpstreamUnavailable.
func classify(err error) error {
	switch {
	case errors.Is(err, source.ErrAuthentication), errors.Is(err, source.ErrUpstreamUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", source.ErrUpstreamUnavailable, err)
	}
}
