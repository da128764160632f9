// Package vault implements source.Provider for backends that speak the
// vault JSON API: token login, a /me probe, search and a media listing.
package vault

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/cinelink/cinelink/source"
)

// Name under which the backend is registered.
const Name = "vault"

const maxBody = 10 * 1024 * 1024

// Vault is a client bound to one API base URL.
type Vault struct {
	base   string
	client *http.Client
	limit  int
}

// New returns a client for base. A limit <= 0 leaves the search size to the server.
func New(base string, client *http.Client, limit int) *Vault {
	return &Vault{
		base:   strings.TrimRight(base, "/"),
		client: client,
		limit:  limit,
	}
}

func (v *Vault) Name() string {
	return Name
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

func (v *Vault) Login(ctx context.Context, creds source.Credentials) (*source.Session, error) {
	body, err := json.Marshal(loginRequest{Username: creds.Username, Password: creds.Password})
	if err != nil {
		return nil, err
	}

	var resp loginResponse
	if err := v.do(ctx, http.MethodPost, "/api/v1/auth/login", nil, body, &resp); err != nil {
		return nil, fmt.Errorf("login: %w", err)
	}

	if resp.AccessToken == "" {
		return nil, fmt.Errorf("login: %w: no access token in response", source.ErrAuthentication)
	}

	return &source.Session{AuthToken: resp.AccessToken, RefreshToken: resp.RefreshToken}, nil
}

func (v *Vault) Probe(ctx context.Context, s *source.Session) error {
	if err := v.do(ctx, http.MethodGet, "/api/v1/auth/me", s, nil, nil); err != nil {
		return fmt.Errorf("probe: %w", err)
	}
	return nil
}

type searchResponse struct {
	Data []struct {
		ID     id     `json:"id"`
		Name   string `json:"name"`
		Poster string `json:"poster"`
		Type   string `json:"type"`
	} `json:"data"`
}

func (v *Vault) Search(ctx context.Context, s *source.Session, query string) ([]*source.Candidate, error) {
	params := url.Values{"q": {query}}
	if v.limit > 0 {
		params.Set("limit", strconv.Itoa(v.limit))
	}

	var resp searchResponse
	if err := v.do(ctx, http.MethodGet, "/api/v1/search?"+params.Encode(), s, nil, &resp); err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	candidates := make([]*source.Candidate, 0, len(resp.Data))
	for _, d := range resp.Data {
		kind, err := source.ParseKind(d.Type)
		if err != nil {
			// unknown types still take part in ranking, they just never match the kind
			kind = source.Kind(strings.ToLower(d.Type))
		}

		candidates = append(candidates, &source.Candidate{
			ID:     string(d.ID),
			Name:   d.Name,
			Poster: d.Poster,
			Kind:   kind,
		})
	}

	return candidates, nil
}

type detailResponse struct {
	Data struct {
		ID        id                `json:"id"`
		Downloads []source.Download `json:"downloads"`
		Seasons   []source.Season   `json:"seasons"`
	} `json:"data"`
}

// id accepts both numeric and string identifiers.
type id string

func (i *id) UnmarshalJSON(b []byte) error {
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*i = id(s)
		return nil
	}

	if string(b) == "null" {
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*i = id(n.String())
	return nil
}

func (v *Vault) Detail(ctx context.Context, s *source.Session, mediaID string) (*source.Detail, error) {
	var resp detailResponse
	if err := v.do(ctx, http.MethodGet, "/api/v1/media/"+url.PathEscape(mediaID), s, nil, &resp); err != nil {
		return nil, fmt.Errorf("detail %s: %w", mediaID, err)
	}

	detail := &source.Detail{
		ID:        string(resp.Data.ID),
		Downloads: resp.Data.Downloads,
		Seasons:   resp.Data.Seasons,
	}
	if detail.ID == "" {
		detail.ID = mediaID
	}
	return detail, nil
}

// do sends a request and decodes a JSON reply into out when out is not nil.
func (v *Vault) do(ctx context.Context, method, path string, s *source.Session, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, v.base+path, reader)
	if err != nil {
		return fmt.Errorf("%w: create request: %w", source.ErrUpstreamUnavailable, err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if s.HasToken() {
		req.Header.Set("Authorization", "Bearer "+s.AuthToken)
	}

	resp, err := v.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", source.ErrUpstreamUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusUnauthorized, resp.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d", source.ErrUnauthorized, resp.StatusCode)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return fmt.Errorf("%w: status %d", source.ErrUpstreamUnavailable, resp.StatusCode)
	}

	if out == nil {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBody))
		return nil
	}

	if err := json.NewDecoder(io.LimitReader(resp.Body, maxBody)).Decode(out); err != nil {
		return fmt.Errorf("%w: decode response: %w", source.ErrUpstreamUnavailable, err)
	}
	return nil
}
