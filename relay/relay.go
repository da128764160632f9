// Package relay fetches allowlisted URLs on behalf of clients so provider
// hosts are never exposed to them directly.
package relay

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/metrics"
	"github.com/cinelink/cinelink/network"
	"github.com/spf13/viper"
)

const (
	DefaultMaxPayload   = 10 * 1024 * 1024
	DefaultTimeout      = 30 * time.Second
	DefaultMaxRedirects = 5
)

// Options configure a Gateway. Zero values fall back to the defaults.
type Options struct {
	Allowlist    []string
	MaxPayload   int64
	Timeout      time.Duration
	MaxRedirects int
	// Transport overrides the shared tuned transport.
	Transport http.RoundTripper
}

// OptionsFromConfig reads the relay.* keys.
func OptionsFromConfig() Options {
	return Options{
		Allowlist:    viper.GetStringSlice(key.RelayAllowlist),
		MaxPayload:   viper.GetInt64(key.RelayMaxPayload),
		Timeout:      time.Duration(viper.GetInt(key.RelayTimeout)) * time.Second,
		MaxRedirects: viper.GetInt(key.RelayMaxRedirects),
	}
}

// Payload is a fully buffered upstream response.
type Payload struct {
	ContentType string
	Body        []byte
}

// Gateway is safe for concurrent use. Its configuration is fixed at New.
type Gateway struct {
	allow      Allowlist
	maxPayload int64
	client     *http.Client
}

// New builds a gateway from opts.
func New(opts Options) *Gateway {
	if opts.MaxPayload <= 0 {
		opts.MaxPayload = DefaultMaxPayload
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.MaxRedirects <= 0 {
		opts.MaxRedirects = DefaultMaxRedirects
	}
	if opts.Transport == nil {
		opts.Transport = network.NewTransport()
	}

	g := &Gateway{
		allow:      NewAllowlist(opts.Allowlist),
		maxPayload: opts.MaxPayload,
	}

	maxRedirects := opts.MaxRedirects
	g.client = &http.Client{
		Timeout:   opts.Timeout,
		Transport: opts.Transport,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			if len(via) > maxRedirects {
				return fmt.Errorf("%w: stopped after %d redirects", ErrUpstream, maxRedirects)
			}
			if !isHTTP(req.URL) || !g.allow.Allowed(req.URL.Hostname()) {
				return fmt.Errorf("%w: %s", ErrDisallowedRedirect, req.URL.Host)
			}
			return nil
		},
	}

	return g
}

// FromConfig builds a gateway from the relay.* keys.
func FromConfig() *Gateway {
	return New(OptionsFromConfig())
}

// Allowed reports whether host passes the allowlist.
func (g *Gateway) Allowed(host string) bool {
	return g.allow.Allowed(host)
}

// Relay fetches target and returns its content type and body.
//
// The host is checked before any request is made and again for every
// redirect hop and for the final URL. Bodies larger than the payload cap
// are rejected and never returned in part.
func (g *Gateway) Relay(ctx context.Context, target string) (*Payload, error) {
	u, err := ParseTarget(target)
	if err != nil {
		return nil, err
	}

	if !g.allow.Allowed(u.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrDisallowedHost, u.Hostname())
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidURL, err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		if errors.Is(err, ErrDisallowedRedirect) || errors.Is(err, ErrUpstream) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %w", ErrUpstream, err)
	}
	defer resp.Body.Close()

	if final := resp.Request.URL; !g.allow.Allowed(final.Hostname()) {
		return nil, fmt.Errorf("%w: %s", ErrDisallowedRedirect, final.Hostname())
	}

	if resp.StatusCode < 200 || resp.StatusCode > 399 {
		return nil, fmt.Errorf("%w: status %d", ErrUpstream, resp.StatusCode)
	}

	if resp.ContentLength > g.maxPayload {
		return nil, fmt.Errorf("%w: declared %d bytes", ErrPayloadTooLarge, resp.ContentLength)
	}

	var buf bytes.Buffer
	if _, err := io.Copy(&buf, io.LimitReader(resp.Body, g.maxPayload+1)); err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrUpstream, err)
	}

	if int64(buf.Len()) > g.maxPayload {
		return nil, fmt.Errorf("%w: over %d bytes", ErrPayloadTooLarge, g.maxPayload)
	}

	return &Payload{
		ContentType: resp.Header.Get("Content-Type"),
		Body:        buf.Bytes(),
	}, nil
}

// ServeHTTP answers GET ?url=<target> with the relayed body.
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		w.Header().Set("Allow", "GET, HEAD")
		http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
		return
	}

	target := r.URL.Query().Get("url")
	var (
		payload *Payload
		err     error
	)
	if target == "" {
		err = fmt.Errorf("%w: missing url parameter", ErrInvalidURL)
	} else {
		payload, err = g.Relay(r.Context(), target)
	}

	outcome := Outcome(err)
	metrics.RelayRequests.WithLabelValues(outcome).Inc()

	if err != nil {
		log.WithFields(log.Fields{
			"outcome": outcome,
			"target":  target,
		}).Warnf("relay rejected: %s", err)
		http.Error(w, http.StatusText(StatusCode(err)), StatusCode(err))
		return
	}

	metrics.RelayBytes.Add(float64(len(payload.Body)))

	contentType := payload.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Length", fmt.Sprint(len(payload.Body)))
	w.WriteHeader(http.StatusOK)
	if r.Method == http.MethodGet {
		_, _ = w.Write(payload.Body)
	}
}

// Rewrite returns the gateway URL at base that relays target.
func Rewrite(base, target string) (string, error) {
	u, err := url.Parse(base)
	if err != nil || !isHTTP(u) || u.Host == "" {
		return "", fmt.Errorf("%w: relay base %q", ErrInvalidURL, base)
	}

	q := u.Query()
	q.Set("url", target)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ParseTarget parses an absolute http or https URL with a host.
func ParseTarget(target string) (*url.URL, error) {
	u, err := url.Parse(strings.TrimSpace(target))
	if err != nil || !isHTTP(u) || u.Hostname() == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidURL, target)
	}
	return u, nil
}

func isHTTP(u *url.URL) bool {
	return u != nil && (u.Scheme == "http" || u.Scheme == "https")
}
