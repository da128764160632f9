// Package network builds the HTTP clients used to reach providers, metadata
// catalogs and relay targets.
package network

import (
	"net/http"
	"time"

	"github.com/cinelink/cinelink/constant"
)

// NewTransport returns a tuned clone of the default transport.
func NewTransport() *http.Transport {
	t := http.DefaultTransport.(*http.Transport).Clone()
	t.MaxIdleConns = 100
	t.MaxIdleConnsPerHost = 100
	t.MaxConnsPerHost = 200
	t.IdleConnTimeout = 30 * time.Second
	t.ResponseHeaderTimeout = 30 * time.Second
	t.ExpectContinueTimeout = 30 * time.Second
	return t
}

// NewClient returns a client with the given overall timeout. When
// fingerprint is set, https requests use a Chrome TLS ClientHello.
func NewClient(timeout time.Duration, fingerprint bool) *http.Client {
	var rt http.RoundTripper = NewTransport()
	if fingerprint {
		rt = newFingerprintTransport(rt)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: &agentTransport{next: rt},
	}
}

// agentTransport sets a User-Agent on requests that lack one.
type agentTransport struct {
	next http.RoundTripper
}

func (a *agentTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.Header.Get("User-Agent") != "" {
		return a.next.RoundTrip(req)
	}

	req = req.Clone(req.Context())
	req.Header.Set("User-Agent", constant.UserAgent)
	return a.next.RoundTrip(req)
}
