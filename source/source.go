// Package source defines the data model shared by providers, the resolver
// and the relay, together with the Provider contract a backend implements.
package source

import "context"

// Provider is a session-based content backend.
//
// Implementations must return an error wrapping ErrUnauthorized when the
// backend rejects the token (HTTP 401/403), and one wrapping
// ErrUpstreamUnavailable for transport failures and other bad statuses.
type Provider interface {
	// Name identifies the backend in the registry and in logs.
	Name() string

	// Login exchanges credentials for a fresh token pair.
	Login(ctx context.Context, creds Credentials) (*Session, error)

	// Probe performs a cheap authenticated request using s.
	Probe(ctx context.Context, s *Session) error

	// Search returns candidates for a free-text query in provider order.
	Search(ctx context.Context, s *Session, query string) ([]*Candidate, error)

	// Detail fetches the download listing for a candidate id.
	Detail(ctx context.Context, s *Session, id string) (*Detail, error)
}
