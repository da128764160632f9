package source

import "errors"

var (
	// ErrConfiguration means credentials or provider settings are missing.
	ErrConfiguration = errors.New("provider is not configured")

	// ErrAuthentication means login failed, or a re-login did not help.
	ErrAuthentication = errors.New("provider authentication failed")

	// ErrUnauthorized is returned by a Provider when it rejects the token.
	ErrUnauthorized = errors.New("provider rejected the session")

	ErrUpstreamUnavailable = errors.New("provider unavailable")

	// ErrNoMatch means no search candidate scored above zero.
	ErrNoMatch = errors.New("no matching title")

	// ErrExtractionDegraded means some entries of a detail payload were unusable.
	ErrExtractionDegraded = errors.New("some download entries were skipped")
)
