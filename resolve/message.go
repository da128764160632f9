package resolve

import (
	"errors"

	"github.com/cinelink/cinelink/source"
)

// ErrInvalidID means the external id could not be parsed.
var ErrInvalidID = errors.New("invalid external id")

// IsAuthProblem reports whether err stems from missing or rejected credentials.
func IsAuthProblem(err error) bool {
	return errors.Is(err, source.ErrConfiguration) || errors.Is(err, source.ErrAuthentication)
}

// Message is the text shown to users next to the stream list.
// Authentication problems read differently from plain "nothing found".
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, source.ErrConfiguration):
		return "Provider is not configured: add your username and password."
	case errors.Is(err, source.ErrAuthentication):
		return "Provider login failed: check your username and password."
	case errors.Is(err, source.ErrUpstreamUnavailable):
		return "Provider is unavailable, try again later."
	case errors.Is(err, source.ErrExtractionDegraded):
		return "Some streams could not be listed."
	default:
		return "No streams found."
	}
}

// Outcome names err for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidID):
		return "invalid_id"
	case errors.Is(err, source.ErrConfiguration):
		return "configuration"
	case errors.Is(err, source.ErrAuthentication):
		return "authentication"
	case errors.Is(err, source.ErrUpstreamUnavailable):
		return "upstream"
	case errors.Is(err, source.ErrNoMatch):
		return "no_match"
	case errors.Is(err, source.ErrExtractionDegraded):
		return "degraded"
	default:
		// catalog lookups are the only other failure
		return "no_metadata"
	}
}
