package relay

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidURL         = errors.New("invalid relay url")
	ErrDisallowedHost     = errors.New("host is not allowlisted")
	ErrDisallowedRedirect = errors.New("redirect target is not allowlisted")
	ErrPayloadTooLarge    = errors.New("payload too large")
	ErrUpstream           = errors.New("upstream fetch failed")
)

// StatusCode maps a Relay error to the status ServeHTTP answers with.
func StatusCode(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidURL):
		return http.StatusBadRequest
	case errors.Is(err, ErrDisallowedHost), errors.Is(err, ErrDisallowedRedirect):
		return http.StatusForbidden
	case errors.Is(err, ErrPayloadTooLarge):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// Outcome names err for logs and metrics.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, ErrInvalidURL):
		return "invalid_url"
	case errors.Is(err, ErrDisallowedHost):
		return "disallowed_host"
	case errors.Is(err, ErrDisallowedRedirect):
		return "disallowed_redirect"
	case errors.Is(err, ErrPayloadTooLarge):
		return "too_large"
	default:
		return "upstream"
	}
}
