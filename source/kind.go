package source

import (
	"fmt"
	"strings"
)

// Kind is the media type of a title.
type Kind string

const (
	Movie  Kind = "movie"
	Series Kind = "series"
)

// ParseKind accepts "movie", "series" and the "tv" alias, case-insensitively.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie":
		return Movie, nil
	case "series", "tv":
		return Series, nil
	default:
		return "", fmt.Errorf("unknown media type %q", s)
	}
}

func (k Kind) String() string {
	return string(k)
}
