package source

import (
	"fmt"
	"strconv"
	"strings"
)

// ExternalID is a catalog id with an optional season and episode,
// written as "tt0944947" or "tt0944947:2:3".
type ExternalID struct {
	Base    string
	Season  int
	Episode int
}

// ParseExternalID parses "base[:season:episode]". Season and episode
// default to 1 when absent. When present they must be integers >= 1.
func ParseExternalID(s string) (ExternalID, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	id := ExternalID{Base: parts[0], Season: 1, Episode: 1}

	if id.Base == "" {
		return ExternalID{}, fmt.Errorf("external id %q: empty base", s)
	}

	var err error
	switch len(parts) {
	case 1:
	case 3:
		if id.Season, err = positive(parts[1]); err != nil {
			return ExternalID{}, fmt.Errorf("external id %q: season: %w", s, err)
		}
		if id.Episode, err = positive(parts[2]); err != nil {
			return ExternalID{}, fmt.Errorf("external id %q: episode: %w", s, err)
		}
	default:
		return ExternalID{}, fmt.Errorf("external id %q: want base or base:season:episode", s)
	}

	return id, nil
}

func positive(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, err
	}
	if n < 1 {
		return 0, fmt.Errorf("%d is below 1", n)
	}
	return n, nil
}

func (e ExternalID) String() string {
	return fmt.Sprintf("%s:%d:%d", e.Base, e.Season, e.Episode)
}
