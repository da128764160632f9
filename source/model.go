package source

import "strings"

// Credentials are supplied per request and never stored.
type Credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Complete reports whether both fields are non-blank.
func (c Credentials) Complete() bool {
	return strings.TrimSpace(c.Username) != "" && strings.TrimSpace(c.Password) != ""
}

// Session is the token pair issued by a provider.
type Session struct {
	AuthToken    string
	RefreshToken string
	Valid        bool
}

// HasToken reports whether an auth token is held.
func (s *Session) HasToken() bool {
	return s != nil && s.AuthToken != ""
}

// Candidate is a single provider search hit.
type Candidate struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Poster string `json:"poster,omitempty"`
	Kind   Kind   `json:"type"`
}

func (c *Candidate) String() string {
	return c.Name
}

// Detail lists what can be downloaded for a candidate.
// Movies fill Downloads, series fill Seasons.
type Detail struct {
	ID        string     `json:"id"`
	Downloads []Download `json:"downloads"`
	Seasons   []Season   `json:"seasons"`
}

type Download struct {
	Quality string `json:"quality"`
	Size    string `json:"size"`
	Encode  string `json:"encode"`
	Label   string `json:"label"`
	File    string `json:"file"`
}

// Season is one bucket of episodes, usually a single quality of a season.
type Season struct {
	Label    string    `json:"label"`
	Quality  string    `json:"quality"`
	Size     string    `json:"size"`
	Episodes []Episode `json:"episodes"`
}

type Episode struct {
	File string `json:"file"`
}

// StreamLink is a playable link as returned to clients.
type StreamLink struct {
	Title string `json:"title" jsonschema:"description=Human readable quality and size summary"`
	URL   string `json:"url" jsonschema:"format=uri"`
}
