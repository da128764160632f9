// Package constant defines immutable application-level identifiers and defaults.
package constant

const (
	// Cinelink is the canonical application identifier used for filesystem paths, env prefixes and CLI branding.
	Cinelink = "cinelink"

	// Version is the current application semantic version string.
	Version = "0.3.1"

	// UserAgent is sent with every request to the provider, the catalog and relay upstreams.
	UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
)

// Build metadata, overridden through -ldflags at release time.
var (
	BuiltAt  = "unknown"
	BuiltBy  = "unknown"
	Revision = "unknown"
)
