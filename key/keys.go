// Package key defines the canonical set of configuration identifiers.
package key

// Provider - the authenticated content backend.
const (
	ProviderDefault        = "provider.default"
	ProviderBaseURL        = "provider.base_url"
	ProviderTimeout        = "provider.timeout"
	ProviderTLSFingerprint = "provider.tls_fingerprint"
	ProviderSearchLimit    = "provider.search_limit"
)

// Metadata - the catalog service that maps external identifiers to titles.
const (
	MetadataBaseURL       = "metadata.base_url"
	MetadataCacheLifetime = "metadata.cache_lifetime"
)

// Relay - the forwarding gateway.
const (
	RelayEnable       = "relay.enable"
	RelayBaseURL      = "relay.base_url"
	RelayAllowlist    = "relay.allowlist"
	RelayMaxPayload   = "relay.max_payload"
	RelayTimeout      = "relay.timeout"
	RelayMaxRedirects = "relay.max_redirects"
)

// Server - the HTTP surface started by "cinelink serve".
const (
	ServerAddress = "server.address"
)

// Search history used for title suggestions.
const (
	SearchRememberQueries = "search.remember_queries"
)

// Logging.
const (
	LogsWrite = "logs.write"
	LogsLevel = "logs.level"
	LogsJson  = "logs.json"
)

// CLI presentation.
const (
	IconsVariant = "icons.variant"
	CliColored   = "cli.colored"
)
