package relay

import (
	"strings"

	"github.com/samber/lo"
)

// Allowlist matches hosts against a fixed set of domains. A host matches
// an entry when it equals it or is a subdomain of it.
type Allowlist struct {
	domains []string
}

// NewAllowlist normalizes entries and drops blank ones.
func NewAllowlist(domains []string) Allowlist {
	normalized := lo.Map(domains, func(d string, _ int) string {
		return normalizeHost(d)
	})
	return Allowlist{domains: lo.Uniq(lo.Compact(normalized))}
}

// Allowed reports whether host may be fetched. An empty list allows nothing.
func (a Allowlist) Allowed(host string) bool {
	host = normalizeHost(host)
	if host == "" {
		return false
	}

	return lo.SomeBy(a.domains, func(d string) bool {
		return host == d || strings.HasSuffix(host, "."+d)
	})
}

// Domains returns the normalized entries.
func (a Allowlist) Domains() []string {
	return append([]string(nil), a.domains...)
}

func normalizeHost(h string) string {
	return strings.Trim(strings.ToLower(strings.TrimSpace(h)), ".")
}
