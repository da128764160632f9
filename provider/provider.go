// Package provider is the registry of built-in content backends.
package provider

import (
	"fmt"
	"strings"
	"time"

	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/network"
	"github.com/cinelink/cinelink/provider/vault"
	"github.com/cinelink/cinelink/source"
	"github.com/cinelink/cinelink/util"
	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const maxSearchLimit = 100

// Options configure a backend instance.
type Options struct {
	BaseURL     string
	Timeout     time.Duration
	Fingerprint bool
	SearchLimit int
}

// Provider describes a registered backend.
type Provider struct {
	Name        string
	Description string
	Create      func(Options) source.Provider
}

func (p *Provider) String() string {
	return p.Name
}

// Builtins returns every built-in backend.
func Builtins() []*Provider {
	return []*Provider{
		{
			Name:        vault.Name,
			Description: "JSON API with bearer token sessions",
			Create: func(o Options) source.Provider {
				return vault.New(o.BaseURL, network.NewClient(o.Timeout, o.Fingerprint), o.SearchLimit)
			},
		},
	}
}

// Get finds a backend by name, case-insensitively.
func Get(name string) (*Provider, bool) {
	return lo.Find(Builtins(), func(p *Provider) bool {
		return strings.EqualFold(p.Name, name)
	})
}

// OptionsFromConfig reads the provider.* keys.
func OptionsFromConfig() Options {
	return Options{
		BaseURL:     strings.TrimSpace(viper.GetString(key.ProviderBaseURL)),
		Timeout:     time.Duration(viper.GetInt(key.ProviderTimeout)) * time.Second,
		Fingerprint: viper.GetBool(key.ProviderTLSFingerprint),
		SearchLimit: util.Clamp(viper.GetInt(key.ProviderSearchLimit), 1, maxSearchLimit),
	}
}

// Default builds the backend named by provider.default. It fails with
// source.ErrConfiguration when the name is unknown or no base URL is set.
func Default() (source.Provider, error) {
	name := viper.GetString(key.ProviderDefault)
	p, ok := Get(name)
	if !ok {
		return nil, fmt.Errorf("%w: unknown provider %q", source.ErrConfiguration, name)
	}

	opts := OptionsFromConfig()
	if opts.BaseURL == "" {
		return nil, fmt.Errorf("%w: %s is not set", source.ErrConfiguration, key.ProviderBaseURL)
	}

	return p.Create(opts), nil
}
