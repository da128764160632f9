package resolve

import (
	"context"
	"fmt"

	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/metadata"
	"github.com/cinelink/cinelink/metrics"
	"github.com/cinelink/cinelink/provider"
	"github.com/cinelink/cinelink/query"
	"github.com/cinelink/cinelink/relay"
	"github.com/cinelink/cinelink/source"
	"github.com/spf13/viper"
)

// Response is what the stream endpoint and the resolve command return.
// An empty Streams list is the single "nothing playable" signal.
type Response struct {
	Streams []source.StreamLink `json:"streams"`
	Message string              `json:"message,omitempty" jsonschema:"description=Set when no or only some streams could be listed"`
	Err     error               `json:"-"`
}

// ServiceOptions configure a Service.
type ServiceOptions struct {
	// RelayBase, when set, routes every stream URL through the gateway.
	RelayBase string
}

// Service looks titles up in the catalog and resolves them.
type Service struct {
	catalog   metadata.Catalog
	client    *Client
	setupErr  error
	relayBase string
}

// NewService returns a service. A nil provider makes every call fail with
// source.ErrConfiguration.
func NewService(catalog metadata.Catalog, p source.Provider, opts ServiceOptions) *Service {
	s := &Service{catalog: catalog, relayBase: opts.RelayBase}
	if p == nil {
		s.setupErr = fmt.Errorf("%w: no provider", source.ErrConfiguration)
	} else {
		s.client = NewClient(p)
	}
	return s
}

// ServiceFromConfig wires the configured provider, catalog and relay.
func ServiceFromConfig() *Service {
	p, err := provider.Default()

	var opts ServiceOptions
	if viper.GetBool(key.RelayEnable) {
		opts.RelayBase = viper.GetString(key.RelayBaseURL)
	}

	s := NewService(metadata.FromConfig(), p, opts)
	if err != nil {
		log.Warnf("provider setup: %s", err)
		s.setupErr = err
	}
	return s
}

// Streams resolves externalID to links. Credentials are checked first so
// nothing is fetched for incomplete ones.
func (s *Service) Streams(ctx context.Context, creds source.Credentials, kind source.Kind, externalID string) Response {
	links, err := s.streams(ctx, creds, kind, externalID)

	outcome := Outcome(err)
	metrics.Resolutions.WithLabelValues(outcome).Inc()

	entry := log.WithFields(log.Fields{
		"kind":        kind,
		"external_id": externalID,
		"outcome":     outcome,
		"streams":     len(links),
	})
	if err != nil {
		entry.Infof("resolution: %s", err)
	} else {
		entry.Info("resolution")
	}

	return Response{Streams: links, Message: Message(err), Err: err}
}

func (s *Service) streams(ctx context.Context, creds source.Credentials, kind source.Kind, externalID string) ([]source.StreamLink, error) {
	none := []source.StreamLink{}

	if s.setupErr != nil {
		return none, s.setupErr
	}
	if !creds.Complete() {
		return none, fmt.Errorf("%w: username and password are required", source.ErrConfiguration)
	}

	id, err := source.ParseExternalID(externalID)
	if err != nil {
		return none, fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	name, err := s.catalog.Title(ctx, kind, id.Base)
	if err != nil {
		return none, fmt.Errorf("catalog: %w", err)
	}

	links, err := s.client.Resolve(ctx, creds, kind, name, externalID)
	if len(links) > 0 {
		if rememberErr := query.Remember(name, 1); rememberErr != nil {
			log.Warnf("remember %q: %s", name, rememberErr)
		}
	}

	if s.relayBase == "" {
		return links, err
	}

	relayed := make([]source.StreamLink, 0, len(links))
	for _, l := range links {
		u, rewriteErr := relay.Rewrite(s.relayBase, l.URL)
		if rewriteErr != nil {
			return none, fmt.Errorf("%w: %w", source.ErrConfiguration, rewriteErr)
		}
		relayed = append(relayed, source.StreamLink{Title: l.Title, URL: u})
	}

	return relayed, err
}
