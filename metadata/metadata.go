// Package metadata looks up canonical titles in a Cinemeta style catalog.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/log"
	"github.com/cinelink/cinelink/network"
	"github.com/cinelink/cinelink/source"
	"github.com/cinelink/cinelink/where"
	"github.com/spf13/viper"
)

// ErrNotFound means the catalog has no usable title for the id.
var ErrNotFound = errors.New("title not found in catalog")

// Catalog resolves a catalog id to its display title.
type Catalog interface {
	Title(ctx context.Context, kind source.Kind, id string) (string, error)
}

// Cinemeta queries GET {base}/meta/{type}/{id}.json.
type Cinemeta struct {
	base   string
	client *http.Client
	cache  *titleCache
}

// NewCinemeta returns a catalog client. Found titles are cached at cachePath
// for lifetime; misses are never cached.
func NewCinemeta(base string, client *http.Client, cachePath string, lifetime time.Duration) *Cinemeta {
	return &Cinemeta{
		base:   strings.TrimRight(base, "/"),
		client: client,
		cache:  newTitleCache(cachePath, lifetime),
	}
}

// FromConfig builds a Cinemeta client from the metadata.* keys.
func FromConfig() *Cinemeta {
	return NewCinemeta(
		viper.GetString(key.MetadataBaseURL),
		network.NewClient(time.Duration(viper.GetInt(key.ProviderTimeout))*time.Second, false),
		where.Titles(),
		time.Duration(viper.GetInt(key.MetadataCacheLifetime))*time.Hour,
	)
}

type metaResponse struct {
	Meta *struct {
		Name string `json:"name"`
	} `json:"meta"`
}

func (c *Cinemeta) Title(ctx context.Context, kind source.Kind, id string) (string, error) {
	cacheKey := kind.String() + "/" + id
	if name, ok := c.cache.Get(cacheKey).Get(); ok {
		return name, nil
	}

	endpoint := fmt.Sprintf("%s/meta/%s/%s.json", c.base, url.PathEscape(kind.String()), url.PathEscape(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("catalog request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return "", fmt.Errorf("%s: %w", cacheKey, ErrNotFound)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("catalog request: unexpected status %d", resp.StatusCode)
	}

	var meta metaResponse
	if err := json.NewDecoder(io.LimitReader(resp.Body, 10*1024*1024)).Decode(&meta); err != nil {
		return "", fmt.Errorf("decode catalog response: %w", err)
	}

	if meta.Meta == nil || strings.TrimSpace(meta.Meta.Name) == "" {
		return "", fmt.Errorf("%s: %w", cacheKey, ErrNotFound)
	}

	name := strings.TrimSpace(meta.Meta.Name)
	if err := c.cache.Set(cacheKey, name); err != nil {
		log.Warnf("cache title %s: %s", cacheKey, err)
	}

	return name, nil
}
