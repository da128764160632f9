package metadata

import (
	"sync"
	"time"

	"github.com/cinelink/cinelink/filesystem"
	"github.com/metafates/gache"
	"github.com/samber/mo"
)

type cacheData struct {
	Titles map[string]string `json:"titles"`
}

// titleCache persists catalog titles by "type/id" key.
type titleCache struct {
	internal *gache.Cache[*cacheData]
	mu       sync.RWMutex
}

func newTitleCache(path string, lifetime time.Duration) *titleCache {
	return &titleCache{
		internal: gache.New[*cacheData](
			&gache.Options{
				Path:       path,
				Lifetime:   lifetime,
				FileSystem: &filesystem.GacheFs{},
			},
		),
	}
}

func (c *titleCache) Get(key string) mo.Option[string] {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil {
		return mo.None[string]()
	}

	if name, ok := data.Titles[key]; ok {
		return mo.Some(name)
	}
	return mo.None[string]()
}

func (c *titleCache) Set(key, name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	data, expired, err := c.internal.Get()
	if err != nil || expired || data == nil || data.Titles == nil {
		data = &cacheData{Titles: make(map[string]string)}
	}

	data.Titles[key] = name
	return c.internal.Set(data)
}
