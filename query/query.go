// Package query keeps a ranked history of resolved titles and offers
// fuzzy suggestions from it.
package query

import (
	"strings"
	"sync"

	"github.com/cinelink/cinelink/filesystem"
	"github.com/cinelink/cinelink/key"
	"github.com/cinelink/cinelink/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

type queryRecord struct {
	Rank  int    `json:"rank"`
	Query string `json:"query"`
}

var (
	mu     sync.Mutex
	cacher *gache.Cache[map[string]*queryRecord]
	// suggestions memoizes SuggestMany per input; Remember clears it.
	suggestions = make(map[string][]*queryRecord)
)

func store() *gache.Cache[map[string]*queryRecord] {
	if cacher == nil {
		cacher = gache.New[map[string]*queryRecord](
			&gache.Options{
				Path:       where.Queries(),
				FileSystem: &filesystem.GacheFs{},
			},
		)
	}
	return cacher
}

// Remember adds weight to the rank of q, creating the record if needed.
// It does nothing when search.remember_queries is off.
func Remember(q string, weight int) error {
	if !viper.GetBool(key.SearchRememberQueries) {
		return nil
	}

	q = sanitize(q)
	if q == "" {
		return nil
	}

	mu.Lock()
	defer mu.Unlock()

	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		cached = make(map[string]*queryRecord)
	}

	if record, ok := cached[q]; ok {
		record.Rank += weight
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q}
	}

	suggestions = make(map[string][]*queryRecord)
	return store().Set(cached)
}

// Suggest returns the highest ranked suggestion for q.
func Suggest(q string) mo.Option[string] {
	many := SuggestMany(q)
	if len(many) == 0 {
		return mo.None[string]()
	}
	return mo.Some(many[0])
}

// SuggestMany returns every remembered query fuzzily matching q, highest rank first.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.SearchRememberQueries) {
		return []string{}
	}

	q = sanitize(q)

	mu.Lock()
	defer mu.Unlock()

	records, ok := suggestions[q]
	if !ok {
		cached, expired, err := store().Get()
		if err != nil || expired || cached == nil {
			return []string{}
		}

		for _, record := range cached {
			if fuzzy.Match(q, record.Query) {
				records = append(records, record)
			}
		}

		slices.SortFunc(records, func(a, b *queryRecord) int {
			if a.Rank != b.Rank {
				return b.Rank - a.Rank
			}
			return strings.Compare(a.Query, b.Query)
		})

		suggestions[q] = records
	}

	return lo.Map(records, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

// Reset drops the in-memory store so the next call rereads where.Queries().
func Reset() {
	mu.Lock()
	defer mu.Unlock()

	cacher = nil
	suggestions = make(map[string][]*queryRecord)
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
