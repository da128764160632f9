// Package extract turns a provider detail payload into stream links.
package extract

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cinelink/cinelink/source"
	"github.com/samber/lo"
)

const separator = " - "

var seasonNumber = regexp.MustCompile(`\d+`)

// Result holds the built links and how many entries had to be skipped.
type Result struct {
	Links   []source.StreamLink
	Skipped int
}

// Degraded reports whether any entry was skipped.
func (r Result) Degraded() bool {
	return r.Skipped > 0
}

// Build never fails. Unusable entries are skipped and counted, and an
// unparseable externalID or a nil detail yields no links.
func Build(kind source.Kind, externalID string, detail *source.Detail) Result {
	res := Result{Links: []source.StreamLink{}}
	if detail == nil {
		return res
	}

	switch kind {
	case source.Movie:
		movie(detail, &res)
	case source.Series:
		id, err := source.ParseExternalID(externalID)
		if err != nil {
			return res
		}
		series(detail, id, &res)
	}

	return res
}

func movie(detail *source.Detail, res *Result) {
	for _, d := range detail.Downloads {
		if strings.TrimSpace(d.File) == "" {
			res.Skipped++
			continue
		}

		res.Links = append(res.Links, source.StreamLink{
			Title: join(d.Quality, d.Size, d.Encode, d.Label),
			URL:   d.File,
		})
	}
}

func series(detail *source.Detail, id source.ExternalID, res *Result) {
	for _, s := range detail.Seasons {
		if !isSeason(s.Label, id.Season) {
			continue
		}

		i := id.Episode - 1
		if i >= len(s.Episodes) || strings.TrimSpace(s.Episodes[i].File) == "" {
			res.Skipped++
			continue
		}

		res.Links = append(res.Links, source.StreamLink{
			Title: join(s.Quality, s.Size),
			URL:   s.Episodes[i].File,
		})
	}
}

// isSeason compares the first number in a label such as "Season 2" or "S02".
func isSeason(label string, season int) bool {
	n, err := strconv.Atoi(seasonNumber.FindString(label))
	return err == nil && n == season
}

func join(fields ...string) string {
	fields = lo.Map(fields, func(f string, _ int) string {
		return strings.TrimSpace(f)
	})
	return strings.Join(lo.Compact(fields), separator)
}
