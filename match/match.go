// Package match scores provider search candidates against a catalog title.
package match

import (
	"strings"

	"github.com/cinelink/cinelink/source"
	"github.com/cinelink/cinelink/title"
	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"golang.org/x/exp/slices"
)

const (
	kindMatch    = 100
	kindMismatch = -50
	nameEqual    = 60
	namePrefix   = 20
	nameContains = 10
)

// Scored pairs a candidate with its score and its position in the
// provider's result list.
type Scored struct {
	Candidate *source.Candidate
	Score     int
	Index     int
}

// Score rates c against an already normalized target.
func Score(c *source.Candidate, target string, kind source.Kind) int {
	score := kindMismatch
	if c.Kind == kind {
		score = kindMatch
	}

	name := title.Normalize(c.Name)
	switch {
	case name == target:
		score += nameEqual
	case strings.HasPrefix(name, target):
		score += namePrefix
	case strings.Contains(name, target):
		score += nameContains
	}

	return score
}

// Rank scores every candidate against target and sorts them by score,
// highest first. Equal scores keep provider order.
func Rank(candidates []*source.Candidate, target string, kind source.Kind) []Scored {
	target = title.Normalize(target)

	scored := make([]Scored, 0, len(candidates))
	for i, c := range candidates {
		if c == nil {
			continue
		}
		scored = append(scored, Scored{Candidate: c, Score: Score(c, target, kind), Index: i})
	}

	slices.SortStableFunc(scored, func(a, b Scored) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return a.Index - b.Index
	})

	return scored
}

// Best returns the top ranked candidate when its score is above zero.
func Best(candidates []*source.Candidate, target string, kind source.Kind) mo.Option[Scored] {
	ranked := Rank(candidates, target, kind)
	if len(ranked) == 0 || ranked[0].Score <= 0 {
		return mo.None[Scored]()
	}
	return mo.Some(ranked[0])
}

// Closest returns the candidate whose normalized name is nearest to target
// by edit distance. It is only used to explain a failed match.
func Closest(candidates []*source.Candidate, target string) mo.Option[*source.Candidate] {
	candidates = lo.Compact(candidates)
	if len(candidates) == 0 {
		return mo.None[*source.Candidate]()
	}

	target = title.Normalize(target)
	closest := lo.MinBy(candidates, func(a, b *source.Candidate) bool {
		return levenshtein.Distance(title.Normalize(a.Name), target) <
			levenshtein.Distance(title.Normalize(b.Name), target)
	})

	return mo.Some(closest)
}
