// Package title normalizes media titles so catalog names and provider
// names can be compared.
package title

import (
	"regexp"
	"strings"
)

var (
	punctuation = strings.NewReplacer("&", " and ", ":", " ", "-", " ", ".", " ")
	whitespace  = regexp.MustCompile(`\s+`)
	article     = regexp.MustCompile(`^(the|a|an) (\S+)`)
)

// Normalize lowercases s, spells "&" as "and", turns ":", "-" and "." into
// spaces, collapses whitespace and drops leading articles.
//
// An article directly followed by the word "and" is kept, so "A&B" becomes
// "a and b". Normalize(Normalize(s)) == Normalize(s) for every s.
func Normalize(s string) string {
	s = strings.ToLower(s)
	s = punctuation.Replace(s)
	s = strings.TrimSpace(whitespace.ReplaceAllString(s, " "))

	for {
		m := article.FindStringSubmatchIndex(s)
		if m == nil || s[m[4]:m[5]] == "and" {
			return s
		}
		s = s[m[4]:]
	}
}
