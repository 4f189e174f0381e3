// Package match resolves a free-text reply against a cached candidate
// list. Three stages run in order, cheapest and most precise first:
// 1-based numeric selection, accent-insensitive substring containment in
// either direction, then Jaro-Winkler fuzzy matching for misspellings.
package match

import (
	"strconv"
	"strings"

	"github.com/antzucaro/matchr"

	"github.com/sandevgo/caliando/internal/core"
	"github.com/sandevgo/caliando/pkg/textnorm"
)

// fuzzyThreshold is the minimum Jaro-Winkler similarity for the fuzzy
// stage to accept a candidate.
const fuzzyThreshold = 0.70

// Resolve picks at most one candidate for the reply. ok is false when no
// stage produced a match; callers treat that as a brand-new query rather
// than an error.
func Resolve(items []core.Candidate, reply string) (core.Candidate, bool) {
	if len(items) == 0 {
		return core.Candidate{}, false
	}

	text := textnorm.Normalize(reply)
	if text == "" {
		return core.Candidate{}, false
	}

	if c, ok := byIndex(items, text); ok {
		return c, true
	}
	if c, ok := bySubstring(items, text); ok {
		return c, true
	}
	return byFuzzy(items, text)
}

func byIndex(items []core.Candidate, text string) (core.Candidate, bool) {
	n, err := strconv.Atoi(text)
	if err != nil || n < 1 || n > len(items) {
		return core.Candidate{}, false
	}
	return items[n-1], true
}

// bySubstring accepts the full name, a truncated name, or the name
// embedded in a sentence.
func bySubstring(items []core.Candidate, text string) (core.Candidate, bool) {
	for _, c := range items {
		name := textnorm.Normalize(c.Name)
		if name == "" {
			continue
		}
		if strings.Contains(name, text) || strings.Contains(text, name) {
			return c, true
		}
	}
	return core.Candidate{}, false
}

func byFuzzy(items []core.Candidate, text string) (core.Candidate, bool) {
	best := core.Candidate{}
	bestScore := 0.0
	for _, c := range items {
		name := textnorm.Normalize(c.Name)
		score := matchr.JaroWinkler(text, name, false)
		// A reply usually targets one word of a longer name; also score
		// the closest single token so "terulia" finds "museo la tertulia".
		for _, token := range strings.Fields(name) {
			if s := matchr.JaroWinkler(text, token, false); s > score {
				score = s
			}
		}
		if score > bestScore {
			bestScore = score
			best = c
		}
	}
	if bestScore < fuzzyThreshold {
		return core.Candidate{}, false
	}
	return best, true
}
