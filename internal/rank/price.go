// Package rank orders candidate subsets by price. Price strings come
// from the catalog in free form ("Desde 25.000 COP", "Gratis", "—"), so
// they are parsed into comparable integers first.
package rank

import (
	"sort"
	"strconv"
	"strings"

	"github.com/sandevgo/caliando/internal/core"
)

// PriceUnknown marks an unparseable price. Unknown entries sort after
// every genuinely priced item regardless of direction.
const PriceUnknown = int64(-1)

// DefaultLimit is how many ranked entries a reply lists.
const DefaultLimit = 5

// ComparableSource reports whether a candidate's provider carries prices
// that are meaningfully comparable with each other. Price ranking is
// restricted to this subset; mixing providers would compare unrelated
// price semantics.
func ComparableSource(sourceKind string) bool {
	return strings.Contains(strings.ToLower(sourceKind), "civitatis")
}

// ParsePrice converts a free-form price string into an integer amount.
// Any "gratis" wording maps to 0; otherwise every non-digit is stripped
// and the rest parsed, so "25.000 COP" and "$25,000" both become 25000.
// Returns PriceUnknown when no digits remain.
func ParsePrice(s string) int64 {
	lowered := strings.ToLower(s)
	if strings.Contains(lowered, "gratis") || strings.Contains(lowered, "free") {
		return 0
	}

	var digits strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	if digits.Len() == 0 {
		return PriceUnknown
	}
	n, err := strconv.ParseInt(digits.String(), 10, 64)
	if err != nil {
		return PriceUnknown
	}
	return n
}

// Entry pairs a candidate with its fetched price string.
type Entry struct {
	Candidate core.Candidate
	PriceText string
}

// Price returns the parsed amount for the entry.
func (e Entry) Price() int64 {
	return ParsePrice(e.PriceText)
}

// Rank sorts entries by parsed price and returns at most limit of them.
// The sort is stable: ties keep their original (relevance) order, and
// unknown prices always land at the tail.
func Rank(entries []Entry, ascending bool, limit int) []Entry {
	ranked := make([]Entry, len(entries))
	copy(ranked, entries)

	sort.SliceStable(ranked, func(i, j int) bool {
		pi, pj := ranked[i].Price(), ranked[j].Price()
		iUnknown, jUnknown := pi == PriceUnknown, pj == PriceUnknown
		if iUnknown != jUnknown {
			return jUnknown
		}
		if iUnknown {
			return false
		}
		if ascending {
			return pi < pj
		}
		return pi > pj
	})

	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
