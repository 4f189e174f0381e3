// Package textnorm folds inbound chat text into a canonical form so
// keyword and name matching is insensitive to case, accents and
// surrounding whitespace ("Más Baratos " and "mas baratos" compare equal).
package textnorm

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripMarks decomposes to NFD, drops combining marks (accents, tildes
// over vowels) and recomposes. Note ñ loses its tilde too, matching how
// users type in a hurry.
var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lower-cases, trims and strips diacritics. It is idempotent:
// Normalize(Normalize(s)) == Normalize(s).
func Normalize(raw string) string {
	out, _, err := transform.String(stripMarks, raw)
	if err != nil {
		// Malformed input passes through; lower/trim still apply.
		out = raw
	}
	return strings.ToLower(strings.TrimSpace(out))
}
