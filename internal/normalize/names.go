// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize canonicalizes person names and institution strings into
// comparable tokens. Comparisons across the matcher are case-, accent- and
// hyphen-insensitive; every helper here folds its input the same way.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// Fold lowercases s and strips combining marks ("Acín" -> "acin").
func Fold(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, strings.ToLower(s))
	if err != nil {
		return strings.ToLower(s)
	}
	return out
}

// StripPunctuation removes everything that is not a letter, digit,
// underscore or whitespace.
func StripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsSpace(r) || r == '_' || unicode.Is(unicode.Mn, r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ParseSpanishName splits fullName on whitespace and decomposes it by the
// Spanish convention: the first token is the given name, the second-to-last
// the paternal surname and the last the maternal surname. Tokens between
// the first and the paternal surname are dropped. Two-token names have no
// maternal surname; single-token names have no surnames at all.
func ParseSpanishName(fullName string) types.PersonName {
	parts := strings.Fields(strings.ToLower(fullName))
	name := types.PersonName{RawFullName: fullName}

	switch {
	case len(parts) == 0:
	case len(parts) == 1:
		name.GivenNames = []string{parts[0]}
	case len(parts) == 2:
		name.GivenNames = []string{parts[0]}
		name.PaternalSurname = parts[1]
	default:
		name.GivenNames = []string{parts[0]}
		name.PaternalSurname = parts[len(parts)-2]
		name.MaternalSurname = parts[len(parts)-1]
	}
	return name
}

// NameVariations produces the loose forms of fullName used by the
// token-presence matcher: the full lowercase name, the surnames joined by
// a space, the surnames joined by a hyphen, and the last surname alone.
// Duplicates are removed; order is stable.
func NameVariations(fullName string) []string {
	parts := strings.Fields(strings.ToLower(fullName))
	if len(parts) == 0 {
		return nil
	}

	variations := []string{strings.Join(parts, " ")}
	if len(parts) >= 2 {
		surnames := parts[1:]
		variations = append(variations, strings.Join(surnames, " "))
		if len(surnames) > 1 {
			variations = append(variations, strings.Join(surnames, "-"))
			variations = append(variations, surnames[len(surnames)-1])
		}
	}
	return dedupe(variations)
}

// TokenizeNameFields joins fields, strips accents, splits hyphenated parts,
// drops punctuation and returns the lowercase tokens in order.
// TokenizeNameFields("Rebeca", "Acín-Pérez") returns [rebeca acin perez].
func TokenizeNameFields(fields ...string) []string {
	joined := Fold(strings.Join(fields, " "))
	joined = strings.ReplaceAll(joined, "-", " ")
	return strings.Fields(StripPunctuation(joined))
}

// TokenSet returns tokens as a set.
func TokenSet(tokens []string) map[string]struct{} {
	set := make(map[string]struct{}, len(tokens))
	for _, t := range tokens {
		set[t] = struct{}{}
	}
	return set
}

func dedupe(items []string) []string {
	seen := make(map[string]bool, len(items))
	out := items[:0]
	for _, s := range items {
		if seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}
