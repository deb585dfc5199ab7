// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package match decides whether a bibliographic record's author list
// contains a target researcher and how strongly. Two name matchers are
// provided: a permissive token-presence matcher and a stricter
// combined-surname matcher for Spanish two-surname names. Both feed the
// ranker in internal/rank.
package match

import (
	"strings"

	"github.com/pdiddy/scholar-match/internal/normalize"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// MatchesTokenPresence reports whether, for any variation of fullName,
// every token of that variation occurs as a substring of the author's
// combined given, family and literal fields. Hyphens count as spaces on
// both sides.
func MatchesTokenPresence(author types.AuthorEntry, fullName string) bool {
	authorName := strings.TrimSpace(hyphensToSpaces(normalize.Fold(author.Given + " " + author.Family + " " + author.Literal)))
	if authorName == "" {
		return false
	}

	target := strings.Join(normalize.TokenizeNameFields(fullName), " ")
	for _, variation := range normalize.NameVariations(target) {
		if containsAll(authorName, strings.Fields(variation)) {
			return true
		}
	}
	return false
}

// MatchesSpanishName reports whether the author carries the target's first
// given name and at least one of its surnames. The given name must occur
// in the author's given field; a surname token must occur in the author's
// family field. Hyphens are split on both sides. Names without a paternal
// surname never match.
func MatchesSpanishName(author types.AuthorEntry, name types.PersonName) bool {
	if !name.HasSurname() {
		return false
	}
	first := strings.Join(strings.Fields(hyphensToSpaces(normalize.Fold(name.FirstGiven()))), " ")
	given := strings.Join(strings.Fields(hyphensToSpaces(normalize.Fold(author.Given))), " ")
	if first == "" || !strings.Contains(given, first) {
		return false
	}

	family := hyphensToSpaces(normalize.Fold(author.Family))
	if strings.TrimSpace(family) == "" {
		return false
	}
	combined := hyphensToSpaces(normalize.Fold(name.PaternalSurname + " " + name.MaternalSurname))
	for _, tok := range strings.Fields(combined) {
		if strings.Contains(family, tok) {
			return true
		}
	}
	return false
}

// NameTokensExactMatch reports whether the author's given and family
// tokens form exactly the same set as the tokens of fullName. It is brittle
// to any extra or missing token and is only used as a last resort.
func NameTokensExactMatch(author types.AuthorEntry, fullName string) bool {
	want := normalize.TokenSet(normalize.TokenizeNameFields(fullName))
	if len(want) == 0 {
		return false
	}
	got := normalize.TokenSet(normalize.TokenizeNameFields(author.Given, author.Family))
	if len(got) != len(want) {
		return false
	}
	for tok := range want {
		if _, ok := got[tok]; !ok {
			return false
		}
	}
	return true
}

// TokenOverlap counts how many of tokens occur as substrings of the
// author's given or family field.
func TokenOverlap(tokens []string, author types.AuthorEntry) int {
	given := hyphensToSpaces(normalize.Fold(author.Given))
	family := hyphensToSpaces(normalize.Fold(author.Family))

	n := 0
	for _, tok := range tokens {
		if strings.Contains(given, tok) || strings.Contains(family, tok) {
			n++
		}
	}
	return n
}

func containsAll(s string, tokens []string) bool {
	if len(tokens) == 0 {
		return false
	}
	for _, tok := range tokens {
		if !strings.Contains(s, tok) {
			return false
		}
	}
	return true
}

func hyphensToSpaces(s string) string {
	return strings.ReplaceAll(s, "-", " ")
}

// NewTarget builds the identity for one roster row.
func NewTarget(fullName, institution string, year int) types.Target {
	fullName = strings.TrimSpace(fullName)
	return types.Target{
		FullName:    fullName,
		Name:        normalize.ParseSpanishName(fullName),
		Institution: strings.TrimSpace(institution),
		Year:        year,
	}
}
