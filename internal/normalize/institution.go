// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import "strings"

// institutionStopwords are generic academic filler words that carry no
// identifying signal.
var institutionStopwords = map[string]struct{}{
	"universidad": {},
	"university":  {},
	"college":     {},
	"institute":   {},
	"instituto":   {},
	"institut":    {},
	"facultad":    {},
	"escuela":     {},
	"politecnica": {},
	"autonoma":    {},
	"superior":    {},
	"council":     {},
}

// NormalizeInstitution returns the significant tokens of an institution
// string: lowercased, hyphens split, punctuation and accents stripped,
// stopwords removed.
func NormalizeInstitution(name string) map[string]struct{} {
	s := strings.ReplaceAll(strings.ToLower(name), "-", " ")
	s = Fold(StripPunctuation(s))

	tokens := make(map[string]struct{})
	for _, tok := range strings.Fields(s) {
		if _, stop := institutionStopwords[tok]; stop {
			continue
		}
		tokens[tok] = struct{}{}
	}
	return tokens
}

// InstitutionMatches reports whether candidate shares a significant token
// with query. An empty query never matches.
func InstitutionMatches(query, candidate string) bool {
	q := NormalizeInstitution(query)
	if len(q) == 0 {
		return false
	}
	for tok := range NormalizeInstitution(candidate) {
		if _, ok := q[tok]; ok {
			return true
		}
	}
	return false
}
