// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strconv"
	"strings"
)

// MatchStatus labels how strongly a record matched the target. The string
// values are the labels written into the roster's status column.
type MatchStatus string

const (
	// StatusStrongMatch: name, institution and year all align.
	StatusStrongMatch MatchStatus = "PAREJA"
	// StatusNameAndInstitution: name and institution align, year does not.
	StatusNameAndInstitution MatchStatus = "nombre+institucion"
	// StatusNeedsReview: only the name matched.
	StatusNeedsReview MatchStatus = "REVISA"
	// StatusLoose: token-overlap fallback, no strict name match.
	StatusLoose MatchStatus = "loose search"
	// StatusNone: the record does not match.
	StatusNone MatchStatus = ""
)

// RejectScore is the similarity score of a record whose authors do not
// match the target name at all.
const RejectScore = -999

// MatchResult is the outcome of scoring one record against a target.
type MatchResult struct {
	Status MatchStatus `json:"status" yaml:"status"`
	DOI    string      `json:"doi,omitempty" yaml:"doi,omitempty"`
	Score  int         `json:"score" yaml:"score"`
}

// Strategy selects the matching variant and fallback policy used by the
// ranker.
type Strategy string

const (
	// StrategyTiered uses token-presence matching with status tiering and
	// the loose token-overlap fallback. Returns up to three DOIs.
	StrategyTiered Strategy = "tiered"
	// StrategyScored uses the combined-surname matcher with the additive
	// score and exact-token tie-breaker. Returns at most one DOI.
	StrategyScored Strategy = "scored"
)

// Valid reports whether s names a known strategy.
func (s Strategy) Valid() bool {
	return s == StrategyTiered || s == StrategyScored
}

// Decision is the ranker's final answer for one researcher.
type Decision struct {
	Strategy Strategy      `json:"strategy" yaml:"strategy"`
	Matches  []MatchResult `json:"matches,omitempty" yaml:"matches,omitempty"`
}

// Found reports whether the decision selected any DOI.
func (d Decision) Found() bool {
	return len(d.Matches) > 0
}

// DOIs returns the selected DOI URLs joined for a single roster cell.
func (d Decision) DOIs() string {
	dois := make([]string, len(d.Matches))
	for i, m := range d.Matches {
		dois[i] = m.DOI
	}
	return strings.Join(dois, ", ")
}

// StatusLabel returns the value written to the roster's status column.
// Tiered decisions carry their tier label; scored decisions record the
// winning score.
func (d Decision) StatusLabel() string {
	if !d.Found() {
		return ""
	}
	if d.Strategy == StrategyScored {
		return "score " + strconv.Itoa(d.Matches[0].Score)
	}
	return string(d.Matches[0].Status)
}
