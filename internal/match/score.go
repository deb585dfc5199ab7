// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package match

import (
	"github.com/pdiddy/scholar-match/internal/normalize"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// Signals records which of the scoring signals held for a record.
type Signals struct {
	Name        bool
	Institution bool
	Year        bool
}

// Score converts signals into the additive similarity score.
func (s Signals) Score() int {
	if !s.Name {
		return types.RejectScore
	}
	score := 1
	if s.Institution {
		score++
	}
	if s.Year {
		score++
	}
	return score
}

// Status maps signals onto the roster status labels.
func (s Signals) Status() types.MatchStatus {
	switch {
	case !s.Name:
		return types.StatusNone
	case s.Institution && s.Year:
		return types.StatusStrongMatch
	case s.Institution:
		return types.StatusNameAndInstitution
	default:
		return types.StatusNeedsReview
	}
}

// ScoreSignals evaluates a record with the combined-surname matcher. The
// institution signal holds when any author affiliation or the publisher
// matches the target institution; the year signal holds when the record
// was created within types.YearWindow years of the scholarship year.
// Neither is evaluated when no author matches the name.
func ScoreSignals(rec types.BibliographicRecord, target types.Target) Signals {
	var s Signals
	for _, a := range rec.Authors {
		if MatchesSpanishName(a, target.Name) {
			s.Name = true
			break
		}
	}
	if !s.Name {
		return s
	}
	s.Institution = recordInstitutionMatches(rec, target.Institution)
	s.Year = target.WithinYearWindow(rec.CreatedYear)
	return s
}

// ComputeSimilarityScore scores a record against the target:
// types.RejectScore when no author matches the combined-surname matcher,
// otherwise 1 plus one point each for the institution and year signals.
func ComputeSimilarityScore(rec types.BibliographicRecord, target types.Target) int {
	return ScoreSignals(rec, target).Score()
}

// EvaluateTiered classifies a record with the token-presence matcher.
// Records missing a DOI, a publication year or authors are skipped and
// come back with types.StatusNone. The institution signal only counts on
// an author that matched the name, or on the publisher. The returned
// score counts the signals that held and is informational only.
func EvaluateTiered(rec types.BibliographicRecord, target types.Target) types.MatchResult {
	if rec.DOI == "" || rec.PublicationYear == 0 || len(rec.Authors) == 0 {
		return types.MatchResult{Status: types.StatusNone}
	}

	nameMatched, instMatched := false, false
	for _, a := range rec.Authors {
		if !MatchesTokenPresence(a, target.FullName) {
			continue
		}
		nameMatched = true
		if instMatched {
			continue
		}
		for _, aff := range a.Affiliations {
			if normalize.InstitutionMatches(target.Institution, aff) {
				instMatched = true
				break
			}
		}
		if !instMatched && normalize.InstitutionMatches(target.Institution, rec.Publisher) {
			instMatched = true
		}
	}

	if !nameMatched {
		return types.MatchResult{Status: types.StatusNone}
	}

	sig := Signals{
		Name:        true,
		Institution: instMatched,
		Year:        target.WithinYearWindow(rec.PublicationYear),
	}
	return types.MatchResult{Status: sig.Status(), DOI: rec.DOIURL(), Score: sig.Score()}
}

func recordInstitutionMatches(rec types.BibliographicRecord, institution string) bool {
	for _, a := range rec.Authors {
		for _, aff := range a.Affiliations {
			if normalize.InstitutionMatches(institution, aff) {
				return true
			}
		}
	}
	return normalize.InstitutionMatches(institution, rec.Publisher)
}
