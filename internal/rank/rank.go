// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package rank selects the DOIs to report for a researcher from a batch of
// bibliographic records. Two policies are available, chosen by
// types.Strategy:
//
//   - tiered: token-presence matching, records bucketed by status, up to
//     three DOIs from the best tier, with a loose token-overlap fallback.
//   - scored: combined-surname matching with an additive score, a single
//     DOI above the threshold, and an exact-token tie-breaker.
package rank

import (
	"fmt"
	"sort"

	"github.com/pdiddy/scholar-match/internal/match"
	"github.com/pdiddy/scholar-match/internal/normalize"
	"github.com/pdiddy/scholar-match/pkg/types"
)

const (
	// MaxTieredResults caps the DOIs reported by the tiered policy.
	MaxTieredResults = 3

	// ScoreThreshold is the minimum score the scored policy accepts
	// without falling back to the exact-token tie-breaker.
	ScoreThreshold = 2

	// fallbackScore is reported for tie-breaker selections.
	fallbackScore = 1
)

// Rank applies the policy named by strategy to records and returns the
// decision for target.
func Rank(records []types.BibliographicRecord, target types.Target, strategy types.Strategy) (types.Decision, error) {
	switch strategy {
	case types.StrategyTiered:
		return Tiered(records, target), nil
	case types.StrategyScored, "":
		return Scored(records, target), nil
	default:
		return types.Decision{}, fmt.Errorf("unknown strategy %q: use %s or %s", strategy, types.StrategyTiered, types.StrategyScored)
	}
}

// tierOrder is the preference order of the tiered policy.
var tierOrder = []types.MatchStatus{
	types.StatusStrongMatch,
	types.StatusNameAndInstitution,
	types.StatusNeedsReview,
}

// Tiered evaluates every record, picks the best non-empty tier and keeps
// its first MaxTieredResults DOIs in source order. When no record matches
// the name at all it falls back to Loose.
func Tiered(records []types.BibliographicRecord, target types.Target) types.Decision {
	tiers := make(map[types.MatchStatus][]types.MatchResult)
	for _, rec := range records {
		res := match.EvaluateTiered(rec, target)
		if res.Status == types.StatusNone {
			continue
		}
		tiers[res.Status] = append(tiers[res.Status], res)
	}

	for _, status := range tierOrder {
		if results := tiers[status]; len(results) > 0 {
			return types.Decision{
				Strategy: types.StrategyTiered,
				Matches:  capResults(results, MaxTieredResults),
			}
		}
	}

	return types.Decision{
		Strategy: types.StrategyTiered,
		Matches:  Loose(records, target.FullName),
	}
}

// Loose ranks every DOI-bearing record by its best per-author token
// overlap with fullName, breaking ties by the search service's relevance
// score, and returns up to MaxTieredResults results with status
// types.StatusLoose. Records with zero overlap are never returned.
func Loose(records []types.BibliographicRecord, fullName string) []types.MatchResult {
	tokens := normalize.TokenizeNameFields(fullName)
	if len(tokens) == 0 {
		return nil
	}

	type scored struct {
		rec     types.BibliographicRecord
		overlap int
	}
	var candidates []scored
	for _, rec := range records {
		if rec.DOI == "" {
			continue
		}
		best := 0
		for _, a := range rec.Authors {
			if n := match.TokenOverlap(tokens, a); n > best {
				best = n
			}
		}
		if best == 0 {
			continue
		}
		candidates = append(candidates, scored{rec: rec, overlap: best})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].overlap != candidates[j].overlap {
			return candidates[i].overlap > candidates[j].overlap
		}
		return candidates[i].rec.RelevanceScore > candidates[j].rec.RelevanceScore
	})

	var results []types.MatchResult
	for _, c := range candidates {
		if len(results) >= MaxTieredResults {
			break
		}
		results = append(results, types.MatchResult{
			Status: types.StatusLoose,
			DOI:    c.rec.DOIURL(),
			Score:  c.overlap,
		})
	}
	return results
}

// Scored computes the similarity score of every DOI-bearing record and
// returns the highest-scoring one at or above ScoreThreshold, the first
// seen winning ties. Otherwise it returns the first record with an author
// whose name tokens exactly match the target, at score 1. Otherwise the
// decision is empty.
func Scored(records []types.BibliographicRecord, target types.Target) types.Decision {
	d := types.Decision{Strategy: types.StrategyScored}

	bestIdx := -1
	var best match.Signals
	for i, rec := range records {
		if rec.DOI == "" {
			continue
		}
		sig := match.ScoreSignals(rec, target)
		if sig.Score() >= ScoreThreshold && (bestIdx < 0 || sig.Score() > best.Score()) {
			bestIdx, best = i, sig
		}
	}
	if bestIdx >= 0 {
		d.Matches = []types.MatchResult{{
			Status: best.Status(),
			DOI:    records[bestIdx].DOIURL(),
			Score:  best.Score(),
		}}
		return d
	}

	for _, rec := range records {
		if rec.DOI == "" {
			continue
		}
		for _, a := range rec.Authors {
			if match.NameTokensExactMatch(a, target.FullName) {
				d.Matches = []types.MatchResult{{
					Status: types.StatusNeedsReview,
					DOI:    rec.DOIURL(),
					Score:  fallbackScore,
				}}
				return d
			}
		}
	}
	return d
}

func capResults(results []types.MatchResult, n int) []types.MatchResult {
	if len(results) > n {
		return results[:n]
	}
	return results
}
