// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package enrich walks a researcher roster row by row, looks each person
// up in the configured services and writes the outcome back into the
// roster: a Scholar profile link when one is found, otherwise the DOIs and
// status chosen by the ranking strategy, otherwise empty cells.
//
// The driver is sequential. Service failures are recoverable: they are
// logged, journaled and treated as empty results for that row.
package enrich

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/journal"
	"github.com/pdiddy/scholar-match/internal/match"
	"github.com/pdiddy/scholar-match/internal/profile"
	"github.com/pdiddy/scholar-match/internal/rank"
	"github.com/pdiddy/scholar-match/internal/roster"
	"github.com/pdiddy/scholar-match/internal/search"
	"github.com/pdiddy/scholar-match/pkg/types"
)

// Recorder receives row decisions and service failures. *journal.Journal
// implements it.
type Recorder interface {
	RecordDecision(ctx context.Context, e journal.Entry) error
	RecordFailure(ctx context.Context, researcher, service string, cause error) error
}

// Deps are the collaborators of a run. Profiles and Journal may be nil.
type Deps struct {
	Bibliographic search.BibliographicSource
	Profiles      search.ProfileSource
	Resolver      profile.Resolver
	Journal       Recorder
	Log           *zap.Logger

	// Sleep waits between rows; nil uses a context-aware timer.
	Sleep func(ctx context.Context, d time.Duration) error
}

// Summary counts what a run did.
type Summary struct {
	Processed  int `json:"processed" yaml:"processed"`
	Skipped    int `json:"skipped" yaml:"skipped"`
	Profiles   int `json:"profiles" yaml:"profiles"`
	DOIMatches int `json:"doi_matches" yaml:"doi_matches"`
	NoMatch    int `json:"no_match" yaml:"no_match"`
	Failures   int `json:"failures" yaml:"failures"`
}

// Outcome is the result of one external lookup: data, or the recoverable
// failure that left it empty.
type Outcome[T any] struct {
	Data T
	Err  error
}

// Failed reports whether the lookup failed.
func (o Outcome[T]) Failed() bool { return o.Err != nil }

// RowResult is the decision reached for one roster row.
type RowResult struct {
	Row      int
	Target   types.Target
	Profile  *types.ScholarProfileResult
	Decision types.Decision
	Failures int
}

// Kind classifies the result for the journal.
func (r RowResult) Kind() journal.Kind {
	switch {
	case r.Profile != nil:
		return journal.KindProfile
	case r.Decision.Found():
		return journal.KindDOI
	default:
		return journal.KindNone
	}
}

// Run enriches every pending row of t. Rows with an empty name, or whose
// profile or DOI cell is already filled, are skipped. The roster is saved
// every cfg.SaveInterval processed rows and once more at the end, including
// when ctx is cancelled, in which case ctx.Err() is returned alongside the
// summary.
func Run(ctx context.Context, t roster.Table, deps Deps, cfg types.EnrichConfig) (Summary, error) {
	var sum Summary
	if deps.Bibliographic == nil {
		return sum, fmt.Errorf("no bibliographic source configured")
	}
	if cfg.Strategy == "" {
		cfg.Strategy = types.StrategyScored
	}
	if !cfg.Strategy.Valid() {
		return sum, fmt.Errorf("unknown strategy %q", cfg.Strategy)
	}
	log := deps.Log
	if log == nil {
		log = zap.NewNop()
	}
	sleep := deps.Sleep
	if sleep == nil {
		sleep = sleepCtx
	}
	cols := cfg.Columns

	if err := roster.RequireColumns(t, cols.Name); err != nil {
		return sum, err
	}
	if err := t.EnsureColumns(cols.Profile, cols.DOI, cols.Status); err != nil {
		return sum, fmt.Errorf("adding output columns: %w", err)
	}

	log.Info("enrichment started",
		zap.Int("rows", t.Len()),
		zap.String("strategy", string(cfg.Strategy)),
		zap.String("source", deps.Bibliographic.Name()),
		zap.Bool("profiles", deps.Profiles != nil && !cfg.SkipProfile),
	)

	var runErr error
	for row := 0; row < t.Len(); row++ {
		if err := ctx.Err(); err != nil {
			runErr = err
			break
		}
		if cfg.Limit > 0 && sum.Processed >= cfg.Limit {
			break
		}

		name := t.Get(row, cols.Name)
		if name == "" || t.Get(row, cols.Profile) != "" || t.Get(row, cols.DOI) != "" {
			sum.Skipped++
			continue
		}

		if sum.Processed > 0 && cfg.RowDelay > 0 {
			if err := sleep(ctx, cfg.RowDelay); err != nil {
				runErr = err
				break
			}
		}

		target := match.NewTarget(name, t.Get(row, cols.Institution), ParseYear(t.Get(row, cols.Year)))
		rowLog := log.With(zap.Int("row", row), zap.String("researcher", target.FullName))

		res := processRow(ctx, target, deps, cfg, rowLog)
		if err := ctx.Err(); err != nil {
			// Lookups cut short by cancellation are not a verdict.
			runErr = err
			break
		}
		res.Row = row
		if err := writeRow(t, row, cols, res); err != nil {
			runErr = fmt.Errorf("writing row %d: %w", row, err)
			break
		}
		record(ctx, deps.Journal, res, cfg.Strategy, rowLog)

		sum.Processed++
		sum.Failures += res.Failures
		switch res.Kind() {
		case journal.KindProfile:
			sum.Profiles++
		case journal.KindDOI:
			sum.DOIMatches++
		default:
			sum.NoMatch++
		}

		if cfg.SaveInterval > 0 && sum.Processed%cfg.SaveInterval == 0 {
			if err := t.Save(); err != nil {
				return sum, fmt.Errorf("saving roster: %w", err)
			}
			log.Info("progress saved", zap.Int("processed", sum.Processed))
		}
	}

	if err := t.Save(); err != nil {
		return sum, errors.Join(runErr, fmt.Errorf("saving roster: %w", err))
	}
	log.Info("enrichment finished",
		zap.Int("processed", sum.Processed),
		zap.Int("skipped", sum.Skipped),
		zap.Int("profiles", sum.Profiles),
		zap.Int("doi_matches", sum.DOIMatches),
		zap.Int("no_match", sum.NoMatch),
		zap.Int("failures", sum.Failures),
	)
	return sum, runErr
}

// processRow decides one researcher: profile first, then DOIs.
func processRow(ctx context.Context, target types.Target, deps Deps, cfg types.EnrichConfig, log *zap.Logger) RowResult {
	res := RowResult{Target: target}

	if deps.Profiles != nil && !cfg.SkipProfile {
		out := lookupProfiles(ctx, deps.Profiles, target.FullName)
		if out.Failed() {
			res.Failures++
			failure(ctx, deps.Journal, target.FullName, "scholar", out.Err, log)
		}
		if p, ok := deps.Resolver.Resolve(target.FullName, out.Data); ok {
			log.Info("profile found", zap.String("url", p.URL))
			res.Profile = &p
			return res
		}
		log.Info("no profile found")
	}

	out := lookupRecords(ctx, deps.Bibliographic, target.FullName)
	if out.Failed() {
		res.Failures++
		failure(ctx, deps.Journal, target.FullName, deps.Bibliographic.Name(), out.Err, log)
	}

	// The strategy was validated before the loop.
	res.Decision, _ = rank.Rank(out.Data, target, cfg.Strategy)
	if res.Decision.Found() {
		log.Info("doi match", zap.String("dois", res.Decision.DOIs()), zap.String("status", res.Decision.StatusLabel()))
	} else {
		log.Info("no doi match", zap.Int("records", len(out.Data)))
	}
	return res
}

func lookupProfiles(ctx context.Context, src search.ProfileSource, name string) Outcome[[]types.SearchEntry] {
	entries, err := src.SearchProfiles(ctx, name)
	return Outcome[[]types.SearchEntry]{Data: entries, Err: err}
}

func lookupRecords(ctx context.Context, src search.BibliographicSource, name string) Outcome[[]types.BibliographicRecord] {
	records, err := src.SearchAuthor(ctx, name)
	return Outcome[[]types.BibliographicRecord]{Data: records, Err: err}
}

// writeRow stores the row's result. A row with neither a profile nor a DOI
// match gets both DOI cells cleared.
func writeRow(t roster.Table, row int, cols types.RosterColumns, res RowResult) error {
	if res.Profile != nil {
		return t.Set(row, cols.Profile, res.Profile.URL)
	}
	if err := t.Set(row, cols.DOI, res.Decision.DOIs()); err != nil {
		return err
	}
	return t.Set(row, cols.Status, res.Decision.StatusLabel())
}

func record(ctx context.Context, rec Recorder, res RowResult, strategy types.Strategy, log *zap.Logger) {
	if rec == nil {
		return
	}
	e := journal.Entry{
		RowKey:     journal.RowKey(res.Row, res.Target.FullName),
		RowIndex:   res.Row,
		Researcher: res.Target.FullName,
		Kind:       res.Kind(),
	}
	if res.Profile != nil {
		e.ProfileURL = res.Profile.URL
	} else {
		e.Strategy = string(res.Decision.Strategy)
		if e.Strategy == "" {
			e.Strategy = string(strategy)
		}
		e.DOIs = res.Decision.DOIs()
		e.Status = res.Decision.StatusLabel()
		if len(res.Decision.Matches) > 0 {
			e.Score = res.Decision.Matches[0].Score
		}
	}
	if err := rec.RecordDecision(ctx, e); err != nil {
		log.Warn("journal write failed", zap.Error(err))
	}
}

func failure(ctx context.Context, rec Recorder, researcher, service string, cause error, log *zap.Logger) {
	log.Warn("lookup failed", zap.String("service", service), zap.Error(cause))
	if rec == nil {
		return
	}
	if err := rec.RecordFailure(ctx, researcher, service, cause); err != nil {
		log.Warn("journal write failed", zap.Error(err))
	}
}

const maxYear = 9999

// ParseYear reads a year cell written as an integer ("2015") or as a
// spreadsheet float ("2015.0"). Anything else, including values outside
// 0..9999, yields 0 (unknown).
func ParseYear(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if y, err := strconv.Atoi(s); err == nil {
		if y < 0 || y > maxYear {
			return 0
		}
		return y
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > maxYear {
		return 0
	}
	return int(f)
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
