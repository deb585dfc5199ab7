// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/enrich"
	"github.com/pdiddy/scholar-match/internal/journal"
	"github.com/pdiddy/scholar-match/internal/profile"
	"github.com/pdiddy/scholar-match/internal/roster"
	"github.com/pdiddy/scholar-match/internal/search"
	"github.com/pdiddy/scholar-match/pkg/types"
)

var enrichCmd = &cobra.Command{
	Use:   "enrich",
	Short: "Fill Scholar profile and DOI columns for every pending roster row",
	Long: `Enrich walks the roster row by row. Rows whose profile or DOI cell is
already filled are skipped. For each remaining researcher a Scholar profile is
looked up first; when none is found, bibliographic metadata is searched and the
ranking strategy picks the DOIs and status written back into the roster.

The roster is saved every --save-every rows and again on exit, including on
Ctrl-C. Every decision and service failure is recorded in the decision journal.`,
	RunE: runEnrich,
}

func init() {
	enrichCmd.Flags().String("roster", "", "roster file to enrich (.xlsx or .csv)")
	enrichCmd.Flags().String("strategy", "", "matching strategy: scored (default) or tiered")
	enrichCmd.Flags().String("source", "", "bibliographic source: crossref (default), openalex, semanticscholar or all")
	enrichCmd.Flags().Int("save-every", 0, "save the roster every N processed rows (default 10)")
	enrichCmd.Flags().Duration("delay", 0, "delay between processed rows (default 2s)")
	enrichCmd.Flags().Duration("timeout", 0, "per-call HTTP timeout (default 20s)")
	enrichCmd.Flags().Int("limit", 0, "process at most N rows (0 = all)")
	enrichCmd.Flags().Bool("skip-profile", false, "skip Scholar profile lookups")
	enrichCmd.Flags().Bool("strict", false, "require the researcher's name in the profile result")
	enrichCmd.Flags().String("journal-dir", "", "decision journal directory (default journal)")
	_ = enrichCmd.MarkFlagRequired("roster")

	rootCmd.AddCommand(enrichCmd)
}

func runEnrich(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	if flags.Changed("save-every") {
		cfg.Enrich.SaveInterval, _ = flags.GetInt("save-every")
	}
	if flags.Changed("delay") {
		cfg.Enrich.RowDelay, _ = flags.GetDuration("delay")
	}
	if flags.Changed("limit") {
		cfg.Enrich.Limit, _ = flags.GetInt("limit")
	}
	if flags.Changed("skip-profile") {
		cfg.Enrich.SkipProfile, _ = flags.GetBool("skip-profile")
	}
	cfg = cfg.WithDefaults()

	rosterPath, _ := flags.GetString("roster")
	table, err := roster.Open(rosterPath)
	if err != nil {
		return err
	}
	defer table.Close()

	j, err := journal.Open(cfg.JournalDir)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	bib, err := newBibliographicSource(cfg, logger)
	if err != nil {
		return err
	}
	profiles := newProfileSourceOrNil(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log := logger.With(zap.String("roster", rosterPath))
	sum, err := enrich.Run(ctx, table, enrich.Deps{
		Bibliographic: bib,
		Profiles:      profiles,
		Resolver:      profile.Resolver{Strict: cfg.Profile.Strict},
		Journal:       j,
		Log:           log,
	}, cfg.Enrich)

	fmt.Fprintf(os.Stdout, "Processed %d, skipped %d: %d profile(s), %d DOI match(es), %d without match, %d lookup failure(s)\n",
		sum.Processed, sum.Skipped, sum.Profiles, sum.DOIMatches, sum.NoMatch, sum.Failures)
	fmt.Fprintf(os.Stdout, "Journal: %s\n", j.Dir())

	if errors.Is(err, context.Canceled) {
		log.Warn("interrupted; progress saved")
		return nil
	}
	return err
}

// newProfileSourceOrNil returns the Scholar client, or nil when profile
// lookups are off. A source that cannot be built is logged and skipped so
// the DOI search still runs.
func newProfileSourceOrNil(cfg types.Config) search.ProfileSource {
	if cfg.Enrich.SkipProfile {
		return nil
	}
	src, err := newProfileSource(cfg, logger)
	if err != nil {
		logger.Warn("profile lookups disabled", zap.Error(err))
		return nil
	}
	return src
}
