// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/scholar-match/internal/match"
	"github.com/pdiddy/scholar-match/internal/rank"
	"github.com/pdiddy/scholar-match/internal/search"
	"github.com/pdiddy/scholar-match/pkg/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Pick the DOIs for one researcher",
	Long: `Match searches bibliographic metadata for one researcher and prints the
decision the ranking strategy reaches, as a table or as JSON.

Use --save to keep the fetched records in a lookup file and --from to re-rank a
saved lookup without querying the service again. --csl prints the candidate
records as CSL YAML instead of the decision.`,
	RunE: runMatch,
}

func init() {
	matchCmd.Flags().String("name", "", "researcher full name")
	matchCmd.Flags().Int("year", 0, "scholarship year (0 = unknown)")
	matchCmd.Flags().String("institution", "", "researcher institution")
	matchCmd.Flags().String("strategy", "", "matching strategy: scored (default) or tiered")
	matchCmd.Flags().String("source", "", "bibliographic source: crossref (default), openalex, semanticscholar or all")
	matchCmd.Flags().Duration("timeout", 0, "per-call HTTP timeout (default 20s)")
	matchCmd.Flags().String("save", "", "write the fetched records to a lookup file")
	matchCmd.Flags().String("from", "", "rank the records of a saved lookup file")
	matchCmd.Flags().Bool("json", false, "output the decision as JSON")
	matchCmd.Flags().Bool("csl", false, "output the candidate records as CSL YAML")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	flags := cmd.Flags()
	params := search.LookupParams{Source: cfg.Bibliographic.Source}
	params.Name, _ = flags.GetString("name")
	params.Institution, _ = flags.GetString("institution")
	params.Year, _ = flags.GetInt("year")

	var records []types.BibliographicRecord
	if from, _ := flags.GetString("from"); from != "" {
		lf, err := search.ReadLookupFile(from)
		if err != nil {
			return err
		}
		params = mergeLookupParams(lf.Lookup, params, flags.Changed)
		records = lf.Records
	} else {
		if params.Name == "" {
			return fmt.Errorf("provide --name or --from")
		}
		src, err := newBibliographicSource(cfg, logger)
		if err != nil {
			return err
		}
		records, err = src.SearchAuthor(context.Background(), params.Name)
		if err != nil {
			return err
		}
		logger.Info("records fetched", zap.String("source", src.Name()), zap.Int("records", len(records)))
	}

	if save, _ := flags.GetString("save"); save != "" {
		if err := search.WriteLookupFile(save, params, records); err != nil {
			return err
		}
		logger.Info("lookup saved", zap.String("path", save))
	}

	if csl, _ := flags.GetBool("csl"); csl {
		return search.FormatCSL(records, os.Stdout)
	}

	target := match.NewTarget(params.Name, params.Institution, params.Year)
	decision, err := rank.Rank(records, target, cfg.Enrich.Strategy)
	if err != nil {
		return err
	}

	if asJSON, _ := flags.GetBool("json"); asJSON {
		return rank.FormatJSON(decision, os.Stdout)
	}
	rank.FormatTable(decision, os.Stdout)
	return nil
}

// mergeLookupParams lets explicitly set flags override the identity stored
// in a saved lookup.
func mergeLookupParams(saved, flags search.LookupParams, changed func(string) bool) search.LookupParams {
	if changed("name") {
		saved.Name = flags.Name
	}
	if changed("institution") {
		saved.Institution = flags.Institution
	}
	if changed("year") {
		saved.Year = flags.Year
	}
	return saved
}
