// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/scholar-match/internal/journal"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Summarise the decision journal of past enrich runs",
	Long: `Report prints decision counts per kind and status and the number of
recorded service failures. Use --failures to list the failures, --status to
list the decisions carrying one status (for example REVISA), and --export to
write the whole journal to export.yaml or export.json in the journal directory.`,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().String("journal-dir", "", "decision journal directory (default journal)")
	reportCmd.Flags().String("export", "", "export the journal: yaml or json")
	reportCmd.Flags().String("status", "", "list decisions with this status")
	reportCmd.Flags().Bool("failures", false, "list recorded service failures")

	rootCmd.AddCommand(reportCmd)
}

func runReport(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	j, err := journal.Open(cfg.JournalDir)
	if err != nil {
		return fmt.Errorf("opening journal: %w", err)
	}
	defer j.Close()

	ctx := context.Background()
	format, _ := cmd.Flags().GetString("export")
	switch format {
	case "":
	case "yaml":
		path, err := j.ExportYAML(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	case "json":
		path, err := j.ExportJSON(ctx)
		if err != nil {
			return err
		}
		fmt.Println("Exported to", path)
		return nil
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	if status, _ := cmd.Flags().GetString("status"); status != "" {
		entries, err := j.Decisions(ctx, journal.QueryOptions{Status: status})
		if err != nil {
			return err
		}
		formatDecisions(entries)
		return nil
	}

	if listFailures, _ := cmd.Flags().GetBool("failures"); listFailures {
		failures, err := j.Failures(ctx)
		if err != nil {
			return err
		}
		formatFailures(failures)
		return nil
	}

	s, err := j.Summary(ctx)
	if err != nil {
		return err
	}
	formatSummary(s)
	return nil
}

func formatSummary(s journal.Summary) {
	fmt.Fprintf(os.Stdout, "%d decision(s), %d failure(s)\n\n", s.Decisions, s.Failures)
	for _, k := range []journal.Kind{journal.KindProfile, journal.KindDOI, journal.KindNone} {
		fmt.Fprintf(os.Stdout, "  %-8s  %d\n", k, s.ByKind[k])
	}
	if len(s.ByStatus) == 0 {
		return
	}

	statuses := make([]string, 0, len(s.ByStatus))
	for st := range s.ByStatus {
		statuses = append(statuses, st)
	}
	sort.Strings(statuses)
	fmt.Fprintln(os.Stdout)
	for _, st := range statuses {
		fmt.Fprintf(os.Stdout, "  %-20s  %d\n", st, s.ByStatus[st])
	}
}

func formatDecisions(entries []journal.Entry) {
	if len(entries) == 0 {
		fmt.Println("No decisions found.")
		return
	}
	fmt.Fprintf(os.Stdout, "%-5s  %-30s  %-20s  %s\n", "Row", "Researcher", "Status", "DOIs")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 100))
	for _, e := range entries {
		fmt.Fprintf(os.Stdout, "%-5d  %-30s  %-20s  %s\n", e.RowIndex, clip(e.Researcher, 30), e.Status, e.DOIs)
	}
	fmt.Fprintf(os.Stdout, "\n%d decision(s)\n", len(entries))
}

func formatFailures(failures []journal.Failure) {
	if len(failures) == 0 {
		fmt.Println("No failures recorded.")
		return
	}
	for _, f := range failures {
		fmt.Fprintf(os.Stdout, "%s  %-10s  %-30s  %s\n",
			f.OccurredAt.Format("2006-01-02 15:04:05"), f.Service, clip(f.Researcher, 30), f.Message)
	}
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
