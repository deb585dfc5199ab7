// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package rank

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/scholar-match/pkg/types"
)

// FormatTable writes a decision as a human-readable table to w.
func FormatTable(d types.Decision, w io.Writer) {
	if !d.Found() {
		fmt.Fprintln(w, "No match found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-20s  %s\n", "Rank", "DOI", "Status", "Score")
	fmt.Fprintln(w, strings.Repeat("-", 86))

	for i, m := range d.Matches {
		status := string(m.Status)
		if status == "" {
			status = "-"
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-20s  %d\n", i+1, truncate(m.DOI, 50), status, m.Score)
	}

	fmt.Fprintf(w, "\n%d match(es), strategy %s, status %q\n", len(d.Matches), d.Strategy, d.StatusLabel())
}

// FormatJSON writes a decision as indented JSON to w.
func FormatJSON(d types.Decision, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(d)
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
