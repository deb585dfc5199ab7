// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package journal

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"go.yaml.in/yaml/v3"
)

// --- test helpers ---

func testJournal(t *testing.T) *Journal {
	t.Helper()
	j, err := Open(filepath.Join(t.TempDir(), "journal"))
	if err != nil {
		t.Fatal(err)
	}
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	j.now = func() time.Time { return fixed }
	t.Cleanup(func() { j.Close() })
	return j
}

func record(t *testing.T, j *Journal, e Entry) {
	t.Helper()
	if err := j.RecordDecision(context.Background(), e); err != nil {
		t.Fatal(err)
	}
}

// --- Open ---

func TestOpenCreatesDatabase(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "journal")
	j, err := Open(dir)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer j.Close()

	if _, err := os.Stat(filepath.Join(dir, dbFile)); err != nil {
		t.Errorf("database file missing: %v", err)
	}
	if j.Dir() != dir {
		t.Errorf("Dir() = %q, want %q", j.Dir(), dir)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	j1, err := Open(dir)
	if err != nil {
		t.Fatal(err)
	}
	if err := j1.RecordDecision(context.Background(), Entry{RowKey: "0:Ana", Researcher: "Ana", Kind: KindNone}); err != nil {
		t.Fatal(err)
	}
	j1.Close()

	j2, err := Open(dir)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer j2.Close()
	entries, err := j2.Decisions(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("len(entries) = %d after reopen, want 1", len(entries))
	}
}

// --- RecordDecision / Decisions ---

func TestRecordDecisionUpserts(t *testing.T) {
	j := testJournal(t)
	key := RowKey(3, "Juan Pérez Gómez")

	record(t, j, Entry{RowKey: key, RowIndex: 3, Researcher: "Juan Pérez Gómez", Kind: KindNone, Strategy: "scored"})
	record(t, j, Entry{
		RowKey: key, RowIndex: 3, Researcher: "Juan Pérez Gómez", Kind: KindDOI,
		DOIs: "https://doi.org/10.1000/xyz", Status: "score 3", Score: 3, Strategy: "scored",
	})

	entries, err := j.Decisions(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Fatalf("len(entries) = %d, want 1", len(entries))
	}
	e := entries[0]
	if e.Kind != KindDOI || e.Score != 3 || e.Status != "score 3" || e.DOIs != "https://doi.org/10.1000/xyz" {
		t.Errorf("entry = %+v, want the second decision", e)
	}
	if !e.DecidedAt.Equal(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)) {
		t.Errorf("DecidedAt = %v", e.DecidedAt)
	}
	if key != "3:Juan Pérez Gómez" {
		t.Errorf("RowKey = %q", key)
	}
}

func TestRecordDecisionRequiresKey(t *testing.T) {
	j := testJournal(t)
	if err := j.RecordDecision(context.Background(), Entry{Researcher: "Ana"}); err == nil {
		t.Error("expected error for missing row key")
	}
}

func TestDecisionsFilterAndOrder(t *testing.T) {
	j := testJournal(t)
	record(t, j, Entry{RowKey: "5:C", RowIndex: 5, Researcher: "C", Kind: KindDOI, Status: "PAREJA"})
	record(t, j, Entry{RowKey: "1:A", RowIndex: 1, Researcher: "A", Kind: KindProfile, ProfileURL: "https://scholar.google.com/citations?user=a"})
	record(t, j, Entry{RowKey: "2:B", RowIndex: 2, Researcher: "B", Kind: KindDOI, Status: "REVISA"})
	record(t, j, Entry{RowKey: "4:D", RowIndex: 4, Researcher: "D"})

	all, err := j.Decisions(context.Background(), QueryOptions{})
	if err != nil {
		t.Fatal(err)
	}
	var order []string
	for _, e := range all {
		order = append(order, e.Researcher)
	}
	if got := len(order); got != 4 || order[0] != "A" || order[1] != "B" || order[2] != "D" || order[3] != "C" {
		t.Errorf("order = %v, want [A B D C]", order)
	}
	if all[2].Kind != KindNone {
		t.Errorf("empty kind stored as %q, want %q", all[2].Kind, KindNone)
	}

	dois, err := j.Decisions(context.Background(), QueryOptions{Kind: KindDOI})
	if err != nil {
		t.Fatal(err)
	}
	if len(dois) != 2 {
		t.Errorf("len(doi decisions) = %d, want 2", len(dois))
	}

	review, err := j.Decisions(context.Background(), QueryOptions{Kind: KindDOI, Status: "REVISA"})
	if err != nil {
		t.Fatal(err)
	}
	if len(review) != 1 || review[0].Researcher != "B" {
		t.Errorf("review = %+v, want only B", review)
	}
}

// --- failures and summary ---

func TestFailuresAndSummary(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()

	record(t, j, Entry{RowKey: "0:A", Researcher: "A", Kind: KindProfile})
	record(t, j, Entry{RowKey: "1:B", RowIndex: 1, Researcher: "B", Kind: KindDOI, Status: "score 3"})
	record(t, j, Entry{RowKey: "2:C", RowIndex: 2, Researcher: "C", Kind: KindDOI, Status: "score 3"})
	record(t, j, Entry{RowKey: "3:D", RowIndex: 3, Researcher: "D", Kind: KindNone})

	if err := j.RecordFailure(ctx, "B", "crossref", errors.New("crossref: transport failure: HTTP 503")); err != nil {
		t.Fatal(err)
	}
	if err := j.RecordFailure(ctx, "D", "scholar", nil); err != nil {
		t.Fatal(err)
	}

	failures, err := j.Failures(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(failures) != 2 || failures[0].Service != "crossref" || failures[1].Message != "" {
		t.Errorf("failures = %+v", failures)
	}

	s, err := j.Summary(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if s.Decisions != 4 || s.Failures != 2 {
		t.Errorf("summary totals = %d decisions, %d failures", s.Decisions, s.Failures)
	}
	if s.ByKind[KindDOI] != 2 || s.ByKind[KindProfile] != 1 || s.ByKind[KindNone] != 1 {
		t.Errorf("ByKind = %v", s.ByKind)
	}
	if len(s.ByStatus) != 1 || s.ByStatus["score 3"] != 2 {
		t.Errorf("ByStatus = %v", s.ByStatus)
	}
}

// --- export ---

func TestExportYAMLAndJSON(t *testing.T) {
	j := testJournal(t)
	ctx := context.Background()
	record(t, j, Entry{RowKey: "0:A", Researcher: "A", Kind: KindDOI, DOIs: "https://doi.org/10.1/a", Status: "PAREJA", Strategy: "tiered"})
	if err := j.RecordFailure(ctx, "A", "scholar", errors.New("timeout")); err != nil {
		t.Fatal(err)
	}

	yamlPath, err := j.ExportYAML(ctx)
	if err != nil {
		t.Fatalf("ExportYAML: %v", err)
	}
	data, err := os.ReadFile(yamlPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromYAML Export
	if err := yaml.Unmarshal(data, &fromYAML); err != nil {
		t.Fatalf("parsing export.yaml: %v", err)
	}
	if len(fromYAML.Decisions) != 1 || fromYAML.Decisions[0].Status != "PAREJA" {
		t.Errorf("yaml decisions = %+v", fromYAML.Decisions)
	}
	if fromYAML.Summary.Failures != 1 {
		t.Errorf("yaml summary = %+v", fromYAML.Summary)
	}

	jsonPath, err := j.ExportJSON(ctx)
	if err != nil {
		t.Fatalf("ExportJSON: %v", err)
	}
	if filepath.Base(jsonPath) != "export.json" {
		t.Errorf("json path = %q", jsonPath)
	}
	data, err = os.ReadFile(jsonPath)
	if err != nil {
		t.Fatal(err)
	}
	var fromJSON Export
	if err := json.Unmarshal(data, &fromJSON); err != nil {
		t.Fatalf("parsing export.json: %v", err)
	}
	if len(fromJSON.Failures) != 1 || fromJSON.Failures[0].Message != "timeout" {
		t.Errorf("json failures = %+v", fromJSON.Failures)
	}
}
