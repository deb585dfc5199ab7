// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package journal persists the per-row decisions and service failures of
// enrichment runs in a SQLite database, so a run can be audited and
// summarised after the roster has been written.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

const dbFile = "journal.db"

// Kind classifies a row decision.
type Kind string

const (
	KindProfile Kind = "profile"
	KindDOI     Kind = "doi"
	KindNone    Kind = "none"
)

// Entry is one row decision.
type Entry struct {
	RowKey     string    `json:"row_key" yaml:"row_key"`
	RowIndex   int       `json:"row_index" yaml:"row_index"`
	Researcher string    `json:"researcher" yaml:"researcher"`
	Kind       Kind      `json:"kind" yaml:"kind"`
	ProfileURL string    `json:"profile_url,omitempty" yaml:"profile_url,omitempty"`
	DOIs       string    `json:"dois,omitempty" yaml:"dois,omitempty"`
	Status     string    `json:"status,omitempty" yaml:"status,omitempty"`
	Score      int       `json:"score,omitempty" yaml:"score,omitempty"`
	Strategy   string    `json:"strategy,omitempty" yaml:"strategy,omitempty"`
	DecidedAt  time.Time `json:"decided_at" yaml:"decided_at"`
}

// Failure is one recoverable service failure.
type Failure struct {
	ID         int64     `json:"id" yaml:"id"`
	Researcher string    `json:"researcher" yaml:"researcher"`
	Service    string    `json:"service" yaml:"service"`
	Message    string    `json:"message" yaml:"message"`
	OccurredAt time.Time `json:"occurred_at" yaml:"occurred_at"`
}

// RowKey identifies a roster row across runs.
func RowKey(row int, researcher string) string {
	return strconv.Itoa(row) + ":" + researcher
}

// Journal manages the journal SQLite database.
type Journal struct {
	db  *sql.DB
	dir string
	now func() time.Time
}

// Open opens or creates dir/journal.db and its schema.
func Open(dir string) (*Journal, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating journal directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{db: db, dir: dir, now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Dir returns the directory holding the database and its exports.
func (j *Journal) Dir() string { return j.dir }

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS decisions (
			row_key TEXT PRIMARY KEY,
			row_index INTEGER NOT NULL,
			researcher TEXT NOT NULL,
			kind TEXT NOT NULL,
			profile_url TEXT,
			dois TEXT,
			status TEXT,
			score INTEGER,
			strategy TEXT,
			decided_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_decisions_kind ON decisions(kind)`,
		`CREATE TABLE IF NOT EXISTS failures (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			researcher TEXT NOT NULL,
			service TEXT NOT NULL,
			message TEXT NOT NULL,
			occurred_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// RecordDecision upserts the decision for e.RowKey. A zero DecidedAt is
// set to the current time.
func (j *Journal) RecordDecision(ctx context.Context, e Entry) error {
	if e.RowKey == "" {
		return fmt.Errorf("decision for %q has no row key", e.Researcher)
	}
	if e.Kind == "" {
		e.Kind = KindNone
	}
	if e.DecidedAt.IsZero() {
		e.DecidedAt = j.now()
	}

	_, err := j.db.ExecContext(ctx,
		`INSERT INTO decisions (row_key, row_index, researcher, kind, profile_url, dois, status, score, strategy, decided_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(row_key) DO UPDATE SET
			row_index=excluded.row_index, researcher=excluded.researcher, kind=excluded.kind,
			profile_url=excluded.profile_url, dois=excluded.dois, status=excluded.status,
			score=excluded.score, strategy=excluded.strategy, decided_at=excluded.decided_at`,
		e.RowKey, e.RowIndex, e.Researcher, string(e.Kind), e.ProfileURL, e.DOIs, e.Status, e.Score, e.Strategy,
		e.DecidedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording decision for %q: %w", e.Researcher, err)
	}
	return nil
}

// RecordFailure appends a service failure.
func (j *Journal) RecordFailure(ctx context.Context, researcher, service string, cause error) error {
	msg := ""
	if cause != nil {
		msg = cause.Error()
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO failures (researcher, service, message, occurred_at) VALUES (?, ?, ?, ?)`,
		researcher, service, msg, j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording failure for %q: %w", researcher, err)
	}
	return nil
}

// QueryOptions filters Decisions.
type QueryOptions struct {
	Kind   Kind
	Status string
}

// Decisions returns recorded decisions ordered by row index.
func (j *Journal) Decisions(ctx context.Context, opts QueryOptions) ([]Entry, error) {
	query := `SELECT row_key, row_index, researcher, kind, profile_url, dois, status, score, strategy, decided_at
		FROM decisions WHERE 1=1`
	var args []any
	if opts.Kind != "" {
		query += ` AND kind = ?`
		args = append(args, string(opts.Kind))
	}
	if opts.Status != "" {
		query += ` AND status = ?`
		args = append(args, opts.Status)
	}
	query += ` ORDER BY row_index, row_key`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying decisions: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		var kind, decidedAt string
		var profileURL, dois, status, strategy sql.NullString
		var score sql.NullInt64
		if err := rows.Scan(&e.RowKey, &e.RowIndex, &e.Researcher, &kind, &profileURL, &dois, &status, &score, &strategy, &decidedAt); err != nil {
			return nil, fmt.Errorf("scanning decision: %w", err)
		}
		e.Kind = Kind(kind)
		e.ProfileURL = profileURL.String
		e.DOIs = dois.String
		e.Status = status.String
		e.Score = int(score.Int64)
		e.Strategy = strategy.String
		e.DecidedAt, _ = time.Parse(time.RFC3339Nano, decidedAt)
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Failures returns recorded failures in insertion order.
func (j *Journal) Failures(ctx context.Context) ([]Failure, error) {
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, researcher, service, message, occurred_at FROM failures ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("querying failures: %w", err)
	}
	defer rows.Close()

	var failures []Failure
	for rows.Next() {
		var f Failure
		var occurredAt string
		if err := rows.Scan(&f.ID, &f.Researcher, &f.Service, &f.Message, &occurredAt); err != nil {
			return nil, fmt.Errorf("scanning failure: %w", err)
		}
		f.OccurredAt, _ = time.Parse(time.RFC3339Nano, occurredAt)
		failures = append(failures, f)
	}
	return failures, rows.Err()
}

// Summary holds journal counts.
type Summary struct {
	Decisions int            `json:"decisions" yaml:"decisions"`
	ByKind    map[Kind]int   `json:"by_kind" yaml:"by_kind"`
	ByStatus  map[string]int `json:"by_status" yaml:"by_status"`
	Failures  int            `json:"failures" yaml:"failures"`
}

// Summary counts decisions per kind and per non-empty status, and failures.
func (j *Journal) Summary(ctx context.Context) (Summary, error) {
	s := Summary{ByKind: make(map[Kind]int), ByStatus: make(map[string]int)}

	rows, err := j.db.QueryContext(ctx, `SELECT kind, COALESCE(status, ''), count(*) FROM decisions GROUP BY kind, status`)
	if err != nil {
		return s, fmt.Errorf("summarising decisions: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var kind, status string
		var n int
		if err := rows.Scan(&kind, &status, &n); err != nil {
			return s, fmt.Errorf("scanning summary: %w", err)
		}
		s.Decisions += n
		s.ByKind[Kind(kind)] += n
		if status != "" {
			s.ByStatus[status] += n
		}
	}
	if err := rows.Err(); err != nil {
		return s, err
	}

	if err := j.db.QueryRowContext(ctx, `SELECT count(*) FROM failures`).Scan(&s.Failures); err != nil {
		return s, fmt.Errorf("counting failures: %w", err)
	}
	return s, nil
}
