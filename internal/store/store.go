// Package store persists run history: one row per run plus one row per
// profile outcome. Recording is best effort and never fails a run.
package store

import (
	"context"
	"database/sql"
	"time"

	_ "modernc.org/sqlite"

	"github.com/boriloo/pythonScriptV2/internal/models"
)

type Store struct{ db *sql.DB }

func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	return &Store{db: db}, nil
}

func (s *Store) Close() { _ = s.db.Close() }

func (s *Store) Migrate(ctx context.Context) error {
	stmt := `
CREATE TABLE IF NOT EXISTS runs (
	id TEXT PRIMARY KEY,
	dry_run INTEGER NOT NULL,
	mode TEXT NOT NULL,
	total_sent INTEGER NOT NULL,
	total_skipped INTEGER NOT NULL,
	total_errors INTEGER NOT NULL,
	started_at DATETIME NOT NULL,
	ended_at DATETIME NOT NULL
);
CREATE TABLE IF NOT EXISTS outcomes (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	run_id TEXT NOT NULL,
	bucket TEXT NOT NULL,
	name TEXT,
	title TEXT,
	url TEXT,
	message TEXT,
	detail TEXT,
	created_at DATETIME NOT NULL,
	FOREIGN KEY(run_id) REFERENCES runs(id)
);
`
	_, err := s.db.ExecContext(ctx, stmt)
	return err
}

// RunRecord is one row of run history.
type RunRecord struct {
	ID           string    `json:"id"`
	DryRun       bool      `json:"dry_run"`
	Mode         string    `json:"mode"`
	TotalSent    int       `json:"totalSent"`
	TotalSkipped int       `json:"totalSkipped"`
	TotalErrors  int       `json:"totalErrors"`
	StartedAt    time.Time `json:"started_at"`
	EndedAt      time.Time `json:"ended_at"`
}

// RecordRun stores the run summary and every outcome in one transaction.
func (s *Store) RecordRun(ctx context.Context, runID string, startedAt time.Time, res models.RunResult) error {
	now := time.Now()
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO runs (id, dry_run, mode, total_sent, total_skipped, total_errors, started_at, ended_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		runID, res.DryRun, res.Summary.Mode,
		res.Summary.TotalSent, res.Summary.TotalSkipped, res.Summary.TotalErrors,
		startedAt, now,
	); err != nil {
		return err
	}

	insert := func(bucket string, p models.Profile, message, detail string) error {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO outcomes (run_id, bucket, name, title, url, message, detail, created_at)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			runID, bucket, p.Name, p.Title, p.URL, message, detail, now)
		return err
	}
	for _, e := range res.WouldSend {
		if err := insert("would_send", e.Profile, e.MessagePreview, ""); err != nil {
			return err
		}
	}
	for _, p := range res.Sent {
		if err := insert("sent", p, "", ""); err != nil {
			return err
		}
	}
	for _, e := range res.Skipped {
		if err := insert("skipped", e.Profile, "", e.Reason); err != nil {
			return err
		}
	}
	for _, e := range res.Errors {
		if err := insert("errored", e.Profile, "", e.Error); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// RecentRuns returns the newest runs first.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, dry_run, mode, total_sent, total_skipped, total_errors, started_at, ended_at
		 FROM runs ORDER BY started_at DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []RunRecord{}
	for rows.Next() {
		var r RunRecord
		if err := rows.Scan(&r.ID, &r.DryRun, &r.Mode,
			&r.TotalSent, &r.TotalSkipped, &r.TotalErrors,
			&r.StartedAt, &r.EndedAt); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
