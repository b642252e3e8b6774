package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/meur/umaviewer/internal/models"
)

// Store keeps the control panel's run history
type Store struct {
	db *sql.DB
}

// New creates a new Store with SQLite
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return store, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// migrate runs database migrations
func (s *Store) migrate() error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			action TEXT NOT NULL,
			command TEXT NOT NULL,
			status TEXT NOT NULL,
			exit_code INTEGER DEFAULT 0,
			output TEXT DEFAULT '',
			started_at DATETIME NOT NULL,
			finished_at DATETIME
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_started ON runs(started_at)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_action ON runs(action)`,
	}

	for _, m := range migrations {
		if _, err := s.db.Exec(m); err != nil {
			return fmt.Errorf("migration failed: %w", err)
		}
	}

	return nil
}

// CreateRun records a started run
func (s *Store) CreateRun(ctx context.Context, run *models.Run) error {
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, action, command, status, exit_code, output, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Action, run.Command, string(run.Status), run.ExitCode, run.Output, run.StartedAt.UTC())
	return err
}

// FinishRun stores the outcome of a run
func (s *Store) FinishRun(ctx context.Context, id string, status models.JobStatus, exitCode int, output string, finishedAt time.Time) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE runs SET status = ?, exit_code = ?, output = ?, finished_at = ?
		WHERE id = ?
	`, string(status), exitCode, output, finishedAt.UTC(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("run %s not found", id)
	}
	return nil
}

// GetRun returns a run with its output, or nil if it does not exist
func (s *Store) GetRun(ctx context.Context, id string) (*models.Run, error) {
	var run models.Run
	var status string
	var finished sql.NullTime
	err := s.db.QueryRowContext(ctx, `
		SELECT id, action, command, status, exit_code, output, started_at, finished_at
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &run.Action, &run.Command, &status, &run.ExitCode,
		&run.Output, &run.StartedAt, &finished)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	run.Status = models.JobStatus(status)
	if finished.Valid {
		t := finished.Time
		run.FinishedAt = &t
	}
	return &run, nil
}

// ListRuns returns the most recent runs first, without their output
func (s *Store) ListRuns(ctx context.Context, limit int) ([]models.RunSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, action, status, exit_code, started_at, finished_at
		FROM runs ORDER BY started_at DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []models.RunSummary{}
	for rows.Next() {
		var r models.RunSummary
		var status string
		var finished sql.NullTime
		if err := rows.Scan(&r.ID, &r.Action, &status, &r.ExitCode, &r.StartedAt, &finished); err != nil {
			return nil, err
		}
		r.Status = models.JobStatus(status)
		if finished.Valid {
			t := finished.Time
			r.FinishedAt = &t
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}
