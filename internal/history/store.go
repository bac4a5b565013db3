package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"folio/internal/batch"
)

// ErrNotFound is returned when a run ID is unknown.
var ErrNotFound = errors.New("run not found")

// Store manages run history backed by SQLite.
type Store struct {
	db   *sql.DB
	path string
}

// Run is one row of the run listing with aggregate counters.
type Run struct {
	RunID          string    `json:"run_id"`
	Kind           string    `json:"kind"`
	Unit           string    `json:"unit"`
	InputDir       string    `json:"input_dir"`
	OutputDir      string    `json:"output_dir"`
	StartedAt      time.Time `json:"started_at"`
	FinishedAt     time.Time `json:"finished_at"`
	Interrupted    bool      `json:"interrupted"`
	Succeeded      int       `json:"succeeded"`
	Skipped        int       `json:"skipped"`
	Failed         int       `json:"failed"`
	OriginalBytes  int64     `json:"original_bytes"`
	OptimizedBytes int64     `json:"optimized_bytes"`
}

const timeLayout = time.RFC3339Nano

// Open initializes or connects to the history database at path.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("ensure history directory: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: path}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Path returns the database location.
func (s *Store) Path() string { return s.path }

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Record stores report and its items in a single transaction.
func (s *Store) Record(ctx context.Context, report batch.Report) error {
	if report.RunID == "" {
		return errors.New("record run: empty run id")
	}
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin record tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
        (run_id, kind, unit, input_dir, output_dir, started_at, finished_at, interrupted)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		report.RunID,
		string(report.Kind),
		report.Unit.Name,
		report.InputDir,
		report.OutputDir,
		report.StartedAt.UTC().Format(timeLayout),
		report.FinishedAt.UTC().Format(timeLayout),
		boolToInt(report.Interrupted),
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `INSERT INTO items
        (run_id, position, name, source_path, output_path, outcome, original_bytes, optimized_bytes, error_message, duration_ms)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare item insert: %w", err)
	}
	defer stmt.Close()

	for i, item := range report.Items {
		if _, err := stmt.ExecContext(ctx,
			report.RunID, i, item.Name, item.Source, item.Output, string(item.Outcome),
			item.OriginalBytes, item.OptimizedBytes, item.Error, item.Duration.Milliseconds(),
		); err != nil {
			return fmt.Errorf("insert item %s: %w", item.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit record: %w", err)
	}
	return nil
}

// List returns the most recent runs first. A limit of zero or less returns all runs.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT r.run_id, r.kind, r.unit, r.input_dir, r.output_dir, r.started_at, r.finished_at, r.interrupted,
        COALESCE(SUM(CASE WHEN i.outcome = 'succeeded' THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN i.outcome = 'skipped' THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN i.outcome = 'failed' THEN 1 ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN i.outcome = 'succeeded' THEN i.original_bytes ELSE 0 END), 0),
        COALESCE(SUM(CASE WHEN i.outcome = 'succeeded' THEN i.optimized_bytes ELSE 0 END), 0)
        FROM runs r LEFT JOIN items i ON i.run_id = r.run_id
        GROUP BY r.run_id
        ORDER BY r.started_at DESC, r.run_id`
	args := []any{}
	if limit > 0 {
		query += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var (
			run               Run
			started, finished string
			interrupted       int
		)
		if err := rows.Scan(
			&run.RunID, &run.Kind, &run.Unit, &run.InputDir, &run.OutputDir, &started, &finished, &interrupted,
			&run.Succeeded, &run.Skipped, &run.Failed, &run.OriginalBytes, &run.OptimizedBytes,
		); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		run.StartedAt = parseTime(started)
		run.FinishedAt = parseTime(finished)
		run.Interrupted = interrupted != 0
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}

// Get loads the full report for runID.
func (s *Store) Get(ctx context.Context, runID string) (batch.Report, error) {
	var (
		report            batch.Report
		kind, unit        string
		started, finished string
		interrupted       int
	)
	err := s.db.QueryRowContext(ctx, `SELECT run_id, kind, unit, input_dir, output_dir, started_at, finished_at, interrupted
        FROM runs WHERE run_id = ?`, runID).
		Scan(&report.RunID, &kind, &unit, &report.InputDir, &report.OutputDir, &started, &finished, &interrupted)
	if errors.Is(err, sql.ErrNoRows) {
		return batch.Report{}, fmt.Errorf("%w: %s", ErrNotFound, runID)
	}
	if err != nil {
		return batch.Report{}, fmt.Errorf("load run: %w", err)
	}
	report.Kind = batch.Kind(kind)
	report.Unit = batch.UnitByName(unit)
	report.StartedAt = parseTime(started)
	report.FinishedAt = parseTime(finished)
	report.Interrupted = interrupted != 0

	rows, err := s.db.QueryContext(ctx, `SELECT name, source_path, output_path, outcome, original_bytes, optimized_bytes, error_message, duration_ms
        FROM items WHERE run_id = ? ORDER BY position`, runID)
	if err != nil {
		return batch.Report{}, fmt.Errorf("load items: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			item       batch.ItemResult
			outcome    string
			durationMS int64
		)
		if err := rows.Scan(&item.Name, &item.Source, &item.Output, &outcome,
			&item.OriginalBytes, &item.OptimizedBytes, &item.Error, &durationMS); err != nil {
			return batch.Report{}, fmt.Errorf("scan item: %w", err)
		}
		item.Outcome = batch.Outcome(outcome)
		item.Duration = time.Duration(durationMS) * time.Millisecond
		report.Items = append(report.Items, item)
	}
	if err := rows.Err(); err != nil {
		return batch.Report{}, fmt.Errorf("iterate items: %w", err)
	}
	return report, nil
}

// Clear removes every recorded run and returns how many were deleted.
func (s *Store) Clear(ctx context.Context) (int64, error) {
	res, err := s.db.ExecContext(ctx, "DELETE FROM runs")
	if err != nil {
		return 0, fmt.Errorf("clear runs: %w", err)
	}
	return res.RowsAffected()
}

func parseTime(value string) time.Time {
	t, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}
	}
	return t
}

func boolToInt(v bool) int {
	if v {
		return 1
	}
	return 0
}

// PathRecorder opens the database at Path for each Record call, so nothing is
// created on disk until a run actually finishes.
type PathRecorder struct {
	Path string
}

// Record opens the store, records report, and closes the store.
func (r PathRecorder) Record(ctx context.Context, report batch.Report) error {
	store, err := Open(r.Path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, report)
}
