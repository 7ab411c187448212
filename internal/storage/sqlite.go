package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

var (
	// ErrNotFound is returned when a requested entity doesn't exist
	ErrNotFound = errors.New("not found")
	// ErrRunFinished is returned when appending to a run that already ended
	ErrRunFinished = errors.New("run already finished")
)

// SQLiteStorage implements the Storage interface using SQLite
type SQLiteStorage struct {
	db *sql.DB
}

// openDatabase opens a SQLite database with appropriate settings
func openDatabase(dbPath string) (*sql.DB, error) {
	db, err := sql.Open(DriverName, dbPath)
	if err != nil {
		return nil, err
	}

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	// SQLite benefits from a single writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	if _, err := db.Exec("PRAGMA foreign_keys=ON"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}

	return db, nil
}

// NewSQLiteStorage creates a new SQLite storage instance
func NewSQLiteStorage(dbPath string) (*SQLiteStorage, error) {
	db, err := openDatabase(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := ApplyMigrations(context.Background(), db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to apply migrations: %w", err)
	}

	return &SQLiteStorage{db: db}, nil
}

// Close closes the database connection
func (s *SQLiteStorage) Close() error {
	return s.db.Close()
}

// Run operations

// CreateRun inserts a new run row, assigning an ID when the caller left it empty
func (s *SQLiteStorage) CreateRun(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.StartedAt.IsZero() {
		run.StartedAt = time.Now()
	}

	query := `
		INSERT INTO runs (id, project_dir, dialect, progress, started_at, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	now := time.Now()
	_, err := s.db.ExecContext(ctx, query,
		run.ID, run.ProjectDir, run.Dialect, run.Progress, run.StartedAt, now, now)
	if err != nil {
		return fmt.Errorf("failed to create run: %w", err)
	}

	run.CreatedAt = now
	run.UpdatedAt = now
	return nil
}

// GetRun fetches one run by ID
func (s *SQLiteStorage) GetRun(ctx context.Context, runID string) (*Run, error) {
	query := `
		SELECT id, project_dir, dialect, progress, finished, exit_code, fatal_errors,
		       redirected, started_at, finished_at, created_at, updated_at
		FROM runs
		WHERE id = ?
	`
	return scanRun(s.db.QueryRowContext(ctx, query, runID))
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRun(row rowScanner) (*Run, error) {
	var run Run
	var finishedAt sql.NullTime
	err := row.Scan(
		&run.ID, &run.ProjectDir, &run.Dialect, &run.Progress, &run.Finished,
		&run.ExitCode, &run.FatalErrors, &run.Redirected,
		&run.StartedAt, &finishedAt, &run.CreatedAt, &run.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	if finishedAt.Valid {
		run.FinishedAt = finishedAt.Time
	}
	return &run, nil
}

// UpdateRunProgress records the most recent progress percentage for a run
func (s *SQLiteStorage) UpdateRunProgress(ctx context.Context, runID string, progress int) error {
	query := `UPDATE runs SET progress = ?, updated_at = ? WHERE id = ?`
	result, err := s.db.ExecContext(ctx, query, progress, time.Now(), runID)
	if err != nil {
		return fmt.Errorf("failed to update run progress: %w", err)
	}
	return requireRowAffected(result)
}

// FinishRun records the final state of a run once its stream ends
func (s *SQLiteStorage) FinishRun(ctx context.Context, runID string, outcome RunOutcome) error {
	query := `
		UPDATE runs
		SET finished = 1, exit_code = ?, fatal_errors = ?, redirected = ?,
		    finished_at = ?, updated_at = ?
		WHERE id = ?
	`
	now := time.Now()
	result, err := s.db.ExecContext(ctx, query,
		outcome.ExitCode, outcome.FatalErrors, outcome.Redirected, now, now, runID)
	if err != nil {
		return fmt.Errorf("failed to finish run: %w", err)
	}
	return requireRowAffected(result)
}

// ListRuns returns the most recent runs for one project directory
func (s *SQLiteStorage) ListRuns(ctx context.Context, projectDir string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	query := `
		SELECT id, project_dir, dialect, progress, finished, exit_code, fatal_errors,
		       redirected, started_at, finished_at, created_at, updated_at
		FROM runs
		WHERE project_dir = ?
		ORDER BY started_at DESC, id
		LIMIT ?
	`
	rows, err := s.db.QueryContext(ctx, query, projectDir, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var runs []*Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// Diagnostic operations

// AppendDiagnostics stores a batch of diagnostics for a run, continuing the
// run's sequence numbering. The batch is written in one transaction.
func (s *SQLiteStorage) AppendDiagnostics(ctx context.Context, runID string, diagnostics []types.Diagnostic) error {
	if len(diagnostics) == 0 {
		return nil
	}

	run, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if run.Finished {
		return ErrRunFinished
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var next int
	err = tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), -1) + 1 FROM diagnostics WHERE run_id = ?`, runID).Scan(&next)
	if err != nil {
		return fmt.Errorf("failed to read diagnostic sequence: %w", err)
	}

	query := `
		INSERT INTO diagnostics (run_id, seq, severity, file, line, col, message, fatal)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	for i, d := range diagnostics {
		row := toStoredDiagnostic(runID, next+i, d)
		if _, err := tx.ExecContext(ctx, query,
			row.RunID, row.Seq, row.Severity, row.File, row.Line, row.Column, row.Message, row.Fatal); err != nil {
			return fmt.Errorf("failed to insert diagnostic: %w", err)
		}
	}

	return tx.Commit()
}

// ListDiagnostics returns a run's diagnostics in emission order, optionally
// filtered by severity ("" matches all)
func (s *SQLiteStorage) ListDiagnostics(ctx context.Context, runID string, severity types.Severity, limit int) ([]*Diagnostic, error) {
	if limit <= 0 {
		limit = 100
	}

	query := `
		SELECT id, run_id, seq, severity, file, line, col, message, fatal, created_at
		FROM diagnostics
		WHERE run_id = ?
	`
	args := []interface{}{runID}
	if severity != "" {
		query += " AND severity = ?"
		args = append(args, string(severity))
	}
	query += " ORDER BY seq LIMIT ?"
	args = append(args, limit)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list diagnostics: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var diagnostics []*Diagnostic
	for rows.Next() {
		var d Diagnostic
		if err := rows.Scan(&d.ID, &d.RunID, &d.Seq, &d.Severity, &d.File,
			&d.Line, &d.Column, &d.Message, &d.Fatal, &d.CreatedAt); err != nil {
			return nil, err
		}
		diagnostics = append(diagnostics, &d)
	}
	return diagnostics, rows.Err()
}

// CountDiagnostics returns the error and warning totals for one run
func (s *SQLiteStorage) CountDiagnostics(ctx context.Context, runID string) (int, int, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN severity = 'error' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN severity = 'warning' THEN 1 ELSE 0 END), 0)
		FROM diagnostics
		WHERE run_id = ?
	`
	var errCount, warnCount int
	if err := s.db.QueryRowContext(ctx, query, runID).Scan(&errCount, &warnCount); err != nil {
		return 0, 0, fmt.Errorf("failed to count diagnostics: %w", err)
	}
	return errCount, warnCount, nil
}

// Status operations

// GetStatus summarizes the stored history for one project directory
func (s *SQLiteStorage) GetStatus(ctx context.Context, projectDir string) (*ProjectStatus, error) {
	status := &ProjectStatus{ProjectDir: projectDir}

	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM runs WHERE project_dir = ?`, projectDir).Scan(&status.RunsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count runs: %w", err)
	}

	query := `
		SELECT
			COALESCE(SUM(CASE WHEN d.severity = 'error' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN d.severity = 'warning' THEN 1 ELSE 0 END), 0)
		FROM diagnostics d
		JOIN runs r ON r.id = d.run_id
		WHERE r.project_dir = ?
	`
	err = s.db.QueryRowContext(ctx, query, projectDir).Scan(&status.ErrorsCount, &status.WarningsCount)
	if err != nil {
		return nil, fmt.Errorf("failed to count diagnostics: %w", err)
	}

	runs, err := s.ListRuns(ctx, projectDir, 1)
	if err != nil {
		return nil, err
	}
	if len(runs) > 0 {
		status.LastRun = runs[0]
	}

	return status, nil
}

// requireRowAffected maps a zero-row update onto ErrNotFound
func requireRowAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
