package storage

import (
	"context"
	"time"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// Storage defines the interface for persisting and querying build runs
type Storage interface {
	// Run operations
	CreateRun(ctx context.Context, run *Run) error
	GetRun(ctx context.Context, runID string) (*Run, error)
	UpdateRunProgress(ctx context.Context, runID string, progress int) error
	FinishRun(ctx context.Context, runID string, outcome RunOutcome) error
	ListRuns(ctx context.Context, projectDir string, limit int) ([]*Run, error)

	// Diagnostic operations
	AppendDiagnostics(ctx context.Context, runID string, diagnostics []types.Diagnostic) error
	ListDiagnostics(ctx context.Context, runID string, severity types.Severity, limit int) ([]*Diagnostic, error)
	CountDiagnostics(ctx context.Context, runID string) (errors int, warnings int, err error)

	// Status operations
	GetStatus(ctx context.Context, projectDir string) (*ProjectStatus, error)

	// Database operations
	Close() error
}

// Run represents one build invocation
type Run struct {
	ID         string // UUID
	ProjectDir string
	Dialect    string // Output parser dialect used for the run
	Progress   int    // Last progress percentage seen

	// Outcome, populated by FinishRun
	Finished    bool
	ExitCode    int
	FatalErrors bool
	Redirected  bool

	StartedAt  time.Time
	FinishedAt time.Time // Zero until finished
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// RunOutcome is the final state recorded when a run's stream ends
type RunOutcome struct {
	ExitCode    int
	FatalErrors bool
	Redirected  bool
}

// Diagnostic is one stored diagnostic row. Seq preserves the order
// diagnostics were emitted in within the run.
type Diagnostic struct {
	ID        int64
	RunID     string
	Seq       int
	Severity  string
	File      string
	Line      int
	Column    int
	Message   string
	Fatal     bool
	CreatedAt time.Time
}

// ProjectStatus summarizes the stored history for one project directory
type ProjectStatus struct {
	ProjectDir    string
	RunsCount     int
	LastRun       *Run // Nil when no runs exist
	ErrorsCount   int  // Across all runs
	WarningsCount int
}

// toStoredDiagnostic converts a domain diagnostic into its storage row
func toStoredDiagnostic(runID string, seq int, d types.Diagnostic) *Diagnostic {
	return &Diagnostic{
		RunID:    runID,
		Seq:      seq,
		Severity: string(d.Severity),
		File:     d.File,
		Line:     d.Line,
		Column:   d.Column,
		Message:  d.Message,
		Fatal:    d.Fatal,
	}
}

// ToDomain converts a stored diagnostic row back into the domain type
func (d *Diagnostic) ToDomain() types.Diagnostic {
	return types.Diagnostic{
		Severity: types.Severity(d.Severity),
		File:     d.File,
		Line:     d.Line,
		Column:   d.Column,
		Message:  d.Message,
		Fatal:    d.Fatal,
	}
}
