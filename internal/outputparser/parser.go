package outputparser

import (
	"path"
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// Parser consumes build output one line at a time and emits progress and
// diagnostic events. Construct one per build run and discard it afterwards;
// the dialect is fixed at construction and the only state carried across
// lines is the configured source directory and the two sticky flags.
type Parser struct {
	dialect   Dialect
	sourceDir string

	fatalErrors bool
	redirected  bool
}

// New creates a parser for the given dialect
func New(dialect Dialect) *Parser {
	return &Parser{dialect: dialect}
}

// SetSourceDirectory sets the directory relative diagnostic file references
// resolve against. Call it once before the first line; it is assumed
// immutable while the stream is being processed.
func (p *Parser) SetSourceDirectory(dir string) {
	p.sourceDir = strings.ReplaceAll(dir, `\`, "/")
}

// HandleLine processes one line of build output and returns at most one
// event. Lines matching neither a progress marker nor the dialect's
// diagnostic format return nil; the caller passes them through to its
// generic log sink untouched.
func (p *Parser) HandleLine(line string, stream types.StreamKind) *types.BuildEvent {
	if redirectRe.MatchString(line) {
		p.redirected = true
	}

	if progress, ok := extractProgress(line); ok {
		return &types.BuildEvent{Kind: types.EventProgress, Progress: progress}
	}

	m, ok := p.dialect.matchDiagnostic(line)
	if !ok {
		return nil
	}

	diagnostic := m.diagnostic
	diagnostic.File = p.resolveFile(diagnostic.File)
	if diagnostic.Severity == types.SeverityError {
		diagnostic.Fatal = true
		p.fatalErrors = true
	}

	return &types.BuildEvent{
		Kind:       types.EventDiagnostic,
		Diagnostic: &diagnostic,
		Links: []types.LinkSpec{
			{
				Start:  m.fileStart,
				Length: m.fileEnd - m.fileStart,
				File:   diagnostic.File,
				Line:   diagnostic.Line,
			},
		},
	}
}

// HasFatalErrors reports whether any error-level diagnostic was seen. The
// flag is sticky: it is never cleared mid-stream.
func (p *Parser) HasFatalErrors() bool {
	return p.fatalErrors
}

// HasDetectedRedirection reports whether a line indicated the build tool is
// echoing an underlying driver's output. Sticky, like HasFatalErrors.
func (p *Parser) HasDetectedRedirection() bool {
	return p.redirected
}

var driveLetterRe = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// resolveFile resolves a captured file reference against the configured
// source directory when it is relative. Absolute references, POSIX or
// Windows, pass through unchanged.
func (p *Parser) resolveFile(file string) string {
	if file == "" || p.sourceDir == "" {
		return file
	}
	if strings.HasPrefix(file, "/") || driveLetterRe.MatchString(file) {
		return file
	}
	return path.Join(p.sourceDir, strings.ReplaceAll(file, `\`, "/"))
}

// extractProgress matches the "[ 42%]" marker at the start of a line. Values
// are passed through without clamping; the dialect controls the format.
func extractProgress(line string) (int, bool) {
	m := progressRe.FindStringSubmatch(line)
	if m == nil {
		return 0, false
	}
	value, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return value, true
}
