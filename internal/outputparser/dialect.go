package outputparser

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// Dialect selects which diagnostic line format the parser recognizes
type Dialect string

const (
	DialectMSVC     Dialect = "msvc"
	DialectGCCClang Dialect = "gcc_clang"
)

var (
	progressRe = regexp.MustCompile(`^\[\s*(\d+)%\]`)

	// c:\src\a.cpp(10): warning: unused variable
	msvcRe = regexp.MustCompile(`(.+)\((\d+)\): (.+)`)

	// error: test/main.cpp:12:3: 'a' was not declared in this scope
	gccRe = regexp.MustCompile(`(error|warning): (.*):(\d+):(\d+): (.*)`)

	// The build tool hands compilation off to an underlying driver and echoes
	// its output; directory banners are the reliable tell.
	redirectRe = regexp.MustCompile(`^(make\[\d+\]: Entering directory|ninja: Entering directory)`)
)

// match is one successfully extracted diagnostic plus the byte range of the
// file reference within the line
type match struct {
	diagnostic types.Diagnostic
	fileStart  int
	fileEnd    int
}

// matchDiagnostic applies the dialect's regex to one line
func (d Dialect) matchDiagnostic(line string) (match, bool) {
	switch d {
	case DialectMSVC:
		return matchMSVC(line)
	case DialectGCCClang:
		return matchGCCClang(line)
	}
	return match{}, false
}

// matchMSVC extracts "file(line): message". The dialect reports no column;
// severity comes from the message's leading keyword when one is present.
func matchMSVC(line string) (match, bool) {
	idx := msvcRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return match{}, false
	}

	file := line[idx[2]:idx[3]]
	lineNum, ok := captureInt(line, idx, 2)
	if !ok {
		return match{}, false
	}
	message := line[idx[6]:idx[7]]

	return match{
		diagnostic: types.Diagnostic{
			Severity: severityFromMessage(message),
			File:     file,
			Line:     lineNum,
			Message:  message,
		},
		fileStart: idx[2],
		fileEnd:   idx[3],
	}, true
}

// matchGCCClang extracts "error: file:line:col: message" and its
// warning-prefixed variant; severity is the matched keyword itself
func matchGCCClang(line string) (match, bool) {
	idx := gccRe.FindStringSubmatchIndex(line)
	if idx == nil {
		return match{}, false
	}

	keyword := line[idx[2]:idx[3]]
	file := line[idx[4]:idx[5]]
	lineNum, ok := captureInt(line, idx, 3)
	if !ok {
		return match{}, false
	}
	column, ok := captureInt(line, idx, 4)
	if !ok {
		return match{}, false
	}
	message := line[idx[10]:idx[11]]

	severity := types.SeverityError
	if keyword == "warning" {
		severity = types.SeverityWarning
	}

	return match{
		diagnostic: types.Diagnostic{
			Severity: severity,
			File:     file,
			Line:     lineNum,
			Column:   column,
			Message:  message,
		},
		fileStart: idx[4],
		fileEnd:   idx[5],
	}, true
}

// captureInt parses capture group n as an integer. A malformed capture is
// treated as "no match", never propagated.
func captureInt(line string, idx []int, n int) (int, bool) {
	start, end := idx[2*n], idx[2*n+1]
	if start < 0 {
		return 0, false
	}
	value, err := strconv.Atoi(line[start:end])
	if err != nil {
		return 0, false
	}
	return value, true
}

// severityFromMessage classifies an MSVC message by its leading keyword
func severityFromMessage(message string) types.Severity {
	lower := strings.ToLower(message)
	switch {
	case strings.HasPrefix(lower, "fatal error"), strings.HasPrefix(lower, "error"):
		return types.SeverityError
	case strings.HasPrefix(lower, "warning"):
		return types.SeverityWarning
	}
	return types.SeverityUnknown
}
