package introspect

import (
	"encoding/json"
	"fmt"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// ToolVersion is the build tool's reported version
type ToolVersion struct {
	Major int `json:"major"`
	Minor int `json:"minor"`
	Patch int `json:"patch"`
}

// String renders the version in the usual dotted form
func (v ToolVersion) String() string {
	return fmt.Sprintf("%d.%d.%d", v.Major, v.Minor, v.Patch)
}

// Result is the decoded introspection output for one project
type Result struct {
	Targets          []types.Target      `json:"targets"`
	Options          []types.BuildOption `json:"options"`
	ProjectDir       string              `json:"project_dir"`
	BuildSystemFiles []string            `json:"build_system_files"`
	QMLImportPaths   []string            `json:"qml_import_paths"`
	Version          *ToolVersion        `json:"version,omitempty"`

	// Errors collects the targets dropped during validation. Decoding never
	// aborts on a bad target.
	Errors []string `json:"errors,omitempty"`
}

// HasErrors reports whether any target was dropped during decoding
func (r *Result) HasErrors() bool {
	return len(r.Errors) > 0
}

// Parse decodes one introspection dump. The only hard failure is malformed
// JSON; invalid targets are skipped and recorded in Result.Errors.
func Parse(data []byte) (*Result, error) {
	var raw Result
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to decode introspection data: %w", err)
	}

	result := &Result{
		Options:          raw.Options,
		ProjectDir:       raw.ProjectDir,
		BuildSystemFiles: raw.BuildSystemFiles,
		QMLImportPaths:   raw.QMLImportPaths,
		Version:          raw.Version,
	}

	result.Targets = make([]types.Target, 0, len(raw.Targets))
	for i := range raw.Targets {
		target := raw.Targets[i]
		if err := target.Validate(); err != nil {
			result.Errors = append(result.Errors, fmt.Sprintf("target %d (%s): %v", i, target.Name, err))
			continue
		}
		result.Targets = append(result.Targets, target)
	}

	return result, nil
}

// merge appends other's content onto r, preserving the order merges happen in
func (r *Result) merge(other *Result) {
	r.Targets = append(r.Targets, other.Targets...)
	r.Options = append(r.Options, other.Options...)
	r.BuildSystemFiles = append(r.BuildSystemFiles, other.BuildSystemFiles...)
	r.QMLImportPaths = append(r.QMLImportPaths, other.QMLImportPaths...)
	r.Errors = append(r.Errors, other.Errors...)
	if r.ProjectDir == "" {
		r.ProjectDir = other.ProjectDir
	}
	if r.Version == nil {
		r.Version = other.Version
	}
}
