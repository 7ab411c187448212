package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/dshills/xmakecontext-mcp/internal/introspect"
	"github.com/dshills/xmakecontext-mcp/internal/outputparser"
	"github.com/dshills/xmakecontext-mcp/internal/projecttree"
	"github.com/dshills/xmakecontext-mcp/internal/storage"
	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// MCP error codes
const (
	ErrorCodeInvalidParams = -32602 // Invalid method parameters
	ErrorCodeInternalError = -32603 // Internal JSON-RPC error
	ErrorCodeNoRun         = -32001 // No stored run matches the request
)

// handleBuildProjectTree handles the build_project_tree tool invocation
func (s *Server) handleBuildProjectTree(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	sourceDir, ok := args["source_dir"].(string)
	if !ok || sourceDir == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "source_dir parameter is required", map[string]interface{}{
			"param":  "source_dir",
			"reason": "missing or empty",
		})
	}

	introspectionFile := getStringDefault(args, "introspection_file", "")
	introspectionDir := getStringDefault(args, "introspection_dir", "")
	if (introspectionFile == "") == (introspectionDir == "") {
		return nil, newMCPError(ErrorCodeInvalidParams,
			"exactly one of introspection_file and introspection_dir is required", nil)
	}

	var (
		result *introspect.Result
		err    error
	)
	if introspectionFile != "" {
		result, err = introspect.LoadFile(introspectionFile)
	} else {
		if err := validateDir(introspectionDir); err != nil {
			return nil, newMCPError(ErrorCodeInvalidParams, "invalid introspection_dir", map[string]interface{}{
				"param":  "introspection_dir",
				"reason": err.Error(),
			})
		}
		result, err = introspect.LoadDir(ctx, introspectionDir)
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to load introspection data", map[string]interface{}{
			"error": err.Error(),
		})
	}

	projectDir := result.ProjectDir
	if projectDir == "" {
		projectDir = sourceDir
	}

	root, err := projecttree.BuildTree(sourceDir, projectDir, result.Targets, result.BuildSystemFiles)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to build project tree", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"tree":    root,
		"targets": len(result.Targets),
	}
	if result.HasErrors() {
		response["dropped_targets"] = result.Errors
	}
	if result.Version != nil {
		response["tool_version"] = result.Version.String()
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// handleParseBuildOutput handles the parse_build_output tool invocation
func (s *Server) handleParseBuildOutput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	output, ok := args["output"].(string)
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "output parameter is required", map[string]interface{}{
			"param":  "output",
			"reason": "missing",
		})
	}

	dialectName := getStringDefault(args, "dialect", "")
	var dialect outputparser.Dialect
	switch dialectName {
	case "msvc":
		dialect = outputparser.DialectMSVC
	case "gcc_clang":
		dialect = outputparser.DialectGCCClang
	default:
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid dialect", map[string]interface{}{
			"param":   "dialect",
			"value":   dialectName,
			"allowed": []string{"msvc", "gcc_clang"},
		})
	}

	sourceDir := getStringDefault(args, "source_dir", "")
	projectDir := getStringDefault(args, "project_dir", sourceDir)
	recordRun := getBoolDefault(args, "record_run", true)

	parser := outputparser.New(dialect)
	if sourceDir != "" {
		parser.SetSourceDirectory(sourceDir)
	}

	var (
		diagnostics []types.Diagnostic
		events      []*types.BuildEvent
		progress    = -1
	)
	for _, line := range splitLines(output) {
		event := parser.HandleLine(line, types.StreamStdout)
		if event == nil {
			continue
		}
		events = append(events, event)
		switch event.Kind {
		case types.EventProgress:
			progress = event.Progress
		case types.EventDiagnostic:
			diagnostics = append(diagnostics, *event.Diagnostic)
		}
	}

	response := map[string]interface{}{
		"events":               events,
		"diagnostics_count":    len(diagnostics),
		"fatal_errors":         parser.HasFatalErrors(),
		"detected_redirection": parser.HasDetectedRedirection(),
	}
	if progress >= 0 {
		response["progress"] = progress
	}

	if recordRun {
		runID, err := s.recordRun(ctx, projectDir, dialectName, progress, parser, diagnostics)
		if err != nil {
			return nil, newMCPError(ErrorCodeInternalError, "failed to record run", map[string]interface{}{
				"error": err.Error(),
			})
		}
		response["run_id"] = runID
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// recordRun persists one parsed build run and its diagnostics
func (s *Server) recordRun(ctx context.Context, projectDir, dialect string, progress int,
	parser *outputparser.Parser, diagnostics []types.Diagnostic) (string, error) {

	run := &storage.Run{ProjectDir: projectDir, Dialect: dialect}
	if err := s.storage.CreateRun(ctx, run); err != nil {
		return "", err
	}

	if err := s.storage.AppendDiagnostics(ctx, run.ID, diagnostics); err != nil {
		return "", err
	}

	if progress >= 0 {
		if err := s.storage.UpdateRunProgress(ctx, run.ID, progress); err != nil {
			return "", err
		}
	}

	outcome := storage.RunOutcome{
		FatalErrors: parser.HasFatalErrors(),
		Redirected:  parser.HasDetectedRedirection(),
	}
	if outcome.FatalErrors {
		outcome.ExitCode = 1
	}
	if err := s.storage.FinishRun(ctx, run.ID, outcome); err != nil {
		return "", err
	}

	return run.ID, nil
}

// handleGetBuildStatus handles the get_build_status tool invocation
func (s *Server) handleGetBuildStatus(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, ok := request.Params.Arguments.(map[string]interface{})
	if !ok {
		return nil, newMCPError(ErrorCodeInvalidParams, "invalid arguments", nil)
	}

	runID := getStringDefault(args, "run_id", "")
	projectDir := getStringDefault(args, "project_dir", "")
	if runID == "" && projectDir == "" {
		return nil, newMCPError(ErrorCodeInvalidParams, "project_dir or run_id is required", nil)
	}

	if runID != "" {
		return s.runStatus(ctx, runID, args)
	}

	status, err := s.storage.GetStatus(ctx, projectDir)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get status", map[string]interface{}{
			"error": err.Error(),
		})
	}

	response := map[string]interface{}{
		"project_dir": status.ProjectDir,
		"runs_count":  status.RunsCount,
		"errors":      status.ErrorsCount,
		"warnings":    status.WarningsCount,
	}
	if status.LastRun != nil {
		response["last_run"] = runSummary(status.LastRun)
	} else {
		response["message"] = "No recorded runs. Use parse_build_output to record one."
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// runStatus builds the response for a single-run query
func (s *Server) runStatus(ctx context.Context, runID string, args map[string]interface{}) (*mcp.CallToolResult, error) {
	run, err := s.storage.GetRun(ctx, runID)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, newMCPError(ErrorCodeNoRun, "run not found", map[string]interface{}{
			"run_id": runID,
		})
	}
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to get run", map[string]interface{}{
			"error": err.Error(),
		})
	}

	limit := getIntDefault(args, "limit", 100)
	if limit < 1 || limit > 1000 {
		return nil, newMCPError(ErrorCodeInvalidParams, "limit must be between 1 and 1000", map[string]interface{}{
			"param": "limit",
			"value": limit,
		})
	}
	severity := types.Severity(getStringDefault(args, "severity", ""))

	diagnostics, err := s.storage.ListDiagnostics(ctx, runID, severity, limit)
	if err != nil {
		return nil, newMCPError(ErrorCodeInternalError, "failed to list diagnostics", map[string]interface{}{
			"error": err.Error(),
		})
	}

	listed := make([]types.Diagnostic, 0, len(diagnostics))
	for _, d := range diagnostics {
		listed = append(listed, d.ToDomain())
	}

	response := map[string]interface{}{
		"run":         runSummary(run),
		"diagnostics": listed,
	}

	return mcp.NewToolResultText(formatJSON(response)), nil
}

// runSummary formats a run row for tool responses
func runSummary(run *storage.Run) map[string]interface{} {
	summary := map[string]interface{}{
		"id":                   run.ID,
		"project_dir":          run.ProjectDir,
		"dialect":              run.Dialect,
		"progress":             run.Progress,
		"finished":             run.Finished,
		"fatal_errors":         run.FatalErrors,
		"detected_redirection": run.Redirected,
		"started_at":           run.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
	}
	if run.Finished {
		summary["exit_code"] = run.ExitCode
		summary["finished_at"] = run.FinishedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return summary
}

// Helper functions

// newMCPError creates a properly formatted MCP error
func newMCPError(code int, message string, data interface{}) error {
	// MCP errors are returned as regular errors, the framework handles encoding
	return &MCPError{
		Code:    code,
		Message: message,
		Data:    data,
	}
}

// MCPError represents an MCP protocol error
type MCPError struct {
	Code    int
	Message string
	Data    interface{}
}

func (e *MCPError) Error() string {
	return fmt.Sprintf("MCP error %d: %s", e.Code, e.Message)
}

// splitLines splits captured output into lines, tolerating CRLF endings and a
// trailing newline
func splitLines(output string) []string {
	if output == "" {
		return nil
	}
	lines := strings.Split(output, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	for i, line := range lines {
		lines[i] = strings.TrimSuffix(line, "\r")
	}
	return lines
}

// validateDir checks if a path exists and is a readable directory
func validateDir(path string) error {
	if path == "" {
		return ErrPathRequired
	}

	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return ErrPathNotFound
	}
	if err != nil {
		return ErrPathNotReadable
	}

	if !info.IsDir() {
		return ErrNotDirectory
	}

	return nil
}

// formatJSON formats a map as indented JSON
func formatJSON(data map[string]interface{}) string {
	bytes, err := json.MarshalIndent(data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	return string(bytes)
}

// getBoolDefault extracts a boolean parameter with a default value
func getBoolDefault(args map[string]interface{}, key string, defaultValue bool) bool {
	if val, ok := args[key].(bool); ok {
		return val
	}
	return defaultValue
}

// getIntDefault extracts an integer parameter with a default value
func getIntDefault(args map[string]interface{}, key string, defaultValue int) int {
	if val, ok := args[key].(float64); ok {
		return int(val)
	}
	if val, ok := args[key].(int); ok {
		return val
	}
	return defaultValue
}

// getStringDefault extracts a string parameter with a default value
func getStringDefault(args map[string]interface{}, key string, defaultValue string) string {
	if val, ok := args[key].(string); ok {
		return val
	}
	return defaultValue
}

// Validation helpers

var (
	ErrPathRequired    = errors.New("path is required")
	ErrPathNotFound    = errors.New("path does not exist")
	ErrPathNotReadable = errors.New("path is not readable")
	ErrNotDirectory    = errors.New("path is not a directory")
)
