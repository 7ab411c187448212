package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	mcpgo "github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleIntrospection is a minimal introspection dump with one valid target
// and one invalid target (missing defined_in) that should be dropped.
const sampleIntrospection = `{
	"targets": [
		{
			"name": "app",
			"kind": "binary",
			"defined_in": "build.xmake",
			"source_groups": [
				{"name": "Source Files", "sources": ["src/main.cpp", "src/util.cpp"]}
			],
			"headers": ["src/util.h"]
		},
		{
			"name": "broken",
			"kind": "binary"
		}
	],
	"project_dir": ".",
	"build_system_files": ["build.xmake"],
	"version": {"major": 2, "minor": 9, "patch": 1}
}`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	server, err := NewServer(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { _ = server.storage.Close() })
	return server
}

func toolRequest(name string, args map[string]interface{}) mcpgo.CallToolRequest {
	return mcpgo.CallToolRequest{
		Params: mcpgo.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

// resultJSON decodes the text payload of a tool result
func resultJSON(t *testing.T, result *mcpgo.CallToolResult) map[string]interface{} {
	t.Helper()
	require.NotNil(t, result)
	require.NotEmpty(t, result.Content)

	text, ok := result.Content[0].(mcpgo.TextContent)
	require.True(t, ok, "tool result should be text content")

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(text.Text), &decoded))
	return decoded
}

func TestServer_Initialization(t *testing.T) {
	t.Run("custom path creates database directory", func(t *testing.T) {
		tmpDir := t.TempDir()
		dbDir := filepath.Join(tmpDir, "nested", "db")

		server, err := NewServer(dbDir)
		require.NoError(t, err)
		defer server.storage.Close()

		assert.NotNil(t, server.mcp, "MCP server should be initialized")
		assert.NotNil(t, server.storage, "Storage should be initialized")

		info, err := os.Stat(dbDir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	})

	t.Run("database file is created under the path", func(t *testing.T) {
		tmpDir := t.TempDir()

		server, err := NewServer(tmpDir)
		require.NoError(t, err)
		defer server.storage.Close()

		_, err = os.Stat(filepath.Join(tmpDir, "runs.db"))
		assert.NoError(t, err)
	})
}

func TestHandleBuildProjectTree(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	writeDump := func(t *testing.T, name string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), name)
		require.NoError(t, os.WriteFile(path, []byte(sampleIntrospection), 0644))
		return path
	}

	t.Run("builds tree from introspection file", func(t *testing.T) {
		dump := writeDump(t, "introspect.json")
		request := toolRequest("build_project_tree", map[string]interface{}{
			"source_dir":         ".",
			"introspection_file": dump,
		})

		result, err := server.handleBuildProjectTree(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.Equal(t, float64(1), response["targets"], "invalid target should be dropped")
		assert.Contains(t, response, "dropped_targets")
		assert.Equal(t, "2.9.1", response["tool_version"])

		tree, ok := response["tree"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "project", tree["kind"])
	})

	t.Run("builds tree from introspection directory", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "dump.json"), []byte(sampleIntrospection), 0644))

		request := toolRequest("build_project_tree", map[string]interface{}{
			"source_dir":        ".",
			"introspection_dir": dir,
		})

		result, err := server.handleBuildProjectTree(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.Equal(t, float64(1), response["targets"])
	})

	t.Run("missing source_dir", func(t *testing.T) {
		request := toolRequest("build_project_tree", map[string]interface{}{
			"introspection_file": "unused.json",
		})

		_, err := server.handleBuildProjectTree(ctx, request)
		require.Error(t, err)

		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})

	t.Run("requires exactly one introspection source", func(t *testing.T) {
		for name, args := range map[string]map[string]interface{}{
			"neither": {"source_dir": "."},
			"both": {
				"source_dir":         ".",
				"introspection_file": "a.json",
				"introspection_dir":  "b",
			},
		} {
			t.Run(name, func(t *testing.T) {
				_, err := server.handleBuildProjectTree(ctx, toolRequest("build_project_tree", args))
				var mcpErr *MCPError
				require.ErrorAs(t, err, &mcpErr)
				assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
			})
		}
	})

	t.Run("nonexistent introspection directory", func(t *testing.T) {
		request := toolRequest("build_project_tree", map[string]interface{}{
			"source_dir":        ".",
			"introspection_dir": filepath.Join(t.TempDir(), "missing"),
		})

		_, err := server.handleBuildProjectTree(ctx, request)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}

func TestHandleParseBuildOutput(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	const gccOutput = "[ 25%] compiling src/main.cpp\n" +
		"error: src/main.cpp:10:5: use of undeclared identifier 'foo'\n" +
		"[ 50%] compiling src/util.cpp\n"

	t.Run("parses output and records a run", func(t *testing.T) {
		request := toolRequest("parse_build_output", map[string]interface{}{
			"output":      gccOutput,
			"dialect":     "gcc_clang",
			"project_dir": "/proj",
		})

		result, err := server.handleParseBuildOutput(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.Equal(t, float64(1), response["diagnostics_count"])
		assert.Equal(t, true, response["fatal_errors"])
		assert.Equal(t, false, response["detected_redirection"])
		assert.Equal(t, float64(50), response["progress"])
		assert.NotEmpty(t, response["run_id"])
	})

	t.Run("record_run false skips persistence", func(t *testing.T) {
		request := toolRequest("parse_build_output", map[string]interface{}{
			"output":     "[ 10%] compiling\n",
			"dialect":    "gcc_clang",
			"record_run": false,
		})

		result, err := server.handleParseBuildOutput(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.NotContains(t, response, "run_id")
	})

	t.Run("invalid dialect", func(t *testing.T) {
		request := toolRequest("parse_build_output", map[string]interface{}{
			"output":  "whatever",
			"dialect": "intel",
		})

		_, err := server.handleParseBuildOutput(ctx, request)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})

	t.Run("missing output", func(t *testing.T) {
		request := toolRequest("parse_build_output", map[string]interface{}{
			"dialect": "msvc",
		})

		_, err := server.handleParseBuildOutput(ctx, request)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}

func TestHandleGetBuildStatus(t *testing.T) {
	server := newTestServer(t)
	ctx := context.Background()

	// Record one failing run for /proj first.
	parseReq := toolRequest("parse_build_output", map[string]interface{}{
		"output":      "error: main.cpp:3:1: something broke\n",
		"dialect":     "gcc_clang",
		"project_dir": "/proj",
	})
	parseResult, err := server.handleParseBuildOutput(ctx, parseReq)
	require.NoError(t, err)
	runID, ok := resultJSON(t, parseResult)["run_id"].(string)
	require.True(t, ok)

	t.Run("status by project_dir", func(t *testing.T) {
		request := toolRequest("get_build_status", map[string]interface{}{
			"project_dir": "/proj",
		})

		result, err := server.handleGetBuildStatus(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.Equal(t, float64(1), response["runs_count"])
		assert.Equal(t, float64(1), response["errors"])
		assert.Equal(t, float64(0), response["warnings"])

		lastRun, ok := response["last_run"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, runID, lastRun["id"])
		assert.Equal(t, true, lastRun["fatal_errors"])
		assert.Equal(t, float64(1), lastRun["exit_code"])
	})

	t.Run("status by run_id includes diagnostics", func(t *testing.T) {
		request := toolRequest("get_build_status", map[string]interface{}{
			"run_id": runID,
		})

		result, err := server.handleGetBuildStatus(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		diagnostics, ok := response["diagnostics"].([]interface{})
		require.True(t, ok)
		require.Len(t, diagnostics, 1)

		diag, ok := diagnostics[0].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "error", diag["severity"])
	})

	t.Run("project with no runs", func(t *testing.T) {
		request := toolRequest("get_build_status", map[string]interface{}{
			"project_dir": "/never-built",
		})

		result, err := server.handleGetBuildStatus(ctx, request)
		require.NoError(t, err)

		response := resultJSON(t, result)
		assert.Equal(t, float64(0), response["runs_count"])
		assert.Contains(t, response, "message")
	})

	t.Run("unknown run_id", func(t *testing.T) {
		request := toolRequest("get_build_status", map[string]interface{}{
			"run_id": "no-such-run",
		})

		_, err := server.handleGetBuildStatus(ctx, request)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeNoRun, mcpErr.Code)
	})

	t.Run("missing parameters", func(t *testing.T) {
		_, err := server.handleGetBuildStatus(ctx, toolRequest("get_build_status", map[string]interface{}{}))
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})

	t.Run("limit out of range", func(t *testing.T) {
		request := toolRequest("get_build_status", map[string]interface{}{
			"run_id": runID,
			"limit":  float64(5000),
		})

		_, err := server.handleGetBuildStatus(ctx, request)
		var mcpErr *MCPError
		require.ErrorAs(t, err, &mcpErr)
		assert.Equal(t, ErrorCodeInvalidParams, mcpErr.Code)
	})
}
