package mcp

import (
	"github.com/mark3labs/mcp-go/mcp"
)

// buildProjectTreeTool returns the tool definition for build_project_tree
func buildProjectTreeTool() mcp.Tool {
	return mcp.Tool{
		Name:        "build_project_tree",
		Description: "Assemble the build tool's introspection output into a hierarchical project tree",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"source_dir": map[string]interface{}{
					"type":        "string",
					"description": "Absolute path to the project source directory (the tree root)",
				},
				"introspection_file": map[string]interface{}{
					"type":        "string",
					"description": "Path to one introspection JSON dump",
				},
				"introspection_dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory of introspection reply files (merged in file-name order); alternative to introspection_file",
				},
			},
			Required: []string{"source_dir"},
		},
	}
}

// parseBuildOutputTool returns the tool definition for parse_build_output
func parseBuildOutputTool() mcp.Tool {
	return mcp.Tool{
		Name:        "parse_build_output",
		Description: "Extract progress and compiler diagnostics from captured build output",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"output": map[string]interface{}{
					"type":        "string",
					"description": "Captured build output text, one event evaluated per line",
				},
				"dialect": map[string]interface{}{
					"type":        "string",
					"description": "Diagnostic line format of the toolchain used for the build",
					"enum":        []string{"msvc", "gcc_clang"},
				},
				"source_dir": map[string]interface{}{
					"type":        "string",
					"description": "Directory relative diagnostic file paths resolve against",
				},
				"project_dir": map[string]interface{}{
					"type":        "string",
					"description": "Project directory the run is recorded under (defaults to source_dir)",
				},
				"record_run": map[string]interface{}{
					"type":        "boolean",
					"description": "If true, persist the run and its diagnostics for get_build_status",
					"default":     true,
				},
			},
			Required: []string{"output", "dialect"},
		},
	}
}

// getBuildStatusTool returns the tool definition for get_build_status
func getBuildStatusTool() mcp.Tool {
	return mcp.Tool{
		Name:        "get_build_status",
		Description: "Query stored build runs and diagnostics for a project",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"project_dir": map[string]interface{}{
					"type":        "string",
					"description": "Project directory to summarize",
				},
				"run_id": map[string]interface{}{
					"type":        "string",
					"description": "Fetch one run and its diagnostics instead of the project summary",
				},
				"severity": map[string]interface{}{
					"type":        "string",
					"description": "Filter run diagnostics by severity",
					"enum":        []string{"error", "warning", "unknown"},
				},
				"limit": map[string]interface{}{
					"type":        "integer",
					"description": "Maximum number of diagnostics to return (1-1000)",
					"default":     100,
					"minimum":     1,
					"maximum":     1000,
				},
			},
		},
	}
}
