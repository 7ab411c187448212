// Package mcp implements the Model Context Protocol (MCP) server for XMakeContext.
//
// The MCP server exposes three tools to AI coding assistants and IDE clients:
//   - build_project_tree: Assemble a project's introspection dump into a tree
//   - parse_build_output: Extract progress and diagnostics from a build log
//   - get_build_status: Query stored build runs and their diagnostics
//
// # Protocol Overview
//
// MCP is a JSON-RPC 2.0 protocol over stdio transport:
//
//	Client → Server: {"method": "tools/call", "params": {...}}
//	Server → Client: {"result": {...}}
//
// The server communicates with MCP clients via standard input/output,
// making it simple to integrate with any MCP-compatible client.
//
// # Tool: build_project_tree
//
// Decode an introspection dump (a file or a directory of reply files) and
// return the assembled project tree as JSON:
//
//	Request:  {"source_dir": "/src/proj", "introspection_file": "/src/proj/.xmake/info.json"}
//	Response: {"tree": {...}, "targets": 4, "dropped_targets": []}
//
// # Tool: parse_build_output
//
// Feed a captured build log through the output parser. The run and its
// diagnostics are recorded in storage so later get_build_status calls can
// report on them:
//
//	Request:  {"output": "...", "dialect": "gcc_clang", "source_dir": "/src/proj"}
//	Response: {"run_id": "...", "progress": 100, "events": [...],
//	           "diagnostics_count": 2, "fatal_errors": true,
//	           "detected_redirection": false}
//
// # Tool: get_build_status
//
// Summarize the stored run history for a project directory, or fetch one
// run's diagnostics by ID.
package mcp
