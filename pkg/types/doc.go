// Package types provides shared type definitions for the XMakeContext MCP server.
//
// This package defines domain types used across multiple components of XMakeContext,
// including build targets, project tree nodes, and build output events.
//
// # Core Types
//
// Target represents one buildable unit as reported by the build tool's
// introspection output:
//
//	target := &types.Target{
//	    Name:      "app",
//	    Kind:      types.KindBinary,
//	    DefinedIn: "/src/proj/xmake.lua",
//	    Group:     []string{"tools", "cli"},
//	}
//
// Node represents one entry of the assembled project tree. Node kinds are a
// tagged variant rather than an interface hierarchy; dispatch is a switch on
// Node.Kind:
//
//	switch node.Kind {
//	case types.NodeTarget:
//	    fmt.Println("target", node.Name, node.Product)
//	case types.NodeGroup, types.NodeSourceGroup:
//	    fmt.Println("folder", node.Path)
//	}
//
// # Build Output Events
//
// BuildEvent is the per-line result of feeding build output to the output
// parser. A line produces at most one event: a progress percentage or a
// Diagnostic with optional link spans back into the line text:
//
//	event := parser.HandleLine(line, types.StreamStdout)
//	if event != nil && event.Kind == types.EventDiagnostic {
//	    fmt.Printf("%s:%d %s\n", event.Diagnostic.File, event.Diagnostic.Line,
//	        event.Diagnostic.Message)
//	}
//
// # Validation
//
// Domain types implement validation methods to ensure data integrity:
//
//	if err := target.Validate(); err != nil {
//	    log.Fatal(err)
//	}
package types
