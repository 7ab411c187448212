// Package storage provides SQLite-based persistence for build runs and the
// diagnostics extracted from their output.
//
// The storage layer manages:
//   - Build run metadata (project, dialect, progress, outcome)
//   - Structured diagnostics extracted per run
//
// The core engines (tree builder, output parser) never touch storage; only
// the MCP layer writes through it so that clients can query past runs.
//
// # Database Schema
//
// Tables:
//   - runs: One row per build invocation (UUID primary key)
//   - diagnostics: Extracted diagnostics, ordered by sequence within a run
//   - schema_version: Migration bookkeeping
//
// # Basic Usage
//
//	db, err := storage.NewSQLiteStorage("~/.xmakecontext/runs.db")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer db.Close()
//
//	run := &storage.Run{ProjectDir: "/src/proj", Dialect: "gcc_clang"}
//	if err := db.CreateRun(ctx, run); err != nil {
//	    log.Fatal(err)
//	}
//
// # Build Modes
//
// Two SQLite drivers are supported via build tags: the cgo driver
// (github.com/mattn/go-sqlite3) and a pure Go driver (modernc.org/sqlite)
// for CGO-free cross-compilation. See build_cgo.go and build_purego.go.
package storage
