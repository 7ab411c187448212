package main

import (
	"bufio"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/dshills/xmakecontext-mcp/internal/outputparser"
	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// parselog is a development utility that runs the build output parser over a
// captured log and prints the recognized events as JSON lines. It is useful
// for checking dialect regexes against real tool output without going
// through the MCP server.
func main() {
	dialectName := flag.String("dialect", "gcc_clang", "output dialect: gcc_clang or msvc")
	sourceDir := flag.String("source-dir", "", "directory relative diagnostic paths resolve against")
	flag.Parse()

	var dialect outputparser.Dialect
	switch *dialectName {
	case "gcc_clang":
		dialect = outputparser.DialectGCCClang
	case "msvc":
		dialect = outputparser.DialectMSVC
	default:
		log.Fatalf("unknown dialect %q (want gcc_clang or msvc)", *dialectName)
	}

	var input io.Reader = os.Stdin
	if flag.NArg() > 0 {
		f, err := os.Open(flag.Arg(0))
		if err != nil {
			log.Fatalf("failed to open log file: %v", err)
		}
		defer f.Close()
		input = f
	}

	parser := outputparser.New(dialect)
	if *sourceDir != "" {
		parser.SetSourceDirectory(*sourceDir)
	}

	enc := json.NewEncoder(os.Stdout)
	var diagnostics, progress int

	scanner := bufio.NewScanner(input)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		event := parser.HandleLine(scanner.Text(), types.StreamStdout)
		if event == nil {
			continue
		}
		switch event.Kind {
		case types.EventProgress:
			progress = event.Progress
		case types.EventDiagnostic:
			diagnostics++
		}
		if err := enc.Encode(event); err != nil {
			log.Fatalf("failed to encode event: %v", err)
		}
	}
	if err := scanner.Err(); err != nil {
		log.Fatalf("failed to read input: %v", err)
	}

	fmt.Fprintf(os.Stderr, "diagnostics: %d, last progress: %d%%, fatal: %v, redirected: %v\n",
		diagnostics, progress, parser.HasFatalErrors(), parser.HasDetectedRedirection())

	if parser.HasFatalErrors() {
		os.Exit(1)
	}
}
