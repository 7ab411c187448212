// Package outputparser incrementally parses the build tool's streamed textual
// output into progress events and structured compiler diagnostics.
//
// The parser is stateful and streaming: it is constructed once per build run
// with a fixed dialect, fed one line at a time, and queried for its two
// sticky flags once the stream ends. Every line is evaluated independently;
// a line either yields exactly one event or none at all, and unparsable
// lines are never an error.
//
//	p := outputparser.New(outputparser.DialectGCCClang)
//	p.SetSourceDirectory("/src/proj")
//
//	for line := range lines {
//	    if event := p.HandleLine(line, types.StreamStdout); event != nil {
//	        emit(event)
//	    }
//	}
//
//	if p.HasFatalErrors() {
//	    // The run failed even if the exit status claims otherwise.
//	}
//
// # Dialects
//
// Two line formats are recognized, chosen at construction and immutable
// afterwards:
//
//   - MSVC: "file(line): message". No column is ever produced; severity
//     comes from the leading keyword of the message, when present.
//   - GCC/Clang: "error: file:line:col: message" (or the warning-prefixed
//     variant). Severity comes from the matched keyword.
//
// Progress markers ("[ 42%]") are checked before the dialect regex and are
// the same for both dialects. Progress is not monotonic across a run and
// values are passed through without clamping.
//
// # Redirection
//
// Lines showing that the build tool is echoing a different underlying build
// driver's output (make or ninja directory banners) set a sticky flag the
// caller uses to suppress duplicate generic parsing.
package outputparser
