package types

// StreamKind identifies which stream of the build process a line came from
type StreamKind string

const (
	StreamStdout StreamKind = "stdout"
	StreamStderr StreamKind = "stderr"
)

// Severity classifies a diagnostic line
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityUnknown Severity = "unknown"
)

// Diagnostic is one compiler diagnostic extracted from a build output line
type Diagnostic struct {
	Severity Severity `json:"severity"`
	File     string   `json:"file,omitempty"`   // Absent if unparsable
	Line     int      `json:"line,omitempty"`   // 1-based, 0 = absent
	Column   int      `json:"column,omitempty"` // 1-based, 0 = absent (MSVC never reports one)
	Message  string   `json:"message"`
	Fatal    bool     `json:"fatal,omitempty"` // Error-level diagnostics fail the build
}

// LinkSpec identifies a byte range within the original line that refers to an
// actionable file location, for hyperlinking by the consumer
type LinkSpec struct {
	Start  int    `json:"start"`  // Byte offset into the line
	Length int    `json:"length"` // Byte length of the span
	File   string `json:"file"`   // Resolved file the span points at
	Line   int    `json:"line,omitempty"`
}

// EventKind discriminates the variants of a build output event
type EventKind string

const (
	EventProgress   EventKind = "progress"
	EventDiagnostic EventKind = "diagnostic"
)

// BuildEvent is the result of parsing one build output line. At most one event
// is produced per line; lines matching nothing produce no event at all.
type BuildEvent struct {
	Kind EventKind `json:"kind"`

	// Progress percentage. The source format does not guarantee monotonicity
	// and values are passed through without clamping.
	Progress int `json:"progress,omitempty"`

	Diagnostic *Diagnostic `json:"diagnostic,omitempty"`
	Links      []LinkSpec  `json:"links,omitempty"`
}

// Validate checks if the event is internally consistent
func (e *BuildEvent) Validate() error {
	switch e.Kind {
	case EventProgress:
		if e.Diagnostic != nil {
			return ErrEventPayload
		}
	case EventDiagnostic:
		if e.Diagnostic == nil {
			return ErrEventPayload
		}
	default:
		return ErrUnknownEventKind
	}
	return nil
}
