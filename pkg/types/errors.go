package types

import "errors"

// Domain errors for type validation
var (
	// Target errors
	ErrMissingTargetName = errors.New("target name is required")
	ErrMissingDefinedIn  = errors.New("target defining file is required")
	ErrUnknownTargetKind = errors.New("unknown target kind")

	// Node errors
	ErrEmptyNodePath    = errors.New("node path cannot be empty")
	ErrFileNodeChildren = errors.New("file node cannot have children")
	ErrDuplicateSibling = errors.New("sibling nodes must have distinct paths")

	// Event errors
	ErrEventPayload     = errors.New("event payload does not match its kind")
	ErrUnknownEventKind = errors.New("unknown event kind")
)
