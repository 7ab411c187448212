package types

// TargetKind represents the kind of buildable unit reported by the build tool
type TargetKind string

const (
	KindBinary     TargetKind = "binary"
	KindShared     TargetKind = "shared"
	KindStatic     TargetKind = "static"
	KindObject     TargetKind = "object"
	KindHeaderOnly TargetKind = "headeronly"
)

// ProductType is the coarse classification a target node carries in the tree
type ProductType string

const (
	ProductApp   ProductType = "application"
	ProductLib   ProductType = "library"
	ProductOther ProductType = "other"
)

// ProductTypeForKind maps a build tool target kind to its product classification.
// Binaries are applications; every library-like kind collapses to library.
func ProductTypeForKind(kind TargetKind) ProductType {
	switch kind {
	case KindBinary:
		return ProductApp
	case KindShared, KindStatic, KindObject, KindHeaderOnly:
		return ProductLib
	}
	return ProductOther
}

// SourceGroup is a named collection of source file paths belonging to a target
type SourceGroup struct {
	Name    string   `json:"name"`
	Sources []string `json:"sources"`
}

// Target describes one buildable unit from the build tool's introspection output.
// It is read-only input to the tree builder.
type Target struct {
	Name      string     `json:"name"`
	Kind      TargetKind `json:"kind"`
	DefinedIn string     `json:"defined_in"` // Path of the build file declaring the target
	Group     []string   `json:"group"`      // Logical group path segments, may be empty

	SourceGroups []SourceGroup `json:"source_groups"`
	Headers      []string      `json:"headers"`
	Modules      []string      `json:"modules"`
	Packages     []string      `json:"packages"`
	Frameworks   []string      `json:"frameworks"`
}

// Validate checks if the target descriptor is valid
func (t *Target) Validate() error {
	if t.Name == "" {
		return ErrMissingTargetName
	}

	if t.DefinedIn == "" {
		return ErrMissingDefinedIn
	}

	switch t.Kind {
	case KindBinary, KindShared, KindStatic, KindObject, KindHeaderOnly:
	default:
		return ErrUnknownTargetKind
	}

	return nil
}

// BuildOption is one configurable option reported by the build tool
type BuildOption struct {
	Name        string   `json:"name"`
	Kind        string   `json:"kind"`
	Value       string   `json:"value"`
	Description string   `json:"description,omitempty"`
	Choices     []string `json:"choices,omitempty"`
}
