package types

// NodeKind discriminates the variants of a project tree node
type NodeKind string

const (
	NodeProject     NodeKind = "project"      // Tree root
	NodeTarget      NodeKind = "target"       // Buildable unit
	NodeGroup       NodeKind = "group"        // Virtual folder from a target group path
	NodeSourceGroup NodeKind = "source_group" // Synthetic "Source/Header/Module Files" folder
	NodeFolder      NodeKind = "folder"       // Plain on-disk directory materialized under a source group
	NodeFile        NodeKind = "file"         // Leaf
)

// FileType classifies a file leaf
type FileType string

const (
	FileSource  FileType = "source"
	FileHeader  FileType = "header"
	FileUnknown FileType = "unknown"
	FileProject FileType = "project" // Build-system descriptor file
)

// Overlay is the visual category tag a presentation layer maps to an icon.
// The core only assigns the tag; rendering is out of scope.
type Overlay string

const (
	OverlayNone    Overlay = ""
	OverlayModules Overlay = "modules"
	OverlayCPP     Overlay = "cpp"
	OverlayC       Overlay = "c"
	OverlayHeader  Overlay = "h"
	OverlayCopy    Overlay = "copy"
)

// Node is one entry of the project tree. Kind selects which payload fields are
// meaningful: Product for targets, FileType for file leaves. Children are
// exclusively owned by the node; the tree is a tree, not a graph.
type Node struct {
	Kind NodeKind `json:"kind"`
	Path string   `json:"path"` // Normalized, slash-separated
	Name string   `json:"name"` // Display name

	Children []*Node `json:"children,omitempty"`

	IsSourcesOrHeaders bool    `json:"is_sources_or_headers,omitempty"`
	ListInProject      bool    `json:"list_in_project,omitempty"`
	Overlay            Overlay `json:"overlay,omitempty"`

	Product  ProductType `json:"product,omitempty"`   // Targets only
	FileType FileType    `json:"file_type,omitempty"` // Files only
}

// IsFolder reports whether the node can hold children. Every kind except a
// file leaf is a folder in this sense, matching how extra build files and
// group lookups treat target nodes.
func (n *Node) IsFolder() bool {
	return n.Kind != NodeFile
}

// AddChild appends a child node. Sibling path uniqueness is the caller's
// responsibility; the builder always searches before creating.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// ChildByPath returns the direct child with the given path, or nil
func (n *Node) ChildByPath(path string) *Node {
	for _, child := range n.Children {
		if child.Path == path {
			return child
		}
	}
	return nil
}

// FindNode performs a depth-first search over the subtree rooted at n
// (including n itself) and returns the first node matching pred, or nil.
// Children are visited in insertion order, so results are deterministic.
func (n *Node) FindNode(pred func(*Node) bool) *Node {
	if pred(n) {
		return n
	}
	for _, child := range n.Children {
		if found := child.FindNode(pred); found != nil {
			return found
		}
	}
	return nil
}

// FindNodeByPath is a convenience wrapper for the common path-equality search
func (n *Node) FindNodeByPath(path string) *Node {
	return n.FindNode(func(node *Node) bool { return node.Path == path })
}

// Validate checks if the node is structurally valid
func (n *Node) Validate() error {
	if n.Path == "" {
		return ErrEmptyNodePath
	}

	if n.Kind == NodeFile && len(n.Children) > 0 {
		return ErrFileNodeChildren
	}

	seen := make(map[string]struct{}, len(n.Children))
	for _, child := range n.Children {
		if _, dup := seen[child.Path]; dup {
			return ErrDuplicateSibling
		}
		seen[child.Path] = struct{}{}
	}

	return nil
}
