package projecttree

import (
	"path"
	"strings"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// headerExtensions are never classified as compiled sources, even when a
// source group lists them. ".mpp" is a language module and belongs to the
// module tree.
var headerExtensions = map[string]struct{}{
	".h":   {},
	".hpp": {},
	".hxx": {},
	".tpp": {},
	".ixx": {},
	".inl": {},
	".mpp": {},
}

// hasHeaderExtension reports whether the file name carries a header-like extension
func hasHeaderExtension(file string) bool {
	_, ok := headerExtensions[strings.ToLower(path.Ext(file))]
	return ok
}

// NewVirtualFolder creates a bare virtual folder node. Returns nil on an
// empty path; the caller must skip attaching.
func NewVirtualFolder(p, name string) *types.Node {
	if p == "" {
		return nil
	}
	return &types.Node{
		Kind: types.NodeGroup,
		Path: normalizePath(p),
		Name: name,
	}
}

// NewGroupFolder creates the virtual folder for one segment of a target group
// path. Group folders are synthetic: not sources or headers, not listed in
// the project file set, tagged with the modules category.
func NewGroupFolder(p, name string) *types.Node {
	node := NewVirtualFolder(p, name)
	if node == nil {
		return nil
	}
	node.IsSourcesOrHeaders = false
	node.ListInProject = false
	node.Overlay = types.OverlayModules
	return node
}

// NewSourceGroupFolder creates the synthetic folder holding one target's
// source, header or module files
func NewSourceGroupFolder(p, name string) *types.Node {
	node := NewVirtualFolder(p, name)
	if node == nil {
		return nil
	}
	node.Kind = types.NodeSourceGroup
	node.IsSourcesOrHeaders = true
	node.ListInProject = false
	node.Overlay = types.OverlayCopy
	return node
}

// NewFileLeaf creates a file leaf. Creation always succeeds; classification
// is mechanical from the requested type and the file extension. A file with a
// header extension is a header even when requested as a source.
func NewFileLeaf(p string, requested types.FileType) *types.Node {
	normalized := normalizePath(p)
	fileType := requested
	if requested == types.FileSource && hasHeaderExtension(normalized) {
		fileType = types.FileHeader
	}

	node := &types.Node{
		Kind:          types.NodeFile,
		Path:          normalized,
		Name:          baseOf(normalized),
		FileType:      fileType,
		ListInProject: fileType != types.FileUnknown,
	}

	switch {
	case fileType == types.FileHeader:
		node.Overlay = types.OverlayHeader
	case strings.HasSuffix(normalized, ".cpp") || strings.HasSuffix(normalized, ".mpp"):
		node.Overlay = types.OverlayCPP
	case strings.HasSuffix(normalized, ".c"):
		node.Overlay = types.OverlayC
	}

	return node
}

// NewExternalPackagesFolder creates the "External Packages" folder for a
// target, with one leaf per linked package then per framework. Returns nil on
// an empty path.
func NewExternalPackagesFolder(p, targetName string, packages, frameworks []string) *types.Node {
	parent := NewVirtualFolder(p, "External Packages")
	if parent == nil {
		return nil
	}
	parent.IsSourcesOrHeaders = false
	parent.ListInProject = false
	parent.Overlay = types.OverlayModules

	for _, list := range [][]string{packages, frameworks} {
		for _, pkg := range list {
			leaf := &types.Node{
				Kind:          types.NodeFile,
				Path:          normalizePath(path.Join(parent.Path, pkg)),
				Name:          pkg,
				FileType:      types.FileUnknown,
				ListInProject: false,
				Overlay:       types.OverlayModules,
			}
			parent.AddChild(leaf)
		}
	}

	return parent
}

// newTargetNode creates the tree node for one target, classified by its kind
func newTargetNode(dir, name string, kind types.TargetKind) *types.Node {
	return &types.Node{
		Kind:    types.NodeTarget,
		Path:    normalizePath(dir),
		Name:    name,
		Product: types.ProductTypeForKind(kind),
	}
}

// newFolderNode creates a plain folder materialized during nested insertion
func newFolderNode(p string) *types.Node {
	return &types.Node{
		Kind: types.NodeFolder,
		Path: normalizePath(p),
		Name: baseOf(normalizePath(p)),
	}
}
