// Package projecttree assembles the build tool's flat target list into a
// hierarchical project tree.
//
// The builder turns an ordered list of target descriptors into a tree of
// nodes: targets grouped into virtual folders derived from their group paths,
// with synthetic "Source Files", "Module Files", "Header Files" and
// "External Packages" folders nested beneath each target.
//
// # Basic Usage
//
//	root, err := projecttree.BuildTree("/src/proj", "/src/proj", targets, bsFiles)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	root.FindNode(func(n *types.Node) bool {
//	    fmt.Println(n.Kind, n.Path)
//	    return false
//	})
//
// # Invariants
//
// Construction is deterministic: identical input produces a structurally
// identical tree, with children in input iteration order. Group folders are
// memoized by full-path lookup, so two targets sharing a group path share one
// group node. No two siblings carry the same normalized path.
//
// # Error Handling
//
// The builder never aborts partway. Degenerate inputs (empty group paths,
// empty file lists) skip the corresponding node instead of failing, and an
// extra build file whose directory has no folder node in the tree is dropped
// silently. The one named failure, ErrPathNotGroup, is reported when a group
// path aliases an existing non-group node; the builder logs it and attaches
// the target at the root.
package projecttree
