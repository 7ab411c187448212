package projecttree

import (
	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// addNestedNode inserts a file leaf beneath folder, materializing the
// intermediate plain folders between the folder's root and the file's actual
// directory on demand. A file outside the folder's root attaches directly
// under the folder. A leaf whose path already exists is dropped, keeping
// sibling paths unique.
func addNestedNode(folder *types.Node, leaf *types.Node) {
	dir := dirOf(leaf.Path)

	parent := folder
	if dir != folder.Path && isUnder(dir, folder.Path) {
		remainder := splitComponents(dir)[len(splitComponents(folder.Path)):]
		current := folder.Path
		for _, part := range remainder {
			current = current + "/" + part
			child := parent.ChildByPath(current)
			if child == nil {
				child = newFolderNode(current)
				parent.AddChild(child)
			}
			parent = child
		}
	}

	if parent.ChildByPath(leaf.Path) == nil {
		parent.AddChild(leaf)
	}
}

// compressFolders collapses pass-through folder chains beneath a source group
// folder: any plain folder whose only child is another plain folder is merged
// into that child, with the display names joined. Running the pass twice
// yields the same tree as running it once.
func compressFolders(group *types.Node) {
	for _, child := range group.Children {
		if child.Kind == types.NodeFolder {
			compressNode(child)
		}
	}
}

// compressNode merges n with its single folder child, repeatedly, then
// recurses into the surviving children
func compressNode(n *types.Node) {
	for len(n.Children) == 1 && n.Children[0].Kind == types.NodeFolder {
		child := n.Children[0]
		n.Name = n.Name + "/" + child.Name
		n.Path = child.Path
		n.Children = child.Children
	}
	for _, child := range n.Children {
		if child.Kind == types.NodeFolder {
			compressNode(child)
		}
	}
}
