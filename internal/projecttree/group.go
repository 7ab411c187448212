package projecttree

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// ErrPathNotGroup is reported when a group path resolves to an existing node
// that is not a virtual group folder (for example a file occupying the same
// path). The caller treats it as "group creation skipped".
var ErrPathNotGroup = errors.New("group path aliases a non-group node")

// FindOrCreateGroup resolves the chain of virtual group folders for one group
// path, creating any missing ancestors under root.
//
// A nil node with a nil error means "no group": the segments were empty, or
// began with "" or the "." self-reference, and the caller attaches directly
// under root. Group nodes are memoized by full-path lookup over the whole
// tree, so repeated calls with the same segments return the same node.
func FindOrCreateGroup(root *types.Node, segments []string) (*types.Node, error) {
	if len(segments) == 0 || segments[0] == "" || segments[0] == "." {
		return nil, nil
	}

	groupPath := normalizePath(strings.Join(segments, "/"))

	if node := root.FindNodeByPath(groupPath); node != nil {
		if node.Kind != types.NodeGroup && node.Kind != types.NodeSourceGroup {
			return nil, fmt.Errorf("%w: %s is a %s node", ErrPathNotGroup, groupPath, node.Kind)
		}
		return node, nil
	}

	parent, err := FindOrCreateGroup(root, segments[:len(segments)-1])
	if err != nil {
		return nil, err
	}
	if parent == nil {
		parent = root
	}

	group := NewGroupFolder(groupPath, baseOf(groupPath))
	parent.AddChild(group)

	return group, nil
}
