package projecttree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

func simpleTarget() types.Target {
	return types.Target{
		Name:      "app",
		Kind:      types.KindBinary,
		DefinedIn: "/proj/xmake.lua",
		Group:     []string{"a", "b"},
		SourceGroups: []types.SourceGroup{
			{Name: "default", Sources: []string{"a/b/x.cpp"}},
		},
	}
}

func TestBuildTree_GroupedTargetScenario(t *testing.T) {
	root, err := BuildTree("/proj", ".", []types.Target{simpleTarget()}, nil)
	require.NoError(t, err)

	groupA := root.FindNodeByPath("a")
	require.NotNil(t, groupA)
	assert.Equal(t, types.NodeGroup, groupA.Kind)

	groupAB := root.FindNodeByPath("a/b")
	require.NotNil(t, groupAB)
	assert.Equal(t, types.NodeGroup, groupAB.Kind)

	targetNode := groupAB.ChildByPath("/proj")
	require.NotNil(t, targetNode)
	assert.Equal(t, types.NodeTarget, targetNode.Kind)
	assert.Equal(t, "app", targetNode.Name)
	assert.Equal(t, types.ProductApp, targetNode.Product)

	sourceGroup := targetNode.ChildByPath("a/b")
	require.NotNil(t, sourceGroup)
	assert.Equal(t, types.NodeSourceGroup, sourceGroup.Kind)
	assert.Equal(t, "Source Files", sourceGroup.Name)
	assert.True(t, sourceGroup.IsSourcesOrHeaders)

	require.Len(t, sourceGroup.Children, 1)
	file := sourceGroup.Children[0]
	assert.Equal(t, types.NodeFile, file.Kind)
	assert.Equal(t, "x.cpp", file.Name)
	assert.Equal(t, "a/b/x.cpp", file.Path)
	assert.Equal(t, types.FileSource, file.FileType)
}

func TestBuildTree_Deterministic(t *testing.T) {
	targets := []types.Target{
		simpleTarget(),
		{
			Name:      "lib",
			Kind:      types.KindStatic,
			DefinedIn: "/proj/lib/xmake.lua",
			Group:     []string{"a"},
			SourceGroups: []types.SourceGroup{
				{Name: "default", Sources: []string{"/proj/lib/l1.cpp", "/proj/lib/sub/l2.cpp"}},
			},
			Headers: []string{"/proj/lib/l1.h"},
		},
	}
	extra := []string{"xmake.lua", "lib/xmake.lua"}

	first, err := BuildTree("/proj", "/proj", targets, extra)
	require.NoError(t, err)
	second, err := BuildTree("/proj", "/proj", targets, extra)
	require.NoError(t, err)

	assert.Equal(t, first, second, "identical input must build an identical tree")
}

func TestBuildTree_SharedGroupCreatedOnce(t *testing.T) {
	targets := []types.Target{
		{Name: "one", Kind: types.KindBinary, DefinedIn: "/proj/one/xmake.lua", Group: []string{"a"}},
		{Name: "two", Kind: types.KindShared, DefinedIn: "/proj/two/xmake.lua", Group: []string{"a"}},
	}

	root, err := BuildTree("/proj", "/proj", targets, nil)
	require.NoError(t, err)

	var groups []*types.Node
	root.FindNode(func(n *types.Node) bool {
		if n.Kind == types.NodeGroup && n.Path == "a" {
			groups = append(groups, n)
		}
		return false
	})

	require.Len(t, groups, 1)
	assert.Len(t, groups[0].Children, 2)
}

func TestBuildTree_RoundTripFiles(t *testing.T) {
	target := types.Target{
		Name:      "core",
		Kind:      types.KindStatic,
		DefinedIn: "/proj/core/xmake.lua",
		SourceGroups: []types.SourceGroup{
			{Name: "a", Sources: []string{"/proj/core/src/a.cpp", "/proj/core/src/io/b.cpp"}},
			{Name: "b", Sources: []string{"/proj/core/src/c.c"}},
		},
		Headers: []string{"/proj/core/include/core.h", "/proj/core/include/detail/impl.hpp"},
		Modules: []string{"/proj/core/modules/m1.mpp", "/proj/core/modules/deep/m2.mpp"},
	}

	root, err := BuildTree("/proj", "/proj", []types.Target{target}, nil)
	require.NoError(t, err)

	targetNode := root.FindNode(func(n *types.Node) bool { return n.Kind == types.NodeTarget })
	require.NotNil(t, targetNode)

	want := []string{
		"/proj/core/src/a.cpp",
		"/proj/core/src/io/b.cpp",
		"/proj/core/src/c.c",
		"/proj/core/include/core.h",
		"/proj/core/include/detail/impl.hpp",
		"/proj/core/modules/m1.mpp",
		"/proj/core/modules/deep/m2.mpp",
	}

	for _, path := range want {
		count := 0
		targetNode.FindNode(func(n *types.Node) bool {
			if n.Kind == types.NodeFile && n.Path == path {
				count++
			}
			return false
		})
		assert.Equal(t, 1, count, "file %s must appear exactly once", path)
	}
}

func TestBuildTree_HeaderExtensionsExcludedFromSources(t *testing.T) {
	target := types.Target{
		Name:      "mixed",
		Kind:      types.KindStatic,
		DefinedIn: "/proj/xmake.lua",
		SourceGroups: []types.SourceGroup{
			{Name: "default", Sources: []string{
				"/proj/src/a.cpp",
				"/proj/src/a.hpp",
				"/proj/src/a.inl",
				"/proj/src/a.ixx",
			}},
		},
	}

	root, err := BuildTree("/proj", "/proj", []types.Target{target}, nil)
	require.NoError(t, err)

	sourceGroup := root.FindNode(func(n *types.Node) bool {
		return n.Kind == types.NodeSourceGroup && n.Name == "Source Files"
	})
	require.NotNil(t, sourceGroup)

	require.Len(t, sourceGroup.Children, 1)
	assert.Equal(t, "/proj/src/a.cpp", sourceGroup.Children[0].Path)
}

func TestBuildTree_ModuleTreeCompressed(t *testing.T) {
	target := types.Target{
		Name:      "mod",
		Kind:      types.KindStatic,
		DefinedIn: "/proj/xmake.lua",
		Modules: []string{
			"/proj/modules/a/deep/chain/m1.mpp",
			"/proj/modules/a/deep/chain/m2.mpp",
		},
	}

	root, err := BuildTree("/proj", "/proj", []types.Target{target}, nil)
	require.NoError(t, err)

	moduleGroup := root.FindNode(func(n *types.Node) bool {
		return n.Kind == types.NodeSourceGroup && n.Name == "Module Files"
	})
	require.NotNil(t, moduleGroup)
	assert.Equal(t, "/proj/modules/a/deep/chain", moduleGroup.Path)

	// Both modules share the folder, so no pass-through chain survives.
	require.Len(t, moduleGroup.Children, 2)
	for _, child := range moduleGroup.Children {
		assert.Equal(t, types.NodeFile, child.Kind)
	}
}

func TestCompressFolders_Idempotent(t *testing.T) {
	build := func() *types.Node {
		folder := NewSourceGroupFolder("/m", "Module Files")
		addNestedNode(folder, NewFileLeaf("/m/a/b/c/one.mpp", types.FileSource))
		addNestedNode(folder, NewFileLeaf("/m/a/b/two.mpp", types.FileSource))
		return folder
	}

	once := build()
	compressFolders(once)

	twice := build()
	compressFolders(twice)
	compressFolders(twice)

	assert.Equal(t, once, twice)
}

func TestBuildTree_ExternalPackages(t *testing.T) {
	target := types.Target{
		Name:       "app",
		Kind:       types.KindBinary,
		DefinedIn:  "/proj/xmake.lua",
		Packages:   []string{"fmt", "spdlog"},
		Frameworks: []string{"CoreFoundation"},
	}

	root, err := BuildTree("/proj", "/proj", []types.Target{target}, nil)
	require.NoError(t, err)

	packages := root.FindNode(func(n *types.Node) bool { return n.Name == "External Packages" })
	require.NotNil(t, packages)
	assert.Equal(t, "/proj", packages.Path)
	assert.False(t, packages.ListInProject)

	require.Len(t, packages.Children, 3)
	// Packages first, then frameworks, in input order.
	assert.Equal(t, "fmt", packages.Children[0].Name)
	assert.Equal(t, "spdlog", packages.Children[1].Name)
	assert.Equal(t, "CoreFoundation", packages.Children[2].Name)
	for _, leaf := range packages.Children {
		assert.False(t, leaf.ListInProject)
		assert.Equal(t, types.FileUnknown, leaf.FileType)
	}
}

func TestBuildTree_ExtraBuildFiles(t *testing.T) {
	targets := []types.Target{
		{Name: "app", Kind: types.KindBinary, DefinedIn: "/proj/xmake.lua"},
	}
	extra := []string{"xmake.lua", "orphan/xmake.lua"}

	root, err := BuildTree("/proj", "/proj", targets, extra)
	require.NoError(t, err)

	// The root is the folder matching /proj, so the top-level build file
	// lands there.
	attached := root.ChildByPath("/proj/xmake.lua")
	require.NotNil(t, attached)
	assert.Equal(t, types.FileProject, attached.FileType)

	// No folder matches /proj/orphan; the file is silently dropped.
	assert.Nil(t, root.FindNodeByPath("/proj/orphan/xmake.lua"))
	assert.Nil(t, root.FindNodeByPath("/proj/orphan"))
}

func TestBuildTree_TargetWithAliasedGroupFallsBackToRoot(t *testing.T) {
	targets := []types.Target{
		{
			Name:       "dep",
			Kind:       types.KindBinary,
			DefinedIn:  "/proj/xmake.lua",
			Packages:   []string{"zlib"},
			Group:      nil,
			Frameworks: nil,
		},
	}

	root, err := BuildTree("/proj", "/proj", targets, nil)
	require.NoError(t, err)
	targetNode := root.Children[0]
	require.Equal(t, types.NodeTarget, targetNode.Kind)

	// A later target whose group path collides with the package leaf path
	// still builds, attached at the root.
	packages := targetNode.ChildByPath("/proj")
	require.NotNil(t, packages)
	leafPath := packages.Children[0].Path

	more := append(targets, types.Target{
		Name:      "late",
		Kind:      types.KindStatic,
		DefinedIn: "/proj/late/xmake.lua",
		Group:     splitComponents(leafPath),
	})

	root, err = BuildTree("/proj", "/proj", more, nil)
	require.NoError(t, err)

	late := root.FindNode(func(n *types.Node) bool { return n.Kind == types.NodeTarget && n.Name == "late" })
	require.NotNil(t, late)
	assert.Contains(t, root.Children, late, "aliased group falls back to attaching at the root")
}
