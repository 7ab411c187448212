package projecttree

import (
	"log"

	"github.com/dshills/xmakecontext-mcp/pkg/types"
)

// BuildTree assembles the project tree for one introspection result.
//
// srcDir is the project source directory and becomes the root node's path.
// projectDir anchors relative source file paths. Targets are processed in
// input order and extra build-system files are attached last, into whichever
// folder node matches their containing directory. Identical input always
// produces a structurally identical tree.
func BuildTree(srcDir, projectDir string, targets []types.Target, extraBuildFiles []string) (*types.Node, error) {
	root := &types.Node{
		Kind: types.NodeProject,
		Path: normalizePath(srcDir),
		Name: baseOf(normalizePath(srcDir)),
	}

	targetDirs := make(map[string]struct{}, len(targets))

	for i := range targets {
		target := &targets[i]

		group, err := FindOrCreateGroup(root, target.Group)
		if err != nil {
			// The target still lands in the tree, just at the root.
			log.Printf("projecttree: skipping group for target %q: %v", target.Name, err)
		}
		if group == nil {
			group = root
		}

		targetDir := dirOf(resolveAgainst(projectDir, target.DefinedIn))
		targetNode := newTargetNode(targetDir, target.Name, target.Kind)
		group.AddChild(targetNode)

		buildSourceTree(targetNode, projectDir, target.SourceGroups)
		buildModuleTree(targetNode, projectDir, target.Modules)
		buildHeaderTree(targetNode, projectDir, target.Headers)

		if len(target.Packages) > 0 || len(target.Frameworks) > 0 {
			packages := NewExternalPackagesFolder(targetDir, target.Name, target.Packages, target.Frameworks)
			if packages != nil {
				targetNode.AddChild(packages)
			}
		}

		targetDirs[targetDir] = struct{}{}
	}

	attachExtraBuildFiles(root, srcDir, extraBuildFiles)

	return root, nil
}

// buildSourceTree creates the "Source Files" folder at the common ancestor of
// every source-group file and nests the compiled sources beneath it. Files
// with header extensions stay out of the source tree.
func buildSourceTree(targetNode *types.Node, projectDir string, groups []types.SourceGroup) {
	var files []string
	for _, group := range groups {
		for _, source := range group.Sources {
			files = append(files, resolveAgainst(projectDir, source))
		}
	}

	folder := NewSourceGroupFolder(CommonRoot(files), "Source Files")
	if folder == nil {
		return
	}

	for _, group := range groups {
		for _, source := range group.Sources {
			if hasHeaderExtension(source) {
				continue
			}
			leaf := NewFileLeaf(resolveAgainst(projectDir, source), types.FileSource)
			addNestedNode(folder, leaf)
		}
	}

	targetNode.AddChild(folder)
}

// buildModuleTree creates the "Module Files" folder, nests every module file
// and collapses single-child pass-through folders afterwards
func buildModuleTree(targetNode *types.Node, projectDir string, modules []string) {
	if len(modules) == 0 {
		return
	}

	resolved := make([]string, 0, len(modules))
	for _, module := range modules {
		resolved = append(resolved, resolveAgainst(projectDir, module))
	}

	folder := NewSourceGroupFolder(CommonRoot(resolved), "Module Files")
	if folder == nil {
		return
	}

	for _, module := range resolved {
		addNestedNode(folder, NewFileLeaf(module, types.FileSource))
	}
	compressFolders(folder)

	targetNode.AddChild(folder)
}

// buildHeaderTree creates the "Header Files" folder for a target's standalone
// headers and nests each one beneath it
func buildHeaderTree(targetNode *types.Node, projectDir string, headers []string) {
	if len(headers) == 0 {
		return
	}

	resolved := make([]string, 0, len(headers))
	for _, header := range headers {
		resolved = append(resolved, resolveAgainst(projectDir, header))
	}

	folder := NewSourceGroupFolder(CommonRoot(resolved), "Header Files")
	if folder == nil {
		return
	}

	for _, header := range resolved {
		addNestedNode(folder, NewFileLeaf(header, types.FileHeader))
	}

	targetNode.AddChild(folder)
}

// attachExtraBuildFiles places each build-system descriptor file into the
// folder node matching its containing directory. A file whose directory has
// no folder node anywhere in the tree is dropped; no synthetic folder is
// created for orphaned build files.
func attachExtraBuildFiles(root *types.Node, srcDir string, files []string) {
	for _, file := range files {
		abs := resolveAgainst(srcDir, file)
		node := root.FindNodeByPath(dirOf(abs))
		if node == nil || !node.IsFolder() {
			continue
		}
		if node.ChildByPath(abs) == nil {
			node.AddChild(NewFileLeaf(abs, types.FileProject))
		}
	}
}
