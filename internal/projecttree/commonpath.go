package projecttree

// CommonRoot computes the directory that encloses every path in the input,
// compared component-by-component. The result anchors the synthetic
// "Source/Header/Module Files" folder for one target.
//
// An empty input yields "" and the caller must skip creating the folder. A
// single path yields its containing directory. String prefixes are not
// enough: "/a/bc" and "/a/bd" share "/a", not "/a/b".
func CommonRoot(paths []string) string {
	if len(paths) == 0 {
		return ""
	}

	common := splitComponents(dirOf(normalizePath(paths[0])))
	for _, p := range paths[1:] {
		parts := splitComponents(dirOf(normalizePath(p)))
		if len(parts) < len(common) {
			common = common[:len(parts)]
		}
		for i := range common {
			if common[i] != parts[i] {
				common = common[:i]
				break
			}
		}
		if len(common) == 0 {
			break
		}
	}

	return joinComponents(common)
}
