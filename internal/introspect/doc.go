// Package introspect decodes the build tool's machine-readable introspection
// dump into the typed target list consumed by the tree builder.
//
// A dump is one JSON document carrying the project's targets, configurable
// build options, build-system file list, QML import paths and optional tool
// version. Decoding is tolerant: a target that fails validation is skipped
// and recorded in Result.Errors, and decoding continues.
//
//	result, err := introspect.Parse(data)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	root, _ := projecttree.BuildTree(srcDir, result.ProjectDir, result.Targets, result.BuildSystemFiles)
//
// LoadDir reads every .json reply file from a directory concurrently and
// merges the results in file-name order, so repeated loads of the same
// directory are deterministic.
package introspect
