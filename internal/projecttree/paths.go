package projecttree

import (
	"path"
	"regexp"
	"strings"
)

// Tree paths are normalized to forward slashes so lookups behave identically
// on every platform and for every dialect of input path.

var driveLetterRe = regexp.MustCompile(`^[A-Za-z]:[/\\]`)

// normalizePath converts separators to forward slashes and cleans the result
func normalizePath(p string) string {
	if p == "" {
		return ""
	}
	return path.Clean(strings.ReplaceAll(p, `\`, "/"))
}

// isAbsPath reports whether p is absolute in either POSIX or Windows form
func isAbsPath(p string) bool {
	return strings.HasPrefix(p, "/") || driveLetterRe.MatchString(p)
}

// resolveAgainst normalizes p, resolving it against base when relative
func resolveAgainst(base, p string) string {
	if p == "" {
		return ""
	}
	if isAbsPath(p) {
		return normalizePath(p)
	}
	return normalizePath(path.Join(normalizePath(base), strings.ReplaceAll(p, `\`, "/")))
}

// dirOf returns the containing directory of a normalized path
func dirOf(p string) string {
	return path.Dir(p)
}

// baseOf returns the last component of a normalized path
func baseOf(p string) string {
	return path.Base(p)
}

// splitComponents splits a normalized path into its components, keeping a
// leading "/" as its own component so absolute paths never compare equal to
// relative ones.
func splitComponents(p string) []string {
	if p == "" {
		return nil
	}
	var parts []string
	if strings.HasPrefix(p, "/") {
		parts = append(parts, "/")
		p = strings.TrimPrefix(p, "/")
	}
	for _, part := range strings.Split(p, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return parts
}

// joinComponents is the inverse of splitComponents
func joinComponents(parts []string) string {
	if len(parts) == 0 {
		return ""
	}
	if parts[0] == "/" {
		return "/" + strings.Join(parts[1:], "/")
	}
	return strings.Join(parts, "/")
}

// isUnder reports whether p is inside (or equal to) dir, component-wise
func isUnder(p, dir string) bool {
	if p == dir {
		return true
	}
	prefix := dir
	if !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	return strings.HasPrefix(p, prefix)
}
