package tree

import "strings"

// Split breaks path into (parent, child, depth): a trailing slash is
// stripped first, so "a/x" and "a/x/" split identically; a path with
// no internal separator yields parent == "" (the root) and depth == 0;
// otherwise parent is the prefix up to the last separator, child the
// suffix after it, and depth the number of internal separators.
//
// Callers are expected to have already trimmed at most one leading '/'
// (every exported Tree method does this), so depth here only ever
// counts separators between components.
func Split(path string) (parent, child string, depth int) {
	path = strings.TrimSuffix(path, "/")

	idx := strings.LastIndexByte(path, '/')
	if idx < 0 {
		return "", path, 0
	}

	parent = path[:idx]
	child = path[idx+1:]
	depth = strings.Count(path, "/")
	return parent, child, depth
}

// components splits a normalized (no leading slash, no trailing slash)
// path into its named segments. An empty path yields no components,
// meaning "the root itself".
func components(path string) []string {
	path = strings.TrimSuffix(path, "/")
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

func trimLeadingSlash(path string) string {
	return strings.TrimPrefix(path, "/")
}
