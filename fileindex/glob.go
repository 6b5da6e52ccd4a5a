package fileindex

import (
	"fmt"
	"path"
	"strings"
)

// MatchGlob reports whether relPath (slash-separated, relative to a scan
// root) matches glob, where "**" matches any number of path segments
// (including zero) and "*" matches within a single segment. Matching is
// case-sensitive.
func MatchGlob(glob, relPath string) (bool, error) {
	globSegments := strings.Split(path.Clean(filepathToSlash(glob)), "/")
	pathSegments := strings.Split(path.Clean(filepathToSlash(relPath)), "/")
	return matchSegments(globSegments, pathSegments)
}

func filepathToSlash(p string) string {
	return strings.ReplaceAll(p, "\\", "/")
}

func matchSegments(glob, path []string) (bool, error) {
	if len(glob) == 0 {
		return len(path) == 0, nil
	}

	head := glob[0]

	if head == "**" {
		// "**" may consume zero or more path segments.
		if ok, err := matchSegments(glob[1:], path); err != nil || ok {
			return ok, err
		}
		if len(path) == 0 {
			return false, nil
		}
		return matchSegments(glob, path[1:])
	}

	if len(path) == 0 {
		return false, nil
	}

	ok, err := path0Match(head, path[0])
	if err != nil {
		return false, fmt.Errorf("fileindex: invalid glob segment %q: %w", head, err)
	}
	if !ok {
		return false, nil
	}
	return matchSegments(glob[1:], path[1:])
}

func path0Match(pattern, name string) (bool, error) {
	return path.Match(pattern, name)
}
