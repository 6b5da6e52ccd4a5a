package fileindex

import "strings"

// Join combines a scan root with a path relative to it (as returned by
// FindFiles), the way every analyzer needs to before handing a path to
// ReadText/ReadLines/Exists.
func Join(root, relPath string) string {
	if root == "" {
		return relPath
	}
	return strings.TrimRight(root, "/") + "/" + relPath
}
