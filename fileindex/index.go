// Package fileindex implements the rooted directory traversal and glob
// matching that every analyzer uses to discover candidate files (spec §4.1).
// Analyzers never call os/filepath directly; they go through an Index so
// that symlink-cycle handling and glob semantics are centralized and tested
// once instead of once per analyzer.
package fileindex

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/viant/afs"
)

// Index provides eager, cycle-safe file discovery rooted at a directory, plus
// uniform content reads. Reads go through viant/afs (the teacher's own file
// abstraction, see inspector/repository/detector.go) so the same Index can
// in principle address non-local roots without analyzer code changing.
type Index struct {
	fs afs.Service
	// visited tracks (device, inode) pairs of directories already descended
	// into during the current FindFiles walk, so a symlink cycle is only
	// followed once and then skipped. FindFiles resets it on every call, so
	// an Index is not safe for concurrent FindFiles calls.
	visited map[devIno]bool
}

type devIno struct {
	dev, ino uint64
}

// New returns an Index backed by the local filesystem via afs.
func New() *Index {
	return &Index{
		fs:      afs.New(),
		visited: map[devIno]bool{},
	}
}

// FindFiles walks all of rootPath and returns every regular file whose path
// (relative to rootPath, slash-separated) matches glob. Glob supports "**"
// for any depth and "*" within one path segment. Traversal is
// case-sensitive. The walk is eager: the whole tree is visited before
// FindFiles returns, and there is no way to stop it early.
func (idx *Index) FindFiles(rootPath, glob string) ([]string, error) {
	idx.visited = map[devIno]bool{}
	var matches []string
	err := idx.walk(rootPath, rootPath, func(relPath string) error {
		ok, matchErr := MatchGlob(glob, relPath)
		if matchErr != nil {
			return matchErr
		}
		if ok {
			matches = append(matches, relPath)
		}
		return nil
	})
	return matches, err
}

func (idx *Index) walk(root, dir string, visit func(relPath string) error) error {
	info, err := os.Lstat(dir)
	if err != nil {
		// Permission or transient errors at the directory level are surfaced
		// to the caller, who may choose to log and continue (spec §4.1).
		return fmt.Errorf("fileindex: stat %s: %w", dir, err)
	}

	if info.Mode()&os.ModeSymlink != 0 {
		resolved, err := filepath.EvalSymlinks(dir)
		if err != nil {
			return fmt.Errorf("fileindex: resolve symlink %s: %w", dir, err)
		}
		resolvedInfo, err := os.Stat(resolved)
		if err != nil {
			return fmt.Errorf("fileindex: stat resolved symlink %s: %w", resolved, err)
		}
		key, ok := inodeKey(resolvedInfo)
		if ok {
			if idx.visited[key] {
				return nil // cycle: already descended into this directory once
			}
			idx.visited[key] = true
		}
		dir = resolved
		info = resolvedInfo
	}

	if !info.IsDir() {
		rel, err := filepath.Rel(root, dir)
		if err != nil {
			rel = dir
		}
		return visit(filepath.ToSlash(rel))
	}

	if key, ok := inodeKey(info); ok {
		if idx.visited[key] {
			return nil
		}
		idx.visited[key] = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return fmt.Errorf("fileindex: read dir %s: %w", dir, err)
	}
	for _, entry := range entries {
		if err := idx.walk(root, filepath.Join(dir, entry.Name()), visit); err != nil {
			return err
		}
	}
	return nil
}

// ReadText reads the full content of a file through afs, matching the
// access pattern already used by the teacher's repository.Detector.
func (idx *Index) ReadText(ctx context.Context, path string) ([]byte, error) {
	content, err := idx.fs.DownloadWithURL(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fileindex: read %s: %w", path, err)
	}
	return content, nil
}

// ReadLines reads a file and returns its lines without trailing newlines.
func (idx *Index) ReadLines(ctx context.Context, path string) ([]string, error) {
	content, err := idx.ReadText(ctx, path)
	if err != nil {
		return nil, err
	}
	var lines []string
	scanner := bufio.NewScanner(strings.NewReader(string(content)))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("fileindex: scan %s: %w", path, err)
	}
	return lines, nil
}

// Exists reports whether path exists and is a regular file.
func (idx *Index) Exists(ctx context.Context, path string) bool {
	ok, err := idx.fs.Exists(ctx, path)
	return err == nil && ok
}
