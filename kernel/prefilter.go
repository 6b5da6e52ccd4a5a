package kernel

import (
	"path"
	"strings"
)

// PreFilter implements the three-stage shouldScanFile order of spec §4.6:
// filename convention, then path hints, then content evidence — ordered
// fast-to-slow so a file can be rejected before anything is read.
type PreFilter struct {
	// FilenamePatterns are glob patterns checked against the file's base
	// name alone, e.g. "*Controller.cs", "pom.xml". Empty means any
	// filename passes stage 1.
	FilenamePatterns []string
	// StrictPathSubstrings marks path segments (e.g. "/test/") that require
	// content evidence even when the filename alone would otherwise pass.
	StrictPathSubstrings []string
	// AlwaysRequireContentEvidence makes stage 3 mandatory everywhere, not
	// just under StrictPathSubstrings — used by families where the
	// filename convention alone is too weak a signal (e.g. any *.java file
	// could be a Spring controller or not).
	AlwaysRequireContentEvidence bool
	// ContentMarkers are discriminative substrings (imports, annotations,
	// decorators) checked against file content when stage 3 is required.
	ContentMarkers []string
}

// Matches reports whether path (slash-separated, relative to the scan root)
// passes the filter, given content already read for it. content may be nil
// when the caller wants a content-free decision; a file that turns out to
// require content evidence is rejected in that case rather than guessed at.
func (f PreFilter) Matches(filePath string, content []byte) bool {
	if !f.matchesFilename(filePath) {
		return false
	}
	if !f.requiresContentEvidence(filePath) {
		return true
	}
	return f.hasContentEvidence(content)
}

func (f PreFilter) matchesFilename(filePath string) bool {
	if len(f.FilenamePatterns) == 0 {
		return true
	}
	base := filePath
	if idx := strings.LastIndexByte(filePath, '/'); idx >= 0 {
		base = filePath[idx+1:]
	}
	for _, pattern := range f.FilenamePatterns {
		if ok, _ := path.Match(pattern, base); ok {
			return true
		}
	}
	return false
}

func (f PreFilter) requiresContentEvidence(filePath string) bool {
	if len(f.ContentMarkers) == 0 {
		return false
	}
	if f.AlwaysRequireContentEvidence {
		return true
	}
	for _, strict := range f.StrictPathSubstrings {
		if strings.Contains(filePath, strict) {
			return true
		}
	}
	return false
}

func (f PreFilter) hasContentEvidence(content []byte) bool {
	if content == nil {
		return false
	}
	text := string(content)
	for _, marker := range f.ContentMarkers {
		if strings.Contains(text, marker) {
			return true
		}
	}
	return false
}
