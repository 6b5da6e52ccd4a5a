// Package plugin defines the analyzer contract (spec §4.3) and the registry
// that indexes concrete analyzers by stable id, in priority order, and
// expands AUTO/GROUPS/EXPLICIT selection configuration into a concrete run
// list.
package plugin

import (
	"github.com/viant/archlens/model"
)

// Priority bands, spec §4.7. An analyzer's priority determines both its run
// order (higher first) and, for post-processors, that it only ever sees
// PriorResults rather than raw files.
const (
	PriorityDependency    = 80
	PrioritySchema        = 60
	PriorityOrm           = 60
	PriorityApi           = 50
	PriorityInfra         = 55
	PriorityMessaging     = 55
	PriorityPostProcessor = 150
)

// Identity is the stable, immutable metadata of an analyzer.
type Identity struct {
	ID       string
	Name     string
	Family   string
	Priority int
	// Languages is a set of language tags this analyzer cares about
	// (e.g. "java", "python"); empty means language-agnostic.
	Languages []string
	// Globs are the file patterns this analyzer's pre-filter considers
	// before any content evidence check (spec §4.6).
	Globs []string
}

// Analyzer is the contract every concrete plugin implements (spec §4.3).
// Applies is a cheap, side-effect-free gate (spec §4.2); Scan performs the
// actual file discovery/parsing and must never panic out — internal fatal
// conditions become a FailedResult (spec §4.4/§4.5).
type Analyzer interface {
	Identity() Identity
	Applies(ctx *model.ScanContext) bool
	Scan(ctx *model.ScanContext) *model.ScanResult
}
