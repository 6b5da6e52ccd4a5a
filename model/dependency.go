package model

// DependencyScope normalizes the many per-ecosystem scope vocabularies
// (Maven's compile/runtime/test/provided, npm's dependencies/devDependencies,
// Bundler's groups, ...) onto one small set.
type DependencyScope string

const (
	ScopeCompile DependencyScope = "compile"
	ScopeRuntime DependencyScope = "runtime"
	ScopeTest    DependencyScope = "test"
	ScopeDev     DependencyScope = "dev"
)

// Dependency is a package-level dependency edge from a Component to an
// external artifact.
type Dependency struct {
	SourceComponentID string
	GroupID           string
	ArtifactID        string
	Version           string
	Scope             DependencyScope
	Direct            bool
}

// SemanticKey is the deduplication key from spec §3: source+group+artifact+version.
func (d Dependency) SemanticKey() string {
	return d.SourceComponentID + "|" + d.GroupID + "|" + d.ArtifactID + "|" + d.Version
}
