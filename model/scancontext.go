package model

// ScanContext is the immutable input handed to every analyzer. It is built
// fresh by the pipeline driver for each analyzer invocation; analyzers must
// not mutate PriorResults.
type ScanContext struct {
	RootPath    string
	SearchRoots []string
	Config      map[string]any
	Variables   map[string]string

	// PriorResults maps analyzer id to that analyzer's ScanResult, for
	// analyzers that run in a later priority band (e.g. applicability
	// dependency-presence checks, post-processors).
	PriorResults map[string]*ScanResult

	deadline func() bool // returns true once the analyzer's wall-clock budget is exhausted
}

// NewScanContext builds a ScanContext with non-nil collections.
func NewScanContext(rootPath string, searchRoots []string, config map[string]any, prior map[string]*ScanResult) *ScanContext {
	if config == nil {
		config = map[string]any{}
	}
	if prior == nil {
		prior = map[string]*ScanResult{}
	}
	return &ScanContext{
		RootPath:     rootPath,
		SearchRoots:  searchRoots,
		Config:       config,
		Variables:    map[string]string{},
		PriorResults: prior,
		deadline:     func() bool { return false },
	}
}

// WithDeadline returns a shallow copy of the context whose Deadline predicate
// is the supplied function. Used by the pipeline driver to implement
// cooperative per-analyzer timeouts (spec §4.8/§5).
func (c *ScanContext) WithDeadline(deadline func() bool) *ScanContext {
	clone := *c
	clone.deadline = deadline
	return &clone
}

// Deadline reports whether the analyzer's wall-clock budget has been
// exhausted. Analyzers performing per-file loops should check this at file
// boundaries and return a partial result when it becomes true.
func (c *ScanContext) Deadline() bool {
	if c.deadline == nil {
		return false
	}
	return c.deadline()
}

// ConfigString reads a string-typed per-analyzer config value, or "" if absent/wrong type.
func (c *ScanContext) ConfigString(key string) string {
	v, ok := c.Config[key]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// ConfigInt reads an int-typed per-analyzer config value, or the supplied default if absent/wrong type.
func (c *ScanContext) ConfigInt(key string, def int) int {
	v, ok := c.Config[key]
	if !ok {
		return def
	}
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return def
	}
}
