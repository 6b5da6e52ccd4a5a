package plugin

import (
	"errors"
	"fmt"
	"path"
	"sort"
)

// ErrDuplicateAnalyzerID is returned by NewRegistry when two analyzers share an id.
var ErrDuplicateAnalyzerID = errors.New("plugin: duplicate analyzer id")

// ErrUnknownAnalyzerID describes an id that names no registered analyzer.
// Nothing in this package returns it: Lookup reports a miss through its bool
// result and ExpandExplicit through its unknown list.
var ErrUnknownAnalyzerID = errors.New("plugin: unknown analyzer id")

// Registry indexes analyzers by id and exposes them in the fixed run order
// the pipeline driver needs: descending priority, then ascending id.
type Registry struct {
	ordered []Analyzer
	index   map[string]Analyzer
}

// NewRegistry builds a Registry from a set of analyzers, rejecting duplicate ids.
func NewRegistry(analyzers ...Analyzer) (*Registry, error) {
	index := make(map[string]Analyzer, len(analyzers))
	for _, a := range analyzers {
		id := a.Identity().ID
		if _, exists := index[id]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateAnalyzerID, id)
		}
		index[id] = a
	}

	ordered := make([]Analyzer, len(analyzers))
	copy(ordered, analyzers)
	sort.SliceStable(ordered, func(i, j int) bool {
		pi, pj := ordered[i].Identity(), ordered[j].Identity()
		if pi.Priority != pj.Priority {
			return pi.Priority > pj.Priority
		}
		return pi.ID < pj.ID
	})

	return &Registry{ordered: ordered, index: index}, nil
}

// All returns every registered analyzer, sorted by descending priority then
// ascending id (spec §4.8 step 1).
func (r *Registry) All() []Analyzer {
	out := make([]Analyzer, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Lookup returns the analyzer registered under id, if any.
func (r *Registry) Lookup(id string) (Analyzer, bool) {
	a, ok := r.index[id]
	return a, ok
}

// IDs returns every registered analyzer id, in registry order.
func (r *Registry) IDs() []string {
	ids := make([]string, len(r.ordered))
	for i, a := range r.ordered {
		ids[i] = a.Identity().ID
	}
	return ids
}

// ExpandExplicit resolves the ids named in scanners.enabled against the
// registry. It does not reject unknown ids: they are returned in unknown,
// and the driver reports them in Run.UnknownIDs as a warning-only condition
// per spec §6.
func (r *Registry) ExpandExplicit(ids []string) (known []string, unknown []string) {
	for _, id := range ids {
		if _, ok := r.index[id]; ok {
			known = append(known, id)
		} else {
			unknown = append(unknown, id)
		}
	}
	return known, unknown
}

// ExpandGroups resolves a set of technology group names against each
// analyzer's Identity.Family (case-sensitive, exact match), returning the
// matching analyzer ids in registry order.
func (r *Registry) ExpandGroups(groups []string) []string {
	if len(groups) == 0 {
		return nil
	}
	wanted := make(map[string]bool, len(groups))
	for _, g := range groups {
		wanted[g] = true
	}
	var ids []string
	for _, a := range r.ordered {
		if wanted[a.Identity().Family] {
			ids = append(ids, a.Identity().ID)
		}
	}
	return ids
}

// MatchGlob expands a glob pattern (e.g. "maven-*") against registered
// analyzer ids, matching the teacher-pack convention of letting selection
// config use shell-style globs over stable ids.
func (r *Registry) MatchGlob(pattern string) ([]string, error) {
	var matched []string
	for _, a := range r.ordered {
		id := a.Identity().ID
		ok, err := path.Match(pattern, id)
		if err != nil {
			return nil, fmt.Errorf("plugin: invalid glob %q: %w", pattern, err)
		}
		if ok {
			matched = append(matched, id)
		}
	}
	return matched, nil
}
