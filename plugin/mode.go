package plugin

// Mode selects which registered analyzers the pipeline driver considers
// runnable before applicability is even checked (spec §4.8 step 2, §6).
type Mode string

const (
	// ModeAuto enables every registered analyzer; Applies alone decides
	// whether it actually runs. This is the default.
	ModeAuto Mode = "AUTO"
	// ModeGroups enables an analyzer iff its Identity.Family is named in
	// the configured group list.
	ModeGroups Mode = "GROUPS"
	// ModeExplicit enables an analyzer iff its id is named in
	// scanners.enabled.
	ModeExplicit Mode = "EXPLICIT"
)

// Selection is the resolved set of analyzer ids a Mode has enabled, plus any
// names from config that matched nothing (spec §6: "unknown analyzer ids in
// EXPLICIT mode produce a warning but do not fail the run").
type Selection struct {
	Mode       Mode
	EnabledIDs map[string]bool
	Unknown    []string
}

// Resolve computes the effective Selection for a Mode against a Registry,
// given the raw config.groups / config.enabled lists (only the list
// matching the active mode is consulted).
func Resolve(reg *Registry, mode Mode, groups []string, enabled []string) Selection {
	switch mode {
	case ModeGroups:
		ids := reg.ExpandGroups(groups)
		return Selection{Mode: mode, EnabledIDs: toSet(ids)}
	case ModeExplicit:
		known, unknown := reg.ExpandExplicit(enabled)
		return Selection{Mode: mode, EnabledIDs: toSet(known), Unknown: unknown}
	default:
		return Selection{Mode: ModeAuto, EnabledIDs: toSet(reg.IDs())}
	}
}

// Includes reports whether id is enabled under this Selection.
func (s Selection) Includes(id string) bool {
	return s.EnabledIDs[id]
}

func toSet(ids []string) map[string]bool {
	set := make(map[string]bool, len(ids))
	for _, id := range ids {
		set[id] = true
	}
	return set
}
