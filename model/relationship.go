package model

// RelationshipKind enumerates the generic edge kinds emitted between components/entities.
type RelationshipKind string

const (
	RelDependsOn   RelationshipKind = "DEPENDS_ON"
	RelPublishesTo RelationshipKind = "PUBLISHES_TO"
	RelOwns        RelationshipKind = "OWNS"
)

// Relationship is a generic directed edge between two identified entities
// (components, or owning-component-qualified data entities).
type Relationship struct {
	SourceID    string
	TargetID    string
	Kind        RelationshipKind
	Description string
	Analyzer    string // id of the analyzer that produced this edge
}

// SemanticKey is the deduplication key from spec §3: source+target+kind.
func (r Relationship) SemanticKey() string {
	return r.SourceID + "|" + r.TargetID + "|" + string(r.Kind)
}
