package model

// DataField is one ordered field of a DataEntity.
type DataField struct {
	Name     string
	Type     string
	Nullable bool
	Default  string
}

// DataEntity is a persistent or wire-level data shape (a JPA entity, a
// GraphQL type, an Avro record, a SQL table, ...) owned by a Component.
type DataEntity struct {
	ComponentID string
	Name        string
	StoreName   string // table/collection name, may equal Name
	EntityKind  string // e.g. "table", "graphql-type", "graphql-input", "avro-record"
	Fields      []DataField
	PrimaryKey  string
	Description string
	Location    *Location
	Confidence  ConfidenceLevel
}

// SemanticKey is the deduplication key from spec §3: component+name.
func (e DataEntity) SemanticKey() string {
	return e.ComponentID + "|" + e.Name
}
