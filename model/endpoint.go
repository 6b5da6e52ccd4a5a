package model

// ApiEndpointKind enumerates the transport/protocol family of an ApiEndpoint.
type ApiEndpointKind string

const (
	KindREST                ApiEndpointKind = "REST"
	KindGraphQLQuery         ApiEndpointKind = "GRAPHQL_QUERY"
	KindGraphQLMutation      ApiEndpointKind = "GRAPHQL_MUTATION"
	KindGraphQLSubscription  ApiEndpointKind = "GRAPHQL_SUBSCRIPTION"
	KindGRPC                 ApiEndpointKind = "GRPC"
)

// ParameterSource labels where an endpoint parameter is read from.
type ParameterSource string

const (
	ParamRoute  ParameterSource = "Route:"
	ParamQuery  ParameterSource = "Query:"
	ParamBody   ParameterSource = "Body:"
	ParamHeader ParameterSource = "Header:"
)

// Parameter is one labeled input to an ApiEndpoint.
type Parameter struct {
	Name   string
	Type   string
	Source ParameterSource
}

// ApiEndpoint is one publicly reachable operation owned by a Component.
type ApiEndpoint struct {
	ComponentID     string
	Kind            ApiEndpointKind
	Path            string // normalized to a leading "/"; for GraphQL, the field name
	Method          string // HTTP method, or GraphQL operation name (QUERY/MUTATION/SUBSCRIPTION)
	Handler         string
	Parameters      []Parameter
	RequestSchema   string
	ResponseSchema  string
	Auth            string
	Location        *Location
	Confidence      ConfidenceLevel
}

// SemanticKey is the deduplication key from spec §3: component+method+path.
func (e ApiEndpoint) SemanticKey() string {
	return e.ComponentID + "|" + e.Method + "|" + e.Path
}
