// Package registry is the composition root: it wires every concrete
// analyzer into one plugin.Registry, the table the pipeline driver walks
// in priority order (spec §4.8 step 1). Adding a new analyzer is a single
// line here, matching spec §9's replacement for the source's reflection-
// based service-provider discovery.
package registry

import (
	"github.com/viant/archlens/analyzers/dependency"
	"github.com/viant/archlens/analyzers/messaging"
	"github.com/viant/archlens/analyzers/orm"
	"github.com/viant/archlens/analyzers/postprocess"
	"github.com/viant/archlens/analyzers/restapi"
	"github.com/viant/archlens/analyzers/schema"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/plugin"
)

// Build constructs every registered analyzer against idx and returns the
// resulting plugin.Registry. An error here means two analyzers share an
// id, a programming error rather than a runtime condition.
func Build(idx *fileindex.Index) (*plugin.Registry, error) {
	return plugin.NewRegistry(
		// Dependency
		dependency.NewGoModAnalyzer(idx),
		dependency.NewMavenAnalyzer(idx),
		dependency.NewNpmAnalyzer(idx),
		dependency.NewPipAnalyzer(idx),
		dependency.NewGemfileAnalyzer(idx),

		// Schema / ORM
		orm.NewJpaAnalyzer(idx),
		orm.NewSqlAlchemyAnalyzer(idx),
		schema.NewSqlDdlAnalyzer(idx),
		schema.NewGraphQLSchemaAnalyzer(idx),
		schema.NewAvroSchemaAnalyzer(idx),

		// REST API
		restapi.NewSpringAnalyzer(idx),
		restapi.NewJaxRsAnalyzer(idx),
		restapi.NewFastAPIAnalyzer(idx),
		restapi.NewRailsAnalyzer(idx),
		restapi.NewAspNetAnalyzer(idx),
		restapi.NewGoRouterAnalyzer(idx),

		// Messaging
		messaging.NewKafkaAnalyzer(idx),
		messaging.NewSidekiqAnalyzer(idx),
		messaging.NewCeleryAnalyzer(idx),

		// Post-processor
		postprocess.NewRestEventAnalyzer(),
	)
}
