package schema

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/archlens/analyzers/schema/graphqlparse"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// GraphQLSchemaAnalyzer finds GraphQL type/input declarations and the
// operations exposed by the root Query/Mutation/Subscription types. Root
// operation fields become model.ApiEndpoint findings (one per field, Method
// set to the upper-cased root type name, e.g. "QUERY"); every other
// type/input/enum declaration becomes a model.DataEntity.
type GraphQLSchemaAnalyzer struct {
	kernel.Base
}

func NewGraphQLSchemaAnalyzer(idx *fileindex.Index) *GraphQLSchemaAnalyzer {
	return &GraphQLSchemaAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *GraphQLSchemaAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "graphql-schema", Name: "GraphQL SDL types and operations", Family: "Schema",
		Priority: 62, Languages: []string{"graphql"}, Globs: []string{"**/*.graphql", "**/*.gql"},
	}
}

func (a *GraphQLSchemaAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasGraphQL(ctx)
}

var rootOperationKind = map[string]model.ApiEndpointKind{
	"Query":        model.KindGraphQLQuery,
	"Mutation":     model.KindGraphQLMutation,
	"Subscription": model.KindGraphQLSubscription,
}

func (a *GraphQLSchemaAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	graphqlFiles, err := a.Index.FindFiles(ctx.RootPath, "**/*.graphql")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find graphql files: %v", err))
	}
	gqlFiles, err := a.Index.FindFiles(ctx.RootPath, "**/*.gql")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find gql files: %v", err))
	}
	files := append(graphqlFiles, gqlFiles...)

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	paths := make([]string, len(files))
	for i, relPath := range files {
		paths[i] = fileindex.Join(ctx.RootPath, relPath)
	}
	contents, readErrs := a.ReadAllParallel(bg, paths, kernel.Parallelism(ctx))

	var components []*model.Component
	var entities []model.DataEntity
	var endpoints []model.ApiEndpoint

	for i, relPath := range files {
		if ctx.Deadline() {
			break
		}

		defs, _, ok := kernel.ThreeTier[[]graphqlparse.Definition](stats, relPath,
			func() ([]graphqlparse.Definition, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return graphqlparse.Parse(string(contents[i])), nil
			},
			nil,
		)
		if !ok || len(defs) == 0 {
			continue
		}

		comp := model.NewComponent(relPath, model.KindService)
		comp.Technology = "graphql"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, def := range defs {
			if opKind, isRoot := rootOperationKind[def.Name]; isRoot && def.Kind == graphqlparse.DefType {
				for _, field := range def.Fields {
					endpoints = append(endpoints, model.ApiEndpoint{
						ComponentID:    comp.ID,
						Kind:           opKind,
						Path:           field.Name,
						Method:         strings.ToUpper(def.Name),
						Handler:        field.Name,
						ResponseSchema: field.Type,
						Location:       &model.Location{Path: relPath},
						Confidence:     model.HIGH,
					})
				}
				continue
			}

			entity := model.DataEntity{
				ComponentID: comp.ID,
				Name:        def.Name,
				StoreName:   def.Name,
				EntityKind:  "graphql-" + string(def.Kind),
				Location:    &model.Location{Path: relPath},
				Confidence:  model.HIGH,
			}
			for _, field := range def.Fields {
				entity.Fields = append(entity.Fields, model.DataField{
					Name:     field.Name,
					Type:     field.Type,
					Nullable: field.Nullable,
				})
			}
			entities = append(entities, entity)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, entities, nil, nil, stats)
}
