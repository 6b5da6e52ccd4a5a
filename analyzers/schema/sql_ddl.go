// Package schema implements the Schema family (spec §4.7): sql-ddl,
// graphql-schema, and avro-schema, each producing model.DataEntity
// findings.
package schema

import (
	"context"
	"fmt"

	"github.com/viant/archlens/analyzers/schema/sqlparse"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// SqlDdlAnalyzer finds tables declared by CREATE TABLE statements in .sql
// migration files.
type SqlDdlAnalyzer struct {
	kernel.Base
}

func NewSqlDdlAnalyzer(idx *fileindex.Index) *SqlDdlAnalyzer {
	return &SqlDdlAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *SqlDdlAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "sql-ddl", Name: "SQL migration tables", Family: "Schema",
		Priority: 60, Languages: []string{"sql"}, Globs: []string{"**/*.sql"},
	}
}

func (a *SqlDdlAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasSqlMigrations(ctx)
}

func (a *SqlDdlAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.sql")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find sql files: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	paths := make([]string, len(files))
	for i, relPath := range files {
		paths[i] = fileindex.Join(ctx.RootPath, relPath)
	}
	contents, readErrs := a.ReadAllParallel(bg, paths, kernel.Parallelism(ctx))

	var components []*model.Component
	var entities []model.DataEntity

	for i, relPath := range files {
		if ctx.Deadline() {
			break
		}

		tables, _, ok := kernel.ThreeTier[[]sqlparse.Table](stats, relPath,
			func() ([]sqlparse.Table, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return sqlparse.Parse(string(contents[i])), nil
			},
			nil, // the hand-rolled grammar is the only tier; a failed parse has no safer fallback
		)
		if !ok || len(tables) == 0 {
			continue
		}

		comp := model.NewComponent(relPath, model.KindDatabase)
		comp.Technology = "sql"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, table := range tables {
			entity := model.DataEntity{
				ComponentID: comp.ID,
				Name:        table.Name,
				StoreName:   table.Name,
				EntityKind:  "table",
				PrimaryKey:  table.PrimaryKey,
				Location:    &model.Location{Path: relPath},
				Confidence:  model.HIGH,
			}
			for _, col := range table.Columns {
				entity.Fields = append(entity.Fields, model.DataField{
					Name: col.Name, Type: col.Type, Nullable: col.Nullable,
				})
			}
			entities = append(entities, entity)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, nil, entities, nil, nil, stats)
}
