package orm

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/viant/archlens/analyzers/pykit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// SqlAlchemyAnalyzer finds SQLAlchemy declarative models: any class whose
// body declares `name = Column(...)` class attributes. The class's bases and
// decorators are not checked. SQLAlchemy models are
// plain class attributes, not annotations/decorators, so this reads each
// class's raw body text and regexes out Column(...) assignments - the same
// raw-text idiom javakit and pykit already use for annotation/decorator
// arguments, applied here because no tree-sitter precedent in the pack
// decomposes Python assignment statements either.
type SqlAlchemyAnalyzer struct {
	kernel.Base
}

func NewSqlAlchemyAnalyzer(idx *fileindex.Index) *SqlAlchemyAnalyzer {
	return &SqlAlchemyAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *SqlAlchemyAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "sqlalchemy-orm", Name: "SQLAlchemy declarative models", Family: "ORM/Data",
		Priority: 64, Languages: []string{"python"}, Globs: []string{"**/*.py"},
	}
}

func (a *SqlAlchemyAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasPython, applicability.HasAnyDependency("sqlalchemy"))(ctx)
}

var sqlAlchemyTableName = regexp.MustCompile(`__tablename__\s*=\s*["']([^"']+)["']`)
var sqlAlchemyColumn = regexp.MustCompile(`^\s*(\w+)\s*=\s*Column\(([^)]*)\)`)
var sqlAlchemyPrimaryKey = regexp.MustCompile(`primary_key\s*=\s*True`)
var sqlAlchemyColumnType = regexp.MustCompile(`^\s*(\w+)`)

func (a *SqlAlchemyAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.py")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find python files: %v", err))
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

		defs, _, ok := kernel.ThreeTier[[]pykit.Def](stats, relPath,
			func() ([]pykit.Def, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return pykit.Parse(contents[i])
			},
			nil,
		)
		if !ok {
			continue
		}

		for _, def := range defs {
			if !def.IsClass || !strings.Contains(def.Body, "Column(") {
				continue
			}

			tableName := def.Name
			if match := sqlAlchemyTableName.FindStringSubmatch(def.Body); match != nil {
				tableName = match[1]
			}

			entity := model.DataEntity{
				Name:       def.Name,
				StoreName:  tableName,
				EntityKind: "table",
				Location:   &model.Location{Path: relPath, Line: def.Line},
				Confidence: model.MEDIUM,
			}

			for _, line := range strings.Split(def.Body, "\n") {
				match := sqlAlchemyColumn.FindStringSubmatch(line)
				if match == nil {
					continue
				}
				fieldName, args := match[1], match[2]
				fieldType := ""
				if typeMatch := sqlAlchemyColumnType.FindStringSubmatch(args); typeMatch != nil {
					fieldType = typeMatch[1]
				}
				entity.Fields = append(entity.Fields, model.DataField{Name: fieldName, Type: fieldType})
				if sqlAlchemyPrimaryKey.MatchString(args) {
					entity.PrimaryKey = fieldName
				}
			}
			if len(entity.Fields) == 0 {
				continue
			}

			comp := model.NewComponent(def.Name, model.KindDatabase)
			comp.Technology = "python/sqlalchemy"
			comp.Location = &model.Location{Path: relPath, Line: def.Line}
			components = append(components, comp)
			entity.ComponentID = comp.ID

			entities = append(entities, entity)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, nil, entities, nil, nil, stats)
}
