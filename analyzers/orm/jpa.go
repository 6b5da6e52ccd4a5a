// Package orm implements the ORM/Data family (spec §4.7): jpa-orm and
// sqlalchemy-orm, each producing model.DataEntity findings from annotated
// or decorated classes found by the shared javakit/pykit walkers.
package orm

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/archlens/analyzers/javakit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// jpaAssociations maps a JPA association annotation to the human-readable
// cardinality description a Relationship carries (spec §8 scenario 1).
var jpaAssociations = map[string]string{
	"OneToMany":  "One-to-Many",
	"ManyToOne":  "Many-to-One",
	"OneToOne":   "One-to-One",
	"ManyToMany": "Many-to-Many",
}

// associatedEntityName returns the entity type a field's declared type
// refers to, unwrapping one level of generic collection
// (List<Order>/Set<Order>/Collection<Order> -> Order).
func associatedEntityName(fieldType string) string {
	if idx := strings.IndexByte(fieldType, '<'); idx >= 0 && strings.HasSuffix(fieldType, ">") {
		return strings.TrimSpace(fieldType[idx+1 : len(fieldType)-1])
	}
	return fieldType
}

// JpaAnalyzer finds JPA/Hibernate entities: classes annotated @Entity, with
// @Table giving the backing table name, @Id marking the primary key field,
// and @Column overriding a field's column name.
type JpaAnalyzer struct {
	kernel.Base
}

func NewJpaAnalyzer(idx *fileindex.Index) *JpaAnalyzer {
	return &JpaAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *JpaAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "jpa-orm", Name: "JPA entities", Family: "ORM/Data",
		Priority: 65, Languages: []string{"java"}, Globs: []string{"**/*.java"},
	}
}

func (a *JpaAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasJava, applicability.HasJpa)(ctx)
}

func (a *JpaAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.java")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find java files: %v", err))
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
	var relationships []model.Relationship

	for i, relPath := range files {
		if ctx.Deadline() {
			break
		}

		classes, _, ok := kernel.ThreeTier[[]javakit.Class](stats, relPath,
			func() ([]javakit.Class, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return javakit.Parse(contents[i])
			},
			nil,
		)
		if !ok {
			continue
		}

		for _, class := range classes {
			if !javakit.HasAnnotation(class.Annotations, "Entity") {
				continue
			}

			comp := model.NewComponent(class.Name, model.KindDatabase)
			comp.Technology = "java/jpa"
			comp.Location = &model.Location{Path: relPath, Line: class.Line}
			components = append(components, comp)

			tableName := class.Name
			if table, found := javakit.FindAnnotation(class.Annotations, "Table"); found && len(table.Args) > 0 {
				tableName = table.Args[0]
			}

			entity := model.DataEntity{
				ComponentID: comp.ID,
				Name:        class.Name,
				StoreName:   tableName,
				EntityKind:  "table",
				Location:    &model.Location{Path: relPath, Line: class.Line},
				Confidence:  model.HIGH,
			}

			for _, field := range class.Fields {
				columnName := field.Name
				if col, found := javakit.FindAnnotation(field.Annotations, "Column"); found && len(col.Args) > 0 {
					columnName = col.Args[0]
				}
				if javakit.HasAnnotation(field.Annotations, "Id") {
					entity.PrimaryKey = columnName
				}
				entity.Fields = append(entity.Fields, model.DataField{
					Name: columnName,
					Type: field.Type,
				})

				for annotationName, description := range jpaAssociations {
					if !javakit.HasAnnotation(field.Annotations, annotationName) {
						continue
					}
					target := associatedEntityName(field.Type)
					if target == "" {
						continue
					}
					relationships = append(relationships, model.Relationship{
						SourceID:    comp.ID,
						TargetID:    model.ComponentID(target),
						Kind:        model.RelDependsOn,
						Description: description,
						Analyzer:    a.Identity().ID,
					})
				}
			}

			entities = append(entities, entity)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, nil, entities, relationships, nil, stats)
}
