package schema

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// AvroSchemaAnalyzer finds Avro record schemas (.avsc files). Avro schemas
// are themselves JSON documents, so this walks them with stdlib
// encoding/json rather than any custom grammar - the only "parsing" needed
// is decoding a known JSON shape, which is exactly what a hand-rolled
// parser or a third-party library would both reduce to.
type AvroSchemaAnalyzer struct {
	kernel.Base
}

func NewAvroSchemaAnalyzer(idx *fileindex.Index) *AvroSchemaAnalyzer {
	return &AvroSchemaAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *AvroSchemaAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "avro-schema", Name: "Avro record schemas", Family: "Schema",
		Priority: 61, Languages: []string{"avro"}, Globs: []string{"**/*.avsc"},
	}
}

func (a *AvroSchemaAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasAvro(ctx)
}

type avroSchema struct {
	Type   string      `json:"type"`
	Name   string      `json:"name"`
	Fields []avroField `json:"fields"`
}

type avroField struct {
	Name    string `json:"name"`
	Type    any    `json:"type"`
	Default any    `json:"default"`
}

func (a *AvroSchemaAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.avsc")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find avro files: %v", err))
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

		var schema avroSchema
		if readErrs[i] != nil {
			stats.RecordFailure(model.ErrorIO, readErrs[i].Error())
			continue
		}
		content := contents[i]
		stats.FilesScanned++
		if err := json.Unmarshal(content, &schema); err != nil {
			stats.RecordFailure(model.ErrorParse, err.Error())
			continue
		}
		if schema.Type != "record" {
			stats.Skipped++
			continue
		}
		stats.ParsedSuccessfully++

		comp := model.NewComponent(schema.Name, model.KindQueue)
		comp.Technology = "avro"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		entity := model.DataEntity{
			ComponentID: comp.ID,
			Name:        schema.Name,
			StoreName:   schema.Name,
			EntityKind:  "avro-record",
			Location:    &model.Location{Path: relPath},
			Confidence:  model.HIGH,
		}
		for _, field := range schema.Fields {
			entity.Fields = append(entity.Fields, model.DataField{
				Name:     field.Name,
				Type:     avroTypeName(field.Type),
				Nullable: avroIsNullable(field.Type),
			})
		}
		entities = append(entities, entity)
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, nil, entities, nil, nil, stats)
}

// avroTypeName renders an Avro field's "type" value (a string, or a union
// array such as ["null", "string"]) as a readable type name.
func avroTypeName(t any) string {
	switch v := t.(type) {
	case string:
		return v
	case []any:
		for _, entry := range v {
			if s, ok := entry.(string); ok && s != "null" {
				return s
			}
		}
	case map[string]any:
		if name, ok := v["type"].(string); ok {
			return name
		}
	}
	return ""
}

// avroIsNullable reports whether a field's type is a union including "null".
func avroIsNullable(t any) bool {
	union, ok := t.([]any)
	if !ok {
		return false
	}
	for _, entry := range union {
		if s, ok := entry.(string); ok && s == "null" {
			return true
		}
	}
	return false
}
