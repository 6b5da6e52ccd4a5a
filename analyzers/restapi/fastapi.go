package restapi

import (
	"context"
	"fmt"
	"strings"

	"github.com/viant/archlens/analyzers/pykit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// FastAPIAnalyzer finds FastAPI REST endpoints: functions decorated with
// @<router>.get/post/put/delete/patch("/path").
type FastAPIAnalyzer struct {
	kernel.Base
}

func NewFastAPIAnalyzer(idx *fileindex.Index) *FastAPIAnalyzer {
	return &FastAPIAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *FastAPIAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "fastapi-rest", Name: "FastAPI REST endpoints", Family: "REST API",
		Priority: 55, Languages: []string{"python"}, Globs: []string{"**/*.py"},
	}
}

func (a *FastAPIAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasPython, applicability.HasFastAPI)(ctx)
}

var fastAPIVerbs = map[string]string{
	"get": "GET", "post": "POST", "put": "PUT", "delete": "DELETE",
	"patch": "PATCH", "head": "HEAD", "options": "OPTIONS",
}

func (a *FastAPIAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
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
	var endpoints []model.ApiEndpoint

	for fi, relPath := range files {
		if ctx.Deadline() {
			break
		}

		defs, _, ok := kernel.ThreeTier[[]pykit.Def](stats, relPath,
			func() ([]pykit.Def, error) {
				if readErrs[fi] != nil {
					return nil, readErrs[fi]
				}
				return pykit.Parse(contents[fi])
			},
			nil, // no safe regex recovery for a tree that failed to parse at all
		)
		if !ok {
			continue
		}

		var endpointsForFile []model.ApiEndpoint
		for _, def := range defs {
			if def.IsClass {
				continue
			}
			verb, path, ok := fastAPIEndpoint(def.Decorators)
			if !ok {
				continue
			}
			endpointsForFile = append(endpointsForFile, model.ApiEndpoint{
				Kind:     model.KindREST,
				Path:     path,
				Method:   verb,
				Handler:  def.Name,
				Location: &model.Location{Path: relPath, Line: def.Line},
				Confidence: model.HIGH,
			})
		}
		if len(endpointsForFile) == 0 {
			continue
		}

		comp := model.NewComponent(relPath, model.KindService)
		comp.Technology = "python/fastapi"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)
		for i := range endpointsForFile {
			endpointsForFile[i].ComponentID = comp.ID
		}
		endpoints = append(endpoints, endpointsForFile...)
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

// fastAPIEndpoint resolves a function's decorators to an HTTP method and
// path, matching "<anything>.<verb>" decorator names (app.get, router.post,
// api_router.delete, ...).
func fastAPIEndpoint(decorators []pykit.Decorator) (verb, path string, ok bool) {
	for _, dec := range decorators {
		suffix := dec.Name
		if idx := strings.LastIndex(suffix, "."); idx >= 0 {
			suffix = suffix[idx+1:]
		}
		if method, known := fastAPIVerbs[suffix]; known {
			if len(dec.Args) > 0 {
				return method, dec.Args[0], true
			}
			return method, "/", true
		}
	}
	return "", "", false
}
