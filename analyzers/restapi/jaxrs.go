package restapi

import (
	"context"
	"fmt"

	"github.com/viant/archlens/analyzers/javakit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// JaxRsAnalyzer finds JAX-RS REST endpoints: classes and methods annotated
// with @Path, where the HTTP verb comes from a separate @GET/@POST/@PUT/
// @DELETE/@PATCH marker annotation on the method.
type JaxRsAnalyzer struct {
	kernel.Base
}

func NewJaxRsAnalyzer(idx *fileindex.Index) *JaxRsAnalyzer {
	return &JaxRsAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *JaxRsAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "jaxrs-rest", Name: "JAX-RS REST endpoints", Family: "REST API",
		Priority: 54, Languages: []string{"java"}, Globs: []string{"**/*.java"},
	}
}

func (a *JaxRsAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasJava, applicability.HasJaxRs)(ctx)
}

var jaxRsVerbs = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

func (a *JaxRsAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
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
	var endpoints []model.ApiEndpoint

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
			basePath, hasBase := findPath(class.Annotations)
			if !hasBase && !anyVerbMethod(class.Methods) {
				continue
			}

			comp := model.NewComponent(class.Name, model.KindService)
			comp.Technology = "java/jax-rs"
			comp.Location = &model.Location{Path: relPath, Line: class.Line}

			var endpointsForClass []model.ApiEndpoint
			for _, method := range class.Methods {
				verb, hasVerb := jaxRsVerb(method.Annotations)
				if !hasVerb {
					continue
				}
				methodPath, _ := findPath(method.Annotations)
				endpointsForClass = append(endpointsForClass, model.ApiEndpoint{
					ComponentID: comp.ID,
					Kind:        model.KindREST,
					Path:        joinPath(basePath, methodPath),
					Method:      verb,
					Handler:     method.Name,
					Location:    &model.Location{Path: relPath, Line: method.Line},
					Confidence:  model.HIGH,
				})
			}
			if len(endpointsForClass) == 0 {
				continue
			}
			components = append(components, comp)
			endpoints = append(endpoints, endpointsForClass...)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

func jaxRsVerb(annotations []javakit.Annotation) (string, bool) {
	for _, verb := range jaxRsVerbs {
		if javakit.HasAnnotation(annotations, verb) {
			return verb, true
		}
	}
	return "", false
}

func anyVerbMethod(methods []javakit.Method) bool {
	for _, m := range methods {
		if _, ok := jaxRsVerb(m.Annotations); ok {
			return true
		}
	}
	return false
}

func findPath(annotations []javakit.Annotation) (string, bool) {
	ann, ok := javakit.FindAnnotation(annotations, "Path")
	if !ok {
		return "", false
	}
	return firstArg(ann), true
}
