package restapi

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

// SpringAnalyzer finds Spring MVC/WebFlux REST endpoints: classes annotated
// with @RestController or @Controller, methods annotated with @GetMapping,
// @PostMapping, @PutMapping, @DeleteMapping, @PatchMapping, or the generic
// @RequestMapping. A method-level @RequestMapping is always reported as GET;
// its method attribute is not read.
type SpringAnalyzer struct {
	kernel.Base
}

func NewSpringAnalyzer(idx *fileindex.Index) *SpringAnalyzer {
	return &SpringAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *SpringAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "spring-rest", Name: "Spring MVC REST endpoints", Family: "REST API",
		Priority: 55, Languages: []string{"java"}, Globs: []string{"**/*.java"},
	}
}

func (a *SpringAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasJava, applicability.HasSpring)(ctx)
}

var springMappingMethod = map[string]string{
	"GetMapping": "GET", "PostMapping": "POST", "PutMapping": "PUT",
	"DeleteMapping": "DELETE", "PatchMapping": "PATCH",
}

func (a *SpringAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
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
			nil, // no regex fallback: a malformed Java file offers no safe substring-based recovery
		)
		if !ok {
			continue
		}

		for _, class := range classes {
			if !javakit.HasAnnotation(class.Annotations, "RestController") &&
				!javakit.HasAnnotation(class.Annotations, "Controller") {
				continue
			}

			comp := model.NewComponent(class.Name, model.KindService)
			comp.Technology = "java/spring"
			comp.Location = &model.Location{Path: relPath, Line: class.Line}
			components = append(components, comp)

			basePath := mappingPath(class.Annotations, "RequestMapping")

			for _, method := range class.Methods {
				httpMethod, path, ok := springEndpoint(method.Annotations)
				if !ok {
					continue
				}
				endpoints = append(endpoints, model.ApiEndpoint{
					ComponentID: comp.ID,
					Kind:        model.KindREST,
					Path:        joinPath(basePath, path),
					Method:      httpMethod,
					Handler:     method.Name,
					Location:    &model.Location{Path: relPath, Line: method.Line},
					Confidence:  model.HIGH,
				})
			}
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

// springEndpoint resolves a method's annotations to an HTTP method and path,
// if it is annotated as a Spring request-mapping endpoint.
func springEndpoint(annotations []javakit.Annotation) (httpMethod, path string, ok bool) {
	for _, ann := range annotations {
		if method, known := springMappingMethod[ann.Name]; known {
			return method, firstArg(ann), true
		}
	}
	if ann, found := javakit.FindAnnotation(annotations, "RequestMapping"); found {
		return "GET", firstArg(ann), true
	}
	return "", "", false
}

func mappingPath(annotations []javakit.Annotation, name string) string {
	ann, ok := javakit.FindAnnotation(annotations, name)
	if !ok {
		return ""
	}
	return firstArg(ann)
}

func firstArg(ann javakit.Annotation) string {
	if len(ann.Args) == 0 {
		return ""
	}
	return ann.Args[0]
}

// joinPath combines a class-level base path with a method-level path the
// way Spring does, normalizing the result to a single leading "/".
func joinPath(base, method string) string {
	base = strings.TrimSuffix(base, "/")
	if method != "" && !strings.HasPrefix(method, "/") {
		method = "/" + method
	}
	joined := base + method
	if joined == "" {
		return "/"
	}
	if !strings.HasPrefix(joined, "/") {
		joined = "/" + joined
	}
	return joined
}
