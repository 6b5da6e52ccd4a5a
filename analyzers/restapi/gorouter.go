package restapi

import (
	"context"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// GoRouterAnalyzer finds HTTP route registrations in Go source: calls of
// the shape receiver.Method("path", handler) where Method is an HTTP verb
// name used by net/http mux wrappers and the common router libraries (gin,
// echo, chi, gorilla/mux) - GET/POST/PUT/DELETE/PATCH/Any/Handle/
// HandleFunc. Tier 1 parses with the stdlib go/parser and go/ast, exactly
// as inspector/golang/inspector.go's InspectSource does for Go source;
// tier 2 falls back to a line regex over the same call shape.
type GoRouterAnalyzer struct {
	kernel.Base
}

func NewGoRouterAnalyzer(idx *fileindex.Index) *GoRouterAnalyzer {
	return &GoRouterAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *GoRouterAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "go-rest", Name: "Go HTTP route registrations", Family: "REST API",
		Priority: 53, Languages: []string{"go"}, Globs: []string{"**/*.go"},
	}
}

func (a *GoRouterAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasGo(ctx)
}

// goRouteMethod maps a call's selector name to the HTTP method it
// registers. HandleFunc/Handle/Any don't name a single verb, so they're
// recorded as ANY.
var goRouteMethod = map[string]string{
	"GET": "GET", "POST": "POST", "PUT": "PUT", "DELETE": "DELETE", "PATCH": "PATCH",
	"HandleFunc": "ANY", "Handle": "ANY", "Any": "ANY",
}

type goRoute struct {
	method string
	path   string
	line   int
}

type goFile struct {
	packageName string
	routes      []goRoute
}

func (a *GoRouterAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.go")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find go files: %v", err))
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
		if strings.HasSuffix(relPath, "_test.go") {
			stats.Skipped++
			continue
		}

		result, confidence, ok := kernel.ThreeTier[goFile](stats, relPath,
			func() (goFile, error) {
				if readErrs[fi] != nil {
					return goFile{}, readErrs[fi]
				}
				return parseGoRoutes(contents[fi])
			},
			func() (goFile, error) {
				if readErrs[fi] != nil {
					return goFile{}, readErrs[fi]
				}
				return regexGoRoutes(contents[fi]), nil
			},
		)
		if !ok || len(result.routes) == 0 {
			continue
		}

		compName := result.packageName
		if compName == "" {
			compName = relPath
		}
		comp := model.NewComponent(compName, model.KindService)
		comp.Technology = "go/http"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, route := range result.routes {
			endpoints = append(endpoints, model.ApiEndpoint{
				ComponentID: comp.ID,
				Kind:        model.KindREST,
				Path:        route.path,
				Method:      route.method,
				Location:    &model.Location{Path: relPath, Line: route.line},
				Confidence:  confidence,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

// parseGoRoutes walks a Go file's AST for calls of the shape
// x.Method("path", ...) where Method is a known route-registration verb.
func parseGoRoutes(src []byte) (goFile, error) {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "source.go", src, parser.ParseComments)
	if err != nil {
		return goFile{}, fmt.Errorf("go router: %w", err)
	}

	result := goFile{packageName: file.Name.Name}

	ast.Inspect(file, func(n ast.Node) bool {
		call, ok := n.(*ast.CallExpr)
		if !ok {
			return true
		}
		sel, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return true
		}
		httpMethod, known := goRouteMethod[sel.Sel.Name]
		if !known || len(call.Args) == 0 {
			return true
		}
		lit, ok := call.Args[0].(*ast.BasicLit)
		if !ok || lit.Kind != token.STRING {
			return true
		}
		path := strings.Trim(lit.Value, `"`+"`")
		if path == "" || !strings.HasPrefix(path, "/") {
			return true
		}
		result.routes = append(result.routes, goRoute{
			method: httpMethod, path: path, line: fset.Position(call.Pos()).Line,
		})
		return true
	})

	return result, nil
}

var goRouteCall = regexp.MustCompile(`\.(GET|POST|PUT|DELETE|PATCH|HandleFunc|Handle|Any)\(\s*"(/[^"]*)"`)
var goPackageLine = regexp.MustCompile(`^\s*package\s+(\w+)`)

// regexGoRoutes is the tier-2 fallback for a Go file parser.ParseFile
// couldn't handle: line-scan for the same call shape.
func regexGoRoutes(src []byte) goFile {
	var result goFile
	for i, line := range strings.Split(string(src), "\n") {
		if result.packageName == "" {
			if match := goPackageLine.FindStringSubmatch(line); match != nil {
				result.packageName = match[1]
			}
		}
		if match := goRouteCall.FindStringSubmatch(line); match != nil {
			result.routes = append(result.routes, goRoute{method: match[1], path: match[2], line: i + 1})
			if m, known := goRouteMethod[match[1]]; known {
				result.routes[len(result.routes)-1].method = m
			}
		}
	}
	return result
}
