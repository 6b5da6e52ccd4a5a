package restapi

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// AspNetAnalyzer finds ASP.NET Core controller endpoints: classes ending in
// "Controller" with [Http*]/[Route] attributes on their action methods. No
// C# grammar appears anywhere in the example pack (unlike Java and Python,
// which both have tree-sitter precedent - see DESIGN.md), so this runs
// tier-2 regex only over attribute and method-declaration lines rather than
// asserting an unverified tree-sitter binding.
type AspNetAnalyzer struct {
	kernel.Base
}

func NewAspNetAnalyzer(idx *fileindex.Index) *AspNetAnalyzer {
	return &AspNetAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *AspNetAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "aspnet-rest", Name: "ASP.NET Core controller actions", Family: "REST API",
		Priority: 54, Languages: []string{"csharp"}, Globs: []string{"**/*Controller.cs"},
	}
}

func (a *AspNetAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasCSharp, applicability.HasAspNetCore)(ctx)
}

var aspNetClassLine = regexp.MustCompile(`^\s*(?:public|internal)?\s*class\s+(\w+Controller)\b`)
var aspNetRouteAttr = regexp.MustCompile(`\[Route\(\s*"([^"]*)"\s*\)\]`)
var aspNetHttpAttr = regexp.MustCompile(`\[Http(Get|Post|Put|Delete|Patch)(?:\(\s*"([^"]*)"\s*\))?\]`)
var aspNetMethodLine = regexp.MustCompile(`^\s*(?:public|protected|internal)\s+[\w<>\[\],? ]+\s+(\w+)\s*\(`)

func (a *AspNetAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*Controller.cs")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find aspnet controllers: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	var components []*model.Component
	var endpoints []model.ApiEndpoint

	for _, relPath := range files {
		if ctx.Deadline() {
			break
		}

		lines, _, ok := kernel.ThreeTier[[]string](stats, relPath,
			func() ([]string, error) {
				return nil, fmt.Errorf("aspnet: no structured grammar, regex only")
			},
			func() ([]string, error) {
				return a.ReadLines(bg, fileindex.Join(ctx.RootPath, relPath))
			},
		)
		if !ok {
			continue
		}

		className, basePath, found := parseAspNetController(lines)
		if len(found) == 0 {
			continue
		}

		comp := model.NewComponent(className, model.KindService)
		comp.Technology = "csharp/aspnetcore"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, ep := range found {
			ep.ComponentID = comp.ID
			ep.Path = joinPath(basePath, ep.Path)
			ep.Location = &model.Location{Path: relPath}
			endpoints = append(endpoints, ep)
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

func parseAspNetController(lines []string) (className, basePath string, endpoints []model.ApiEndpoint) {
	for _, line := range lines {
		if match := aspNetClassLine.FindStringSubmatch(line); match != nil {
			className = match[1]
			break
		}
	}

	var pendingHTTP string
	var pendingPath string
	var havePending bool

	for _, line := range lines {
		if match := aspNetRouteAttr.FindStringSubmatch(line); match != nil && basePath == "" {
			basePath = strings.ReplaceAll(match[1], "[controller]", strings.TrimSuffix(className, "Controller"))
			continue
		}
		if match := aspNetHttpAttr.FindStringSubmatch(line); match != nil {
			pendingHTTP = strings.ToUpper(match[1])
			pendingPath = match[2]
			havePending = true
			continue
		}
		if match := aspNetMethodLine.FindStringSubmatch(line); match != nil && havePending {
			endpoints = append(endpoints, model.ApiEndpoint{
				Kind:       model.KindREST,
				Path:       pendingPath,
				Method:     pendingHTTP,
				Handler:    match[1],
				Confidence: model.MEDIUM,
			})
			havePending = false
		}
	}
	return className, basePath, endpoints
}
