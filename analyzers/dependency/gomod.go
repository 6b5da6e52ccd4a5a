// Package dependency implements the Dependency analyzer family (spec §4.7):
// one analyzer per package-manifest dialect, each emitting a synthetic
// Component for the owning module plus a Dependency per declared package.
package dependency

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// GoModAnalyzer extracts dependencies declared in a Go module's go.mod file,
// exactly as inspector/repository/detector.go's extractGoModuleName does:
// parse with golang.org/x/mod/modfile, fall back to a regex over the module
// directive if the parse fails.
type GoModAnalyzer struct {
	kernel.Base
}

// NewGoModAnalyzer returns a GoModAnalyzer backed by idx.
func NewGoModAnalyzer(idx *fileindex.Index) *GoModAnalyzer {
	return &GoModAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *GoModAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "gomod-deps", Name: "Go module dependencies",
		Family: "Dependency", Priority: plugin.PriorityDependency,
		Languages: []string{"go"}, Globs: []string{"**/go.mod"},
	}
}

func (a *GoModAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasFiles("**/go.mod")(ctx)
}

func (a *GoModAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/go.mod")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find go.mod: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	paths := make([]string, len(files))
	for i, relPath := range files {
		paths[i] = fileindex.Join(ctx.RootPath, relPath)
	}
	contents, readErrs := a.ReadAllParallel(bg, paths, kernel.Parallelism(ctx))

	var components []*model.Component
	var deps []model.Dependency

	for i, relPath := range files {
		if ctx.Deadline() {
			break
		}
		if readErrs[i] != nil {
			stats.RecordFailure(model.ErrorIO, readErrs[i].Error())
			continue
		}
		content := contents[i]

		modulePath, requires, tier1Err := parseGoMod(relPath, content)
		if tier1Err != nil {
			modulePath, requires = regexGoMod(content)
			stats.ParsedWithFallback++
		} else {
			stats.ParsedSuccessfully++
		}
		stats.FilesScanned++

		if modulePath == "" {
			stats.RecordFailure(model.ErrorParse, "no module directive found")
			continue
		}

		comp := model.NewComponent(modulePath, model.KindService)
		comp.Technology = "go"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, req := range requires {
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID,
				ArtifactID:        req.path,
				Version:           req.version,
				Scope:             model.ScopeCompile,
				Direct:            !req.indirect,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, deps, nil, nil, nil, nil, nil, stats)
}

type requirement struct {
	path     string
	version  string
	indirect bool
}

func parseGoMod(path string, content []byte) (modulePath string, requires []requirement, err error) {
	mod, err := modfile.Parse(path, content, nil)
	if err != nil || mod == nil || mod.Module == nil {
		return "", nil, fmt.Errorf("modfile: %w", err)
	}
	modulePath = mod.Module.Mod.Path
	for _, r := range mod.Require {
		requires = append(requires, requirement{path: r.Mod.Path, version: r.Mod.Version, indirect: r.Indirect})
	}
	return modulePath, requires, nil
}

// regexGoMod is the tier-2 fallback for a go.mod file modfile couldn't
// parse: pull the module directive and any require lines by line-scanning,
// mirroring extractGoModuleName's regex fallback.
func regexGoMod(content []byte) (string, []requirement) {
	var modulePath string
	var requires []requirement
	inRequireBlock := false

	for _, line := range strings.Split(string(content), "\n") {
		trimmed := strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(trimmed, "module "):
			modulePath = strings.TrimSpace(strings.TrimPrefix(trimmed, "module "))
		case trimmed == "require (":
			inRequireBlock = true
		case trimmed == ")":
			inRequireBlock = false
		case strings.HasPrefix(trimmed, "require ") && !inRequireBlock:
			if req, ok := parseRequireLine(strings.TrimPrefix(trimmed, "require ")); ok {
				requires = append(requires, req)
			}
		case inRequireBlock:
			if req, ok := parseRequireLine(trimmed); ok {
				requires = append(requires, req)
			}
		}
	}
	return modulePath, requires
}

func parseRequireLine(line string) (requirement, bool) {
	line = strings.TrimSpace(line)
	indirect := strings.HasSuffix(line, "// indirect")
	line = strings.TrimSpace(strings.TrimSuffix(line, "// indirect"))
	fields := strings.Fields(line)
	if len(fields) < 2 {
		return requirement{}, false
	}
	return requirement{path: fields[0], version: fields[1], indirect: indirect}, true
}

