package dependency

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

// NpmAnalyzer extracts dependencies from package.json. JSON is a strict
// enough format that a stdlib encoding/json decode IS the tier-1 structured
// parse here; there is no regex tier-2 (a malformed package.json is not
// something a regex can recover more information from than json.Unmarshal
// already failing to parse).
type NpmAnalyzer struct {
	kernel.Base
}

func NewNpmAnalyzer(idx *fileindex.Index) *NpmAnalyzer {
	return &NpmAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *NpmAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "npm-deps", Name: "npm dependencies", Family: "Dependency",
		Priority: 88, Languages: []string{"javascript", "typescript"},
		Globs: []string{"**/package.json"},
	}
}

func (a *NpmAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasFiles("**/package.json")(ctx)
}

type packageJSON struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func (a *NpmAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/package.json")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find package.json: %v", err))
	}
	// node_modules is a dependency's own copy of package.json, not a
	// source component of the project being documented.
	files = filterOutNodeModules(files)

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
		stats.FilesScanned++
		if readErrs[i] != nil {
			stats.RecordFailure(model.ErrorIO, readErrs[i].Error())
			continue
		}

		var pkg packageJSON
		if err := json.Unmarshal(contents[i], &pkg); err != nil {
			stats.RecordFailure(model.ErrorParse, err.Error())
			continue
		}
		stats.ParsedSuccessfully++

		name := pkg.Name
		if name == "" {
			name = relPath
		}
		comp := model.NewComponent(name, model.KindService)
		comp.Technology = "javascript"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for artifact, version := range pkg.Dependencies {
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: artifact, Version: version,
				Scope: model.ScopeCompile, Direct: true,
			})
		}
		for artifact, version := range pkg.DevDependencies {
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: artifact, Version: version,
				Scope: model.ScopeDev, Direct: true,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, deps, nil, nil, nil, nil, nil, stats)
}

func filterOutNodeModules(files []string) []string {
	var out []string
	for _, f := range files {
		if !containsSegment(f, "node_modules") {
			out = append(out, f)
		}
	}
	return out
}

func containsSegment(path, segment string) bool {
	for _, part := range splitPath(path) {
		if part == segment {
			return true
		}
	}
	return false
}

func splitPath(path string) []string {
	var parts []string
	start := 0
	for i := 0; i < len(path); i++ {
		if path[i] == '/' {
			parts = append(parts, path[start:i])
			start = i + 1
		}
	}
	parts = append(parts, path[start:])
	return parts
}
