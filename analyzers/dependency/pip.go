package dependency

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// PipAnalyzer extracts dependencies from pyproject.toml, covering both the
// PEP 621 `[project.dependencies]` array form and Poetry's
// `[tool.poetry.dependencies]` table form.
type PipAnalyzer struct {
	kernel.Base
}

func NewPipAnalyzer(idx *fileindex.Index) *PipAnalyzer {
	return &PipAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *PipAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "pip-deps", Name: "Python project dependencies", Family: "Dependency",
		Priority: 88, Languages: []string{"python"}, Globs: []string{"**/pyproject.toml"},
	}
}

func (a *PipAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasFiles("**/pyproject.toml")(ctx)
}

type pyProject struct {
	Project struct {
		Name         string   `toml:"name"`
		Version      string   `toml:"version"`
		Dependencies []string `toml:"dependencies"`
	} `toml:"project"`
	Tool struct {
		Poetry struct {
			Name         string         `toml:"name"`
			Version      string         `toml:"version"`
			Dependencies map[string]any `toml:"dependencies"`
			DevDeps      map[string]any `toml:"dev-dependencies"`
		} `toml:"poetry"`
	} `toml:"tool"`
}

var pep508NameVersion = regexp.MustCompile(`^([A-Za-z0-9._-]+)\s*(.*)$`)

func (a *PipAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/pyproject.toml")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find pyproject.toml: %v", err))
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
		stats.FilesScanned++
		if readErrs[i] != nil {
			stats.RecordFailure(model.ErrorIO, readErrs[i].Error())
			continue
		}

		var proj pyProject
		if err := toml.Unmarshal(contents[i], &proj); err != nil {
			stats.RecordFailure(model.ErrorParse, err.Error())
			continue
		}
		stats.ParsedSuccessfully++

		name := proj.Project.Name
		if name == "" {
			name = proj.Tool.Poetry.Name
		}
		if name == "" {
			name = relPath
		}
		comp := model.NewComponent(name, model.KindService)
		comp.Technology = "python"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, spec := range proj.Project.Dependencies {
			artifact, version := splitPep508(spec)
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: artifact, Version: version,
				Scope: model.ScopeCompile, Direct: true,
			})
		}
		for artifact, spec := range proj.Tool.Poetry.Dependencies {
			if strings.EqualFold(artifact, "python") {
				continue
			}
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: artifact, Version: poetryVersion(spec),
				Scope: model.ScopeCompile, Direct: true,
			})
		}
		for artifact, spec := range proj.Tool.Poetry.DevDeps {
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: artifact, Version: poetryVersion(spec),
				Scope: model.ScopeDev, Direct: true,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, deps, nil, nil, nil, nil, nil, stats)
}

// splitPep508 splits a PEP 508 dependency specifier ("requests>=2.0") into
// a name and version-constraint string.
func splitPep508(spec string) (name, version string) {
	match := pep508NameVersion.FindStringSubmatch(spec)
	if match == nil {
		return spec, ""
	}
	return match[1], strings.TrimSpace(match[2])
}

func poetryVersion(spec any) string {
	switch v := spec.(type) {
	case string:
		return v
	case map[string]any:
		if version, ok := v["version"].(string); ok {
			return version
		}
	}
	return ""
}
