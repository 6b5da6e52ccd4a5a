package dependency

import (
	"context"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// MavenAnalyzer extracts dependencies from a Maven pom.xml. Tier 1 is a
// stdlib encoding/xml decode of the subset of POM shape this cares about;
// there is no tier-2 regex fallback since a malformed pom.xml is rare enough
// that the cost of a second parser doesn't pay for itself (it falls
// straight to a tier-3 failure record instead).
type MavenAnalyzer struct {
	kernel.Base
}

func NewMavenAnalyzer(idx *fileindex.Index) *MavenAnalyzer {
	return &MavenAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *MavenAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "maven-deps", Name: "Maven dependencies", Family: "Dependency",
		Priority: plugin.PriorityDependency, Languages: []string{"java"},
		Globs: []string{"**/pom.xml"},
	}
}

func (a *MavenAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasFiles("**/pom.xml")(ctx)
}

type mavenProject struct {
	XMLName    xml.Name `xml:"project"`
	GroupID    string   `xml:"groupId"`
	ArtifactID string   `xml:"artifactId"`
	Version    string   `xml:"version"`
	Properties struct {
		Entries []mavenProp `xml:",any"`
	} `xml:"properties"`
	Dependencies []mavenDependency `xml:"dependencies>dependency"`
}

type mavenProp struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type mavenDependency struct {
	GroupID    string `xml:"groupId"`
	ArtifactID string `xml:"artifactId"`
	Version    string `xml:"version"`
	Scope      string `xml:"scope"`
}

func (a *MavenAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/pom.xml")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find pom.xml: %v", err))
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

		project, rawProps, err := decodeMavenPom(contents[i])
		if err != nil {
			stats.RecordFailure(model.ErrorParse, err.Error())
			continue
		}
		stats.ParsedSuccessfully++

		props := map[string]string{"project.version": project.Version, "project.groupId": project.GroupID}
		for k, v := range rawProps {
			props[k] = v
		}

		name := project.GroupID + ":" + project.ArtifactID
		comp := model.NewComponent(name, model.KindService)
		comp.Technology = "java"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, d := range project.Dependencies {
			scope := model.ScopeCompile
			switch d.Scope {
			case "test":
				scope = model.ScopeTest
			case "runtime":
				scope = model.ScopeRuntime
			case "provided":
				scope = model.ScopeCompile
			}
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID,
				GroupID:           interpolate(d.GroupID, props),
				ArtifactID:        interpolate(d.ArtifactID, props),
				Version:           interpolate(d.Version, props),
				Scope:             scope,
				Direct:            true,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, deps, nil, nil, nil, nil, nil, stats)
}

func decodeMavenPom(content []byte) (*mavenProject, map[string]string, error) {
	var project mavenProject
	if err := xml.Unmarshal(content, &project); err != nil {
		return nil, nil, fmt.Errorf("maven: decode pom.xml: %w", err)
	}
	props := map[string]string{}
	for _, p := range project.Properties.Entries {
		props[p.XMLName.Local] = strings.TrimSpace(p.Value)
	}
	return &project, props, nil
}

// interpolate resolves "${key}" placeholders against props, leaving
// unresolved placeholders as-is (best-effort, per spec's confidence model —
// an unresolved version string is still reported, just imprecisely).
func interpolate(value string, props map[string]string) string {
	if !strings.Contains(value, "${") {
		return value
	}
	for key, v := range props {
		value = strings.ReplaceAll(value, "${"+key+"}", v)
	}
	return value
}
