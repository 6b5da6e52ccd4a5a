package dependency

import (
	"context"
	"fmt"
	"path"
	"regexp"
	"strings"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// GemfileAnalyzer extracts dependencies from Gemfile files. Gemfile.lock is
// not read, so a dependency's version is the constraint written in the
// Gemfile (e.g. "~>7.0"), never a resolved lock-file version. Ruby's
// Bundler DSL has no free Go grammar in the example pack, so this family
// runs tier-2 (regex) only: tier 1 always reports "no AST grammar
// available" and the kernel downgrades to the regex pass, stamping MEDIUM
// confidence throughout (spec §4.5: tier 2 is the only usable tier here).
type GemfileAnalyzer struct {
	kernel.Base
}

func NewGemfileAnalyzer(idx *fileindex.Index) *GemfileAnalyzer {
	return &GemfileAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *GemfileAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "gemfile-deps", Name: "Bundler dependencies", Family: "Dependency",
		Priority: 86, Languages: []string{"ruby"}, Globs: []string{"**/Gemfile", "**/Gemfile.lock"},
	}
}

func (a *GemfileAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.HasFiles("**/Gemfile")(ctx)
}

var gemLine = regexp.MustCompile(`^\s*gem\s+['"]([^'"]+)['"](?:\s*,\s*['"]([^'"]+)['"])?`)
var groupLine = regexp.MustCompile(`^\s*group\s+(.+?)\s+do\b`)
var groupSymbol = regexp.MustCompile(`:(\w+)`)
var endLine = regexp.MustCompile(`^\s*end\b`)

func (a *GemfileAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/Gemfile")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find Gemfile: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	var components []*model.Component
	var deps []model.Dependency

	for _, relPath := range files {
		if ctx.Deadline() {
			break
		}

		findings, _, ok := kernel.ThreeTier[[]gemSpec](stats, relPath,
			func() ([]gemSpec, error) {
				return nil, fmt.Errorf("gemfile: no structured grammar, regex only")
			},
			func() ([]gemSpec, error) {
				lines, err := a.ReadLines(bg, fileindex.Join(ctx.RootPath, relPath))
				if err != nil {
					return nil, err
				}
				return parseGemfile(lines), nil
			},
		)
		if !ok {
			continue
		}

		name := path.Dir(relPath)
		comp := model.NewComponent(name+"/Gemfile", model.KindService)
		comp.Technology = "ruby"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, g := range findings {
			deps = append(deps, model.Dependency{
				SourceComponentID: comp.ID, ArtifactID: g.name, Version: g.version,
				Scope: g.scope, Direct: true,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, deps, nil, nil, nil, nil, nil, stats)
}

type gemSpec struct {
	name, version string
	scope         model.DependencyScope
}

// parseGemfile tracks the enclosing `group :name, ... do ... end` block so a
// gem declared under `group :test` (rspec-rails, capybara, ...) reports
// ScopeTest and one under `group :development` reports ScopeDev, instead of
// every gem being stamped compile regardless of its group.
func parseGemfile(lines []string) []gemSpec {
	var specs []gemSpec
	scopeStack := []model.DependencyScope{model.ScopeCompile}

	for _, line := range lines {
		if match := groupLine.FindStringSubmatch(line); match != nil {
			scopeStack = append(scopeStack, groupScope(match[1]))
			continue
		}
		if endLine.MatchString(line) {
			if len(scopeStack) > 1 {
				scopeStack = scopeStack[:len(scopeStack)-1]
			}
			continue
		}
		match := gemLine.FindStringSubmatch(line)
		if match == nil {
			continue
		}
		specs = append(specs, gemSpec{
			name: match[1], version: match[2], scope: scopeStack[len(scopeStack)-1],
		})
	}
	return specs
}

// groupScope maps a Bundler group list ("group :development, :test do") to
// the dependency scope it implies. A :test group wins over :development when
// both are listed; any other group name (e.g. :production) reports compile.
func groupScope(group string) model.DependencyScope {
	scope := model.ScopeCompile
	for _, sym := range groupSymbol.FindAllStringSubmatch(group, -1) {
		switch strings.ToLower(sym[1]) {
		case "test":
			return model.ScopeTest
		case "development":
			scope = model.ScopeDev
		}
	}
	return scope
}
