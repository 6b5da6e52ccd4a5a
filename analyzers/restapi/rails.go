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

// RailsAnalyzer finds Rails REST endpoints by convention rather than by
// parsing decorators: a controller class under app/controllers named
// FooController maps to the /foo resource, and its seven standard action
// methods (index/show/new/create/edit/update/destroy) map to the seven
// standard RESTful routes. Ruby has no free Go grammar in the example pack
// (spec §4.7 catalogue), so this runs tier-2 regex only, exactly like
// gemfile-deps.
type RailsAnalyzer struct {
	kernel.Base
}

func NewRailsAnalyzer(idx *fileindex.Index) *RailsAnalyzer {
	return &RailsAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *RailsAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "rails-rest", Name: "Rails controller actions", Family: "REST API",
		Priority: 52, Languages: []string{"ruby"}, Globs: []string{"**/app/controllers/*_controller.rb"},
	}
}

func (a *RailsAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasRuby, applicability.HasRails)(ctx)
}

var railsClassLine = regexp.MustCompile(`^\s*class\s+(\w+)Controller\b`)
var railsDefLine = regexp.MustCompile(`^\s*def\s+(\w+)\b`)

// railsRoute is the conventional verb+path template for a standard Rails
// resourceful action, per the routes `resources :foo` generates.
var railsRoute = map[string]struct {
	method string
	suffix string
}{
	"index":   {"GET", ""},
	"new":     {"GET", "/new"},
	"create":  {"POST", ""},
	"show":    {"GET", "/:id"},
	"edit":    {"GET", "/:id/edit"},
	"update":  {"PUT", "/:id"},
	"destroy": {"DELETE", "/:id"},
}

func (a *RailsAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/app/controllers/*_controller.rb")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find rails controllers: %v", err))
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
				return nil, fmt.Errorf("rails: no structured grammar, regex only")
			},
			func() ([]string, error) {
				return a.ReadLines(bg, fileindex.Join(ctx.RootPath, relPath))
			},
		)
		if !ok {
			continue
		}

		className, resourcePath, actions := parseRailsController(lines)
		if className == "" || len(actions) == 0 {
			continue
		}

		comp := model.NewComponent(className, model.KindService)
		comp.Technology = "ruby/rails"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, action := range actions {
			route, known := railsRoute[action]
			if !known {
				continue
			}
			endpoints = append(endpoints, model.ApiEndpoint{
				ComponentID: comp.ID,
				Kind:        model.KindREST,
				Path:        "/" + resourcePath + route.suffix,
				Method:      route.method,
				Handler:     action,
				Location:    &model.Location{Path: relPath},
				Confidence:  model.MEDIUM,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, endpoints, nil, nil, nil, nil, stats)
}

func parseRailsController(lines []string) (className, resourcePath string, actions []string) {
	for _, line := range lines {
		if className == "" {
			if match := railsClassLine.FindStringSubmatch(line); match != nil {
				className = match[1] + "Controller"
				resourcePath = strings.ToLower(match[1])
				continue
			}
		}
		if match := railsDefLine.FindStringSubmatch(line); match != nil {
			actions = append(actions, match[1])
		}
	}
	return className, resourcePath, actions
}
