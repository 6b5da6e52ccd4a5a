package messaging

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/viant/archlens/analyzers/pykit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// CeleryAnalyzer finds Celery tasks: functions decorated with @app.task or
// @shared_task are subscribers on a queue: the decorator's first quoted
// string argument if it has one, else Celery's default queue "celery".
type CeleryAnalyzer struct {
	kernel.Base
}

func NewCeleryAnalyzer(idx *fileindex.Index) *CeleryAnalyzer {
	return &CeleryAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *CeleryAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "celery-messaging", Name: "Celery tasks", Family: "Messaging",
		Priority: 56, Languages: []string{"python"}, Globs: []string{"**/*.py"},
	}
}

func (a *CeleryAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasPython, applicability.HasAnyDependency("celery"))(ctx)
}

func celeryTaskDecorator(def pykit.Def) (pykit.Decorator, bool) {
	if d, ok := pykit.FindDecorator(def.Decorators, "task"); ok {
		return d, true
	}
	return pykit.FindDecorator(def.Decorators, "shared_task")
}

func (a *CeleryAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.py")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find python files: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	paths := make([]string, len(files))
	for i, relPath := range files {
		paths[i] = fileindex.Join(ctx.RootPath, relPath)
	}
	contents, readErrs := a.ReadAllParallel(bg, paths, kernel.Parallelism(ctx))

	var components []*model.Component
	var flows []model.MessageFlow

	for i, relPath := range files {
		if ctx.Deadline() {
			break
		}

		defs, _, ok := kernel.ThreeTier[[]pykit.Def](stats, relPath,
			func() ([]pykit.Def, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return pykit.Parse(contents[i])
			},
			nil,
		)
		if !ok {
			continue
		}

		var taskDefs []pykit.Def
		for _, def := range defs {
			if def.IsClass {
				continue
			}
			if _, found := celeryTaskDecorator(def); found {
				taskDefs = append(taskDefs, def)
			}
		}
		if len(taskDefs) == 0 {
			continue
		}

		comp := model.NewComponent(filepath.Base(relPath), model.KindService)
		comp.Technology = "python/celery"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		for _, def := range taskDefs {
			decorator, _ := celeryTaskDecorator(def)
			queue := firstCeleryArg(decorator)
			if queue == "" {
				queue = "celery"
			}
			flows = append(flows, model.MessageFlow{
				SubscriberComponentID: comp.ID,
				Topic:                 queue,
				Broker:                "celery",
				Confidence:            model.MEDIUM,
			})
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, flows, nil, nil, nil, stats)
}

func firstCeleryArg(decorator pykit.Decorator) string {
	if len(decorator.Args) == 0 {
		return ""
	}
	return decorator.Args[0]
}
