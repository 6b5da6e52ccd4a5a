package messaging

import (
	"context"
	"fmt"
	"regexp"

	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// SidekiqAnalyzer finds Sidekiq worker classes (`include Sidekiq::Worker`)
// as message subscribers. Ruby has no free Go grammar in the example pack
// (spec §4.7 catalogue), so this runs tier-2 regex only, the same way
// rails-rest does.
type SidekiqAnalyzer struct {
	kernel.Base
}

func NewSidekiqAnalyzer(idx *fileindex.Index) *SidekiqAnalyzer {
	return &SidekiqAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *SidekiqAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "sidekiq-messaging", Name: "Sidekiq workers", Family: "Messaging",
		Priority: 56, Languages: []string{"ruby"}, Globs: []string{"**/*.rb"},
	}
}

func (a *SidekiqAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasRuby, applicability.HasAnyDependency("sidekiq"))(ctx)
}

var sidekiqClassLine = regexp.MustCompile(`^\s*class\s+(\w+)\b`)
var sidekiqIncludeLine = regexp.MustCompile(`include\s+Sidekiq::Worker\b`)
var sidekiqQueueLine = regexp.MustCompile(`sidekiq_options\b.*queue:\s*[:"']([\w.-]+)`)
var sidekiqPerformDefLine = regexp.MustCompile(`^\s*def\s+perform\b`)

func (a *SidekiqAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.rb")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find ruby files: %v", err))
	}

	stats := model.NewScanStatistics()
	stats.FilesDiscovered = len(files)

	var components []*model.Component
	var flows []model.MessageFlow

	for _, relPath := range files {
		if ctx.Deadline() {
			break
		}

		lines, _, ok := kernel.ThreeTier[[]string](stats, relPath,
			func() ([]string, error) {
				return nil, fmt.Errorf("sidekiq: no structured grammar, regex only")
			},
			func() ([]string, error) {
				return a.ReadLines(bg, fileindex.Join(ctx.RootPath, relPath))
			},
		)
		if !ok {
			continue
		}

		className, queue, hasWorker, hasPerform := parseSidekiqWorker(lines)
		if className == "" || !hasWorker || !hasPerform {
			continue
		}

		comp := model.NewComponent(className, model.KindService)
		comp.Technology = "ruby/sidekiq"
		comp.Location = &model.Location{Path: relPath}
		components = append(components, comp)

		if queue == "" {
			queue = "default"
		}
		flows = append(flows, model.MessageFlow{
			SubscriberComponentID: comp.ID,
			Topic:                 queue,
			Broker:                "sidekiq",
			Confidence:            model.MEDIUM,
		})
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, flows, nil, nil, nil, stats)
}

func parseSidekiqWorker(lines []string) (className, queue string, hasWorker, hasPerform bool) {
	for _, line := range lines {
		if className == "" {
			if match := sidekiqClassLine.FindStringSubmatch(line); match != nil {
				className = match[1]
				continue
			}
		}
		if sidekiqIncludeLine.MatchString(line) {
			hasWorker = true
		}
		if match := sidekiqQueueLine.FindStringSubmatch(line); match != nil {
			queue = match[1]
		}
		if sidekiqPerformDefLine.MatchString(line) {
			hasPerform = true
		}
	}
	return className, queue, hasWorker, hasPerform
}
