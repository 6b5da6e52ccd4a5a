// Package messaging implements the Messaging family (spec §4.7):
// kafka-messaging, sidekiq-messaging, celery-messaging, each producing
// model.MessageFlow findings.
package messaging

import (
	"context"
	"fmt"
	"regexp"

	"github.com/viant/archlens/analyzers/javakit"
	"github.com/viant/archlens/applicability"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/kernel"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// KafkaAnalyzer finds Kafka producers and consumers: methods annotated
// @KafkaListener(topics = "...") are subscribers; calls of the shape
// kafkaTemplate.send("topic", ...) anywhere in a method body mark that
// method's class as a publisher to that topic. The send-call match is a
// regex over the method's raw source text (javakit.Method.Body) rather
// than a method_invocation tree walk, since no teacher/pack file
// decomposes a Java call expression either.
type KafkaAnalyzer struct {
	kernel.Base
}

func NewKafkaAnalyzer(idx *fileindex.Index) *KafkaAnalyzer {
	return &KafkaAnalyzer{Base: kernel.NewBase(idx)}
}

func (a *KafkaAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{
		ID: "kafka-messaging", Name: "Kafka producers and consumers", Family: "Messaging",
		Priority: 58, Languages: []string{"java"}, Globs: []string{"**/*.java"},
	}
}

func (a *KafkaAnalyzer) Applies(ctx *model.ScanContext) bool {
	return applicability.And(applicability.HasJava, applicability.HasKafka)(ctx)
}

var kafkaSendCall = regexp.MustCompile(`\w*[Tt]emplate\.send\(\s*"([^"]+)"`)

func (a *KafkaAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult {
	bg := context.Background()
	files, err := a.Index.FindFiles(ctx.RootPath, "**/*.java")
	if err != nil {
		return a.FailedResult(a.Identity().ID, fmt.Sprintf("find java files: %v", err))
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

		classes, _, ok := kernel.ThreeTier[[]javakit.Class](stats, relPath,
			func() ([]javakit.Class, error) {
				if readErrs[i] != nil {
					return nil, readErrs[i]
				}
				return javakit.Parse(contents[i])
			},
			nil,
		)
		if !ok {
			continue
		}

		for _, class := range classes {
			var classFlows []model.MessageFlow
			var comp *model.Component

			ensureComponent := func() *model.Component {
				if comp == nil {
					comp = model.NewComponent(class.Name, model.KindService)
					comp.Technology = "java/kafka"
					comp.Location = &model.Location{Path: relPath, Line: class.Line}
				}
				return comp
			}

			for _, method := range class.Methods {
				if listener, found := javakit.FindAnnotation(method.Annotations, "KafkaListener"); found {
					c := ensureComponent()
					for _, topic := range listener.Args {
						classFlows = append(classFlows, model.MessageFlow{
							SubscriberComponentID: c.ID,
							Topic:                 topic,
							Broker:                "kafka",
							Confidence:            model.HIGH,
						})
					}
				}
				for _, match := range kafkaSendCall.FindAllStringSubmatch(method.Body, -1) {
					c := ensureComponent()
					classFlows = append(classFlows, model.MessageFlow{
						PublisherComponentID: c.ID,
						Topic:                match[1],
						Broker:               "kafka",
						Confidence:           model.MEDIUM,
					})
				}
			}

			if comp != nil {
				components = append(components, comp)
				flows = append(flows, classFlows...)
			}
		}
	}

	return a.BuildSuccessResult(a.Identity().ID, components, nil, nil, flows, nil, nil, nil, stats)
}
