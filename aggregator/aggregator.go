// Package aggregator merges the ScanResults produced by a pipeline run into
// one deduplicated ArchitectureModel (spec §4.9).
package aggregator

import (
	"github.com/viant/archlens/model"
)

// Aggregate merges results (keyed by analyzer id, as produced by
// pipeline.Run.Results) into an ArchitectureModel, deduplicating each entity
// kind by its semantic key and preserving first-seen order.
func Aggregate(projectName, projectVersion string, sourcePaths []string, results map[string]*model.ScanResult, runOrder []string) *model.ArchitectureModel {
	out := model.NewArchitectureModel(projectName, projectVersion, sourcePaths)

	components := newDedup[string, *model.Component]()
	deps := newDedup[string, model.Dependency]()
	endpoints := newDedup[string, model.ApiEndpoint]()
	flows := newDedup[string, model.MessageFlow]()
	entities := newDedup[string, model.DataEntity]()
	relationships := newDedup[string, model.Relationship]()

	for _, id := range runOrder {
		result, ok := results[id]
		if !ok || result == nil || !result.Success {
			continue
		}

		for _, c := range result.Components {
			components.add(c.ID, c)
		}
		for _, d := range result.Dependencies {
			deps.add(d.SemanticKey(), d)
		}
		for _, e := range result.ApiEndpoints {
			endpoints.add(e.SemanticKey(), e)
		}
		for _, f := range result.MessageFlows {
			flows.add(f.SemanticKey(), f)
		}
		for _, e := range result.DataEntities {
			entities.add(e.SemanticKey(), e)
		}
		for _, r := range result.Relationships {
			relationships.add(r.SemanticKey(), r)
		}

		if result.Statistics != nil {
			out.Quality.StatisticsByAnalyzer[id] = result.Statistics
		}
	}

	out.Components = components.values()
	out.Dependencies = deps.values()
	out.ApiEndpoints = endpoints.values()
	out.MessageFlows = flows.values()
	out.DataEntities = entities.values()
	out.Relationships = relationships.values()

	out.Quality.CoverageByComponentKind = coverageByFamily(results, runOrder)
	out.Quality.ConfidenceHistogram = confidenceHistogram(out)
	out.Quality.OutcomeCounts = map[string]int{}

	return out
}

// dedup preserves first-seen insertion order under a comparable key.
type dedup[K comparable, V any] struct {
	order []K
	byKey map[K]V
}

func newDedup[K comparable, V any]() *dedup[K, V] {
	return &dedup[K, V]{byKey: map[K]V{}}
}

func (d *dedup[K, V]) add(key K, value V) {
	if _, exists := d.byKey[key]; exists {
		return
	}
	d.byKey[key] = value
	d.order = append(d.order, key)
}

func (d *dedup[K, V]) values() []V {
	out := make([]V, 0, len(d.order))
	for _, k := range d.order {
		out = append(out, d.byKey[k])
	}
	return out
}
