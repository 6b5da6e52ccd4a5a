package aggregator

import "github.com/viant/archlens/model"

// coverageByFamily computes, per analyzer id, the ratio of files actually
// scanned to files discovered (spec §4.9: "coverage-by-component-kind =
// scanned/expected file counts"). The spec leaves "component kind" loosely
// defined for this ratio; analyzer id is the finest-grained, unambiguous
// key available at aggregation time, and downstream consumers can roll it
// up by family via the plugin registry if a coarser view is wanted.
func coverageByFamily(results map[string]*model.ScanResult, runOrder []string) map[string]float64 {
	coverage := map[string]float64{}
	for _, id := range runOrder {
		result, ok := results[id]
		if !ok || result == nil || result.Statistics == nil {
			continue
		}
		stats := result.Statistics
		if stats.FilesDiscovered == 0 {
			continue
		}
		coverage[id] = float64(stats.FilesScanned) / float64(stats.FilesDiscovered)
	}
	return coverage
}

// confidenceHistogram counts findings at each confidence level across every
// entity kind that carries one (ApiEndpoint, DataEntity, MessageFlow).
func confidenceHistogram(m *model.ArchitectureModel) map[model.ConfidenceLevel]int {
	histogram := map[model.ConfidenceLevel]int{}
	for _, e := range m.ApiEndpoints {
		histogram[e.Confidence]++
	}
	for _, e := range m.DataEntities {
		histogram[e.Confidence]++
	}
	for _, f := range m.MessageFlows {
		histogram[f.Confidence]++
	}
	return histogram
}
