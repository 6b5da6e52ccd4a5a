package model

// ScanResult is the immutable output of one analyzer invocation.
type ScanResult struct {
	AnalyzerID string
	Success    bool

	Components    []*Component
	Dependencies  []Dependency
	ApiEndpoints  []ApiEndpoint
	DataEntities  []DataEntity
	MessageFlows  []MessageFlow
	Relationships []Relationship

	Warnings []string
	Errors   []string

	Statistics *ScanStatistics
}

// EmptyResult returns a successful, empty ScanResult for an analyzer that
// found nothing to report (e.g. it is applicable but the directory has no
// matching files).
func EmptyResult(analyzerID string) *ScanResult {
	return &ScanResult{
		AnalyzerID: analyzerID,
		Success:    true,
		Statistics: NewScanStatistics(),
	}
}

// FailedResult returns a ScanResult marking fatal analyzer failure. Per spec
// §4.3, an analyzer never panics out of scan; internal fatal conditions are
// reported this way instead.
func FailedResult(analyzerID string, errs ...string) *ScanResult {
	return &ScanResult{
		AnalyzerID: analyzerID,
		Success:    false,
		Errors:     errs,
		Statistics: NewScanStatistics(),
	}
}

// BuildSuccessResult assembles a successful ScanResult from the entity
// collections an analyzer produced. Only stats is defaulted (to an empty
// ScanStatistics when nil); every slice is stored as given, so a nil slice
// argument stays nil in the result.
func BuildSuccessResult(
	analyzerID string,
	components []*Component,
	deps []Dependency,
	endpoints []ApiEndpoint,
	flows []MessageFlow,
	entities []DataEntity,
	relationships []Relationship,
	warnings []string,
	stats *ScanStatistics,
) *ScanResult {
	if stats == nil {
		stats = NewScanStatistics()
	}
	return &ScanResult{
		AnalyzerID:    analyzerID,
		Success:       true,
		Components:    components,
		Dependencies:  deps,
		ApiEndpoints:  endpoints,
		MessageFlows:  flows,
		DataEntities:  entities,
		Relationships: relationships,
		Warnings:      warnings,
		Statistics:    stats,
	}
}
