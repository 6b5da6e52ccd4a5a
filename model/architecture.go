package model

// QualityReport summarizes how trustworthy an ArchitectureModel is.
type QualityReport struct {
	// StatisticsByAnalyzer copies each successful analyzer's ScanStatistics.
	StatisticsByAnalyzer map[string]*ScanStatistics
	// CoverageByComponentKind is scanned/expected file-count ratios, keyed by
	// analyzer id.
	CoverageByComponentKind map[string]float64
	// ConfidenceHistogram counts findings at each confidence level across the model.
	ConfidenceHistogram map[ConfidenceLevel]int
	// OutcomeCounts is initialized empty and aggregator.Aggregate leaves it
	// empty; per-outcome analyzer counts are reported on
	// pipeline.Run.OutcomeCounts instead.
	OutcomeCounts map[string]int
}

// NewQualityReport returns a QualityReport with initialized, empty maps.
func NewQualityReport() *QualityReport {
	return &QualityReport{
		StatisticsByAnalyzer:    map[string]*ScanStatistics{},
		CoverageByComponentKind: map[string]float64{},
		ConfidenceHistogram:     map[ConfidenceLevel]int{},
		OutcomeCounts:           map[string]int{},
	}
}

// ArchitectureModel is the deduplicated union of every successful ScanResult,
// produced by the Aggregator (spec §4.9).
type ArchitectureModel struct {
	ProjectName    string
	ProjectVersion string
	SourcePaths    []string

	Components    []*Component
	Dependencies  []Dependency
	ApiEndpoints  []ApiEndpoint
	DataEntities  []DataEntity
	MessageFlows  []MessageFlow
	Relationships []Relationship

	Quality *QualityReport
}

// NewArchitectureModel returns an ArchitectureModel with non-nil collections
// and an initialized QualityReport.
func NewArchitectureModel(projectName, projectVersion string, sourcePaths []string) *ArchitectureModel {
	return &ArchitectureModel{
		ProjectName:    projectName,
		ProjectVersion: projectVersion,
		SourcePaths:    sourcePaths,
		Components:     []*Component{},
		Dependencies:   []Dependency{},
		ApiEndpoints:   []ApiEndpoint{},
		DataEntities:   []DataEntity{},
		MessageFlows:   []MessageFlow{},
		Relationships:  []Relationship{},
		Quality:        NewQualityReport(),
	}
}
