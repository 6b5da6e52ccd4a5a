package model

import "sort"

// MaxTopErrors bounds the top-N most frequent error messages kept per analyzer.
const MaxTopErrors = 10

// maxErrorMessageLen truncates recorded error messages (spec §4.5 tier 3).
const maxErrorMessageLen = 200

// ErrorType classifies why a file could not be parsed at tier 1 or tier 2.
type ErrorType string

const (
	ErrorParse             ErrorType = "parse"
	ErrorIO                ErrorType = "io"
	ErrorUnsupportedFeature ErrorType = "unsupported-feature"
	ErrorSizeLimit         ErrorType = "size-limit"
	ErrorTimeout           ErrorType = "timeout"
)

// ScanStatistics is the per-analyzer parse-quality report. All counters are
// non-negative; discovered >= scanned >= parsedSuccessfully+parsedWithFallback+failed+skipped.
type ScanStatistics struct {
	FilesDiscovered      int
	FilesScanned         int
	ParsedSuccessfully   int // tier 1
	ParsedWithFallback   int // tier 2
	Failed               int // tier 3
	Skipped              int // passed over by the analyzer without parsing (oversized files count as Failed, type size-limit)
	ErrorTypeCounts      map[ErrorType]int
	errorMessageCounts   map[string]int
	errorMessageOrder    []string
}

// NewScanStatistics returns a ScanStatistics with initialized, empty maps.
func NewScanStatistics() *ScanStatistics {
	return &ScanStatistics{
		ErrorTypeCounts:    map[ErrorType]int{},
		errorMessageCounts: map[string]int{},
	}
}

// RecordFailure increments the failed counter and records the error's type and
// (truncated) message for the top-N error summary.
func (s *ScanStatistics) RecordFailure(kind ErrorType, message string) {
	s.Failed++
	s.ErrorTypeCounts[kind]++
	if len(message) > maxErrorMessageLen {
		message = message[:maxErrorMessageLen]
	}
	if _, seen := s.errorMessageCounts[message]; !seen {
		s.errorMessageOrder = append(s.errorMessageOrder, message)
	}
	s.errorMessageCounts[message]++
}

// TopErrors returns up to MaxTopErrors most frequent truncated error messages,
// most frequent first, ties broken by first-seen order.
func (s *ScanStatistics) TopErrors() []string {
	type entry struct {
		message string
		count   int
		rank    int
	}
	entries := make([]entry, 0, len(s.errorMessageOrder))
	for rank, message := range s.errorMessageOrder {
		entries = append(entries, entry{message, s.errorMessageCounts[message], rank})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].count != entries[j].count {
			return entries[i].count > entries[j].count
		}
		return entries[i].rank < entries[j].rank
	})
	if len(entries) > MaxTopErrors {
		entries = entries[:MaxTopErrors]
	}
	out := make([]string, len(entries))
	for i, e := range entries {
		out[i] = e.message
	}
	return out
}
