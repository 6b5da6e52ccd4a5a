package kernel

import (
	"errors"
	"fmt"
	"os"

	"github.com/viant/archlens/model"
)

// Tier1Func performs the structured AST/grammar parse of one file, returning
// typed findings on success.
type Tier1Func[T any] func() (T, error)

// Tier2Func performs the regex-based fallback over the same file's content,
// returning typed findings on success. A nil Tier2Func means the analyzer
// declined to supply a fallback (spec §4.5: "must be opt-in").
type Tier2Func[T any] func() (T, error)

// ThreeTier runs the tier-1/tier-2/tier-3 fallback described in spec §4.5
// for one candidate file and returns the recovered findings, the confidence
// they were stamped at, and ok=false if every tier failed (a failure record
// has already been written into stats in that case).
//
// A panic escaping tier1 or tier2 is treated exactly like a returned error —
// it downgrades to the next tier rather than escaping ThreeTier, matching
// the invariant that tier decisions never depend on an escaping exception.
func ThreeTier[T any](stats *model.ScanStatistics, path string, tier1 Tier1Func[T], tier2 Tier2Func[T]) (findings T, confidence model.ConfidenceLevel, ok bool) {
	stats.FilesScanned++

	if value, err := safeCall(tier1); err == nil {
		stats.ParsedSuccessfully++
		return value, model.HIGH, true
	} else if tier2 != nil {
		if value, err2 := safeCall(tier2); err2 == nil {
			stats.ParsedWithFallback++
			return value, model.MEDIUM, true
		} else {
			stats.RecordFailure(classifyError(err2), err2.Error())
		}
	} else {
		stats.RecordFailure(classifyError(err), err.Error())
	}

	var zero T
	return zero, model.LOW, false
}

// safeCall invokes fn, converting any panic into an error so a misbehaving
// parser can never take the whole pipeline down with it.
func safeCall[T any](fn func() (T, error)) (value T, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			value = zero
			err = fmt.Errorf("kernel: parser panic: %v", r)
		}
	}()
	return fn()
}

func classifyError(err error) model.ErrorType {
	switch {
	case err == nil:
		return model.ErrorParse
	case isFileTooLarge(err):
		return model.ErrorSizeLimit
	case errors.Is(err, os.ErrNotExist), errors.Is(err, os.ErrPermission):
		return model.ErrorIO
	default:
		return model.ErrorParse
	}
}

func isFileTooLarge(err error) bool {
	var tooLarge *ErrFileTooLarge
	return errors.As(err, &tooLarge)
}
