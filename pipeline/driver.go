// Package pipeline implements the Pipeline Driver of spec §4.8: it sorts
// registered analyzers, resolves the configured selection mode, invokes
// each analyzer under a timeout, and accumulates ScanResults keyed by
// analyzer id in run order.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

// DefaultAnalyzerTimeout is the per-analyzer wall-clock budget (spec §4.8
// step 4: "default 5 min per analyzer").
const DefaultAnalyzerTimeout = 5 * time.Minute

// Outcome classifies how one analyzer's run ended, for the summary spec
// §4.8 step 5 asks for ("counts by outcome").
type Outcome string

const (
	OutcomeSuccess       Outcome = "success"
	OutcomeFailed        Outcome = "failed"
	OutcomeTimeout       Outcome = "timeout"
	OutcomeDisabled      Outcome = "disabled"
	OutcomeNotApplicable Outcome = "not_applicable"
)

// Options configures one pipeline Run.
type Options struct {
	RootPath     string
	SearchRoots  []string
	Mode         plugin.Mode
	Groups       []string
	Enabled      []string
	ScannerConfig map[string]map[string]any
	// AnalyzerTimeout overrides DefaultAnalyzerTimeout when non-zero.
	AnalyzerTimeout time.Duration
}

// Run is the ordered result of one pipeline invocation.
type Run struct {
	Results        map[string]*model.ScanResult
	Order          []string // analyzer ids in the order they were invoked (run + skipped)
	OutcomeByID    map[string]Outcome
	OutcomeCounts  map[Outcome]int
	UnknownIDs     []string // unresolved scanners.enabled entries under EXPLICIT mode (spec §6)
}

// Driver runs a Registry's analyzers against a project root.
type Driver struct {
	Registry *plugin.Registry
}

// NewDriver returns a Driver over reg.
func NewDriver(reg *plugin.Registry) *Driver {
	return &Driver{Registry: reg}
}

// Run executes every registered analyzer in priority order (spec §4.8).
func (d *Driver) Run(ctx context.Context, opts Options) *Run {
	analyzers := d.Registry.All() // already sorted: priority desc, id asc

	mode := opts.Mode
	if mode == "" {
		mode = plugin.ModeAuto
	}
	selection := plugin.Resolve(d.Registry, mode, opts.Groups, opts.Enabled)

	timeout := opts.AnalyzerTimeout
	if timeout <= 0 {
		timeout = DefaultAnalyzerTimeout
	}

	run := &Run{
		Results:       map[string]*model.ScanResult{},
		OutcomeByID:   map[string]Outcome{},
		OutcomeCounts: map[Outcome]int{},
		UnknownIDs:    selection.Unknown,
	}

	for _, analyzer := range analyzers {
		id := analyzer.Identity().ID
		run.Order = append(run.Order, id)

		if !selection.Includes(id) {
			run.record(id, OutcomeDisabled, nil)
			continue
		}

		scanCtx := model.NewScanContext(opts.RootPath, opts.SearchRoots, opts.ScannerConfig[id], snapshot(run.Results))

		// A panicking Applies counts as not applicable.
		applies := func() (ok bool) {
			defer func() {
				if recover() != nil {
					ok = false
				}
			}()
			return analyzer.Applies(scanCtx)
		}()
		if !applies {
			run.record(id, OutcomeNotApplicable, nil)
			continue
		}

		result, outcome := d.invokeWithTimeout(ctx, analyzer, scanCtx, timeout)
		run.record(id, outcome, result)
	}

	return run
}

func (r *Run) record(id string, outcome Outcome, result *model.ScanResult) {
	r.OutcomeByID[id] = outcome
	r.OutcomeCounts[outcome]++
	if result != nil {
		r.Results[id] = result
	}
}

// invokeWithTimeout calls analyzer.Scan with a cooperative deadline: the
// ScanContext's Deadline() predicate flips to true once timeout elapses, and
// the call itself runs on its own goroutine so a runaway analyzer cannot
// block the driver forever (spec §5: cancellation is cooperative, checked
// at file boundaries by the analyzer; the driver additionally bounds how
// long it waits for that cooperative return).
func (d *Driver) invokeWithTimeout(ctx context.Context, analyzer plugin.Analyzer, scanCtx *model.ScanContext, timeout time.Duration) (*model.ScanResult, Outcome) {
	deadline := time.Now().Add(timeout)
	scanCtx = scanCtx.WithDeadline(func() bool { return time.Now().After(deadline) })

	type outcome struct {
		result *model.ScanResult
		panicked bool
		panicVal any
	}
	done := make(chan outcome, 1)

	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- outcome{panicked: true, panicVal: r}
			}
		}()
		done <- outcome{result: analyzer.Scan(scanCtx)}
	}()

	select {
	case out := <-done:
		if out.panicked {
			id := analyzer.Identity().ID
			return model.FailedResult(id, fmt.Sprintf("analyzer panic: %v", out.panicVal)), OutcomeFailed
		}
		if out.result == nil {
			return model.FailedResult(analyzer.Identity().ID, "analyzer returned a nil result"), OutcomeFailed
		}
		if !out.result.Success {
			return out.result, OutcomeFailed
		}
		return out.result, OutcomeSuccess
	case <-time.After(time.Until(deadline)):
		id := analyzer.Identity().ID
		return model.FailedResult(id, "timeout"), OutcomeTimeout
	case <-ctx.Done():
		id := analyzer.Identity().ID
		return model.FailedResult(id, ctx.Err().Error()), OutcomeFailed
	}
}

// snapshot returns a shallow copy of results so a later analyzer's
// PriorResults map cannot be mutated by driver bookkeeping after the fact.
func snapshot(results map[string]*model.ScanResult) map[string]*model.ScanResult {
	out := make(map[string]*model.ScanResult, len(results))
	for k, v := range results {
		out[k] = v
	}
	return out
}
