package pipeline

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/archlens/model"
	"github.com/viant/archlens/plugin"
)

type fnAnalyzer struct {
	id       string
	priority int
	applies  func(*model.ScanContext) bool
	scan     func(*model.ScanContext) *model.ScanResult
}

func (f fnAnalyzer) Identity() plugin.Identity {
	return plugin.Identity{ID: f.id, Priority: f.priority}
}
func (f fnAnalyzer) Applies(ctx *model.ScanContext) bool { return f.applies(ctx) }
func (f fnAnalyzer) Scan(ctx *model.ScanContext) *model.ScanResult { return f.scan(ctx) }

func TestDriverRunsApplicableAnalyzersInOrder(t *testing.T) {
	var order []string
	mk := func(id string, priority int) plugin.Analyzer {
		return fnAnalyzer{
			id: id, priority: priority,
			applies: func(*model.ScanContext) bool { return true },
			scan: func(*model.ScanContext) *model.ScanResult {
				order = append(order, id)
				return model.EmptyResult(id)
			},
		}
	}
	reg, err := plugin.NewRegistry(mk("low", 10), mk("high", 90))
	require.NoError(t, err)

	run := NewDriver(reg).Run(context.Background(), Options{RootPath: "/proj"})

	assert.Equal(t, []string{"high", "low"}, order)
	assert.Equal(t, OutcomeSuccess, run.OutcomeByID["high"])
	assert.Equal(t, OutcomeSuccess, run.OutcomeByID["low"])
}

func TestDriverSkipsNotApplicable(t *testing.T) {
	reg, err := plugin.NewRegistry(fnAnalyzer{
		id: "a", priority: 1,
		applies: func(*model.ScanContext) bool { return false },
		scan:    func(*model.ScanContext) *model.ScanResult { return model.EmptyResult("a") },
	})
	require.NoError(t, err)

	run := NewDriver(reg).Run(context.Background(), Options{})
	assert.Equal(t, OutcomeNotApplicable, run.OutcomeByID["a"])
	assert.Equal(t, 1, run.OutcomeCounts[OutcomeNotApplicable])
}

func TestDriverExplicitModeUnknownIDIsWarningOnly(t *testing.T) {
	reg, err := plugin.NewRegistry(fnAnalyzer{
		id: "maven-deps", priority: 90,
		applies: func(*model.ScanContext) bool { return true },
		scan:    func(*model.ScanContext) *model.ScanResult { return model.EmptyResult("maven-deps") },
	})
	require.NoError(t, err)

	run := NewDriver(reg).Run(context.Background(), Options{
		Mode:    plugin.ModeExplicit,
		Enabled: []string{"maven-deps-typo"},
	})

	assert.Equal(t, []string{"maven-deps-typo"}, run.UnknownIDs)
	assert.Equal(t, OutcomeDisabled, run.OutcomeByID["maven-deps"])
	assert.Empty(t, run.Results)
}

func TestDriverTimesOutUncooperativeAnalyzer(t *testing.T) {
	reg, err := plugin.NewRegistry(fnAnalyzer{
		id: "slow", priority: 1,
		applies: func(*model.ScanContext) bool { return true },
		scan: func(ctx *model.ScanContext) *model.ScanResult {
			time.Sleep(50 * time.Millisecond)
			return model.EmptyResult("slow")
		},
	})
	require.NoError(t, err)

	run := NewDriver(reg).Run(context.Background(), Options{AnalyzerTimeout: 5 * time.Millisecond})
	assert.Equal(t, OutcomeTimeout, run.OutcomeByID["slow"])
}

func TestDriverRecoversFromPanic(t *testing.T) {
	reg, err := plugin.NewRegistry(fnAnalyzer{
		id: "panics", priority: 1,
		applies: func(*model.ScanContext) bool { return true },
		scan:    func(*model.ScanContext) *model.ScanResult { panic("boom") },
	})
	require.NoError(t, err)

	run := NewDriver(reg).Run(context.Background(), Options{})
	assert.Equal(t, OutcomeFailed, run.OutcomeByID["panics"])
	assert.False(t, run.Results["panics"].Success)
}
