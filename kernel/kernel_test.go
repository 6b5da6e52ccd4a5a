package kernel

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/archlens/fileindex"
	"github.com/viant/archlens/model"
)

func TestThreeTierTier1Success(t *testing.T) {
	stats := model.NewScanStatistics()
	findings, confidence, ok := ThreeTier(stats, "a.go",
		func() ([]string, error) { return []string{"ok"}, nil },
		nil,
	)
	assert.True(t, ok)
	assert.Equal(t, model.HIGH, confidence)
	assert.Equal(t, []string{"ok"}, findings)
	assert.Equal(t, 1, stats.ParsedSuccessfully)
}

func TestThreeTierFallsBackToTier2(t *testing.T) {
	stats := model.NewScanStatistics()
	findings, confidence, ok := ThreeTier(stats, "a.rb",
		func() ([]string, error) { return nil, errors.New("no grammar") },
		func() ([]string, error) { return []string{"regex-found"}, nil },
	)
	assert.True(t, ok)
	assert.Equal(t, model.MEDIUM, confidence)
	assert.Equal(t, []string{"regex-found"}, findings)
	assert.Equal(t, 1, stats.ParsedWithFallback)
}

func TestThreeTierFailsToTier3(t *testing.T) {
	stats := model.NewScanStatistics()
	_, confidence, ok := ThreeTier(stats, "a.rb",
		func() ([]string, error) { return nil, errors.New("broken") },
		func() ([]string, error) { return nil, errors.New("also broken") },
	)
	assert.False(t, ok)
	assert.Equal(t, model.LOW, confidence)
	assert.Equal(t, 1, stats.Failed)
	assert.Equal(t, []string{"also broken"}, stats.TopErrors())
}

func TestThreeTierNoTier2SkipsToTier3(t *testing.T) {
	stats := model.NewScanStatistics()
	_, _, ok := ThreeTier(stats, "a.rb",
		func() ([]string, error) { return nil, errors.New("broken") },
		nil,
	)
	assert.False(t, ok)
	assert.Equal(t, 1, stats.Failed)
}

func TestThreeTierPanicDowngrades(t *testing.T) {
	stats := model.NewScanStatistics()
	_, confidence, ok := ThreeTier(stats, "a.go",
		func() ([]string, error) { panic("boom") },
		func() ([]string, error) { return []string{"fallback"}, nil },
	)
	assert.True(t, ok)
	assert.Equal(t, model.MEDIUM, confidence)
}

func TestParallelismDefaultsToConfigOverride(t *testing.T) {
	ctx := model.NewScanContext(".", nil, map[string]any{"parallelism": 3}, nil)
	assert.Equal(t, 3, Parallelism(ctx))
}

func TestParallelismDefaultsToCappedNumCPU(t *testing.T) {
	ctx := model.NewScanContext(".", nil, nil, nil)
	n := Parallelism(ctx)
	assert.GreaterOrEqual(t, n, 1)
	assert.LessOrEqual(t, n, 8)
}

func TestReadAllParallelIsIndexAligned(t *testing.T) {
	root := t.TempDir()
	names := []string{"a.txt", "b.txt", "c.txt"}
	var paths []string
	for i, name := range names {
		full := filepath.Join(root, name)
		require.NoError(t, os.WriteFile(full, []byte{byte('A' + i)}, 0o644))
		paths = append(paths, full)
	}

	base := NewBase(fileindex.New())
	contents, errs := base.ReadAllParallel(context.Background(), paths, 2)

	require.Len(t, contents, 3)
	require.Len(t, errs, 3)
	for i := range names {
		assert.NoError(t, errs[i])
		assert.Equal(t, string(rune('A'+i)), string(contents[i]))
	}
}

func TestReadAllParallelReportsPerFileError(t *testing.T) {
	base := NewBase(fileindex.New())
	contents, errs := base.ReadAllParallel(context.Background(), []string{"does-not-exist.txt"}, 2)
	require.Len(t, errs, 1)
	assert.Error(t, errs[0])
	assert.Nil(t, contents[0])
}

func TestPreFilterStages(t *testing.T) {
	f := PreFilter{
		FilenamePatterns:     []string{"*.java"},
		StrictPathSubstrings: []string{"/test/"},
		ContentMarkers:       []string{"@RestController"},
	}

	assert.True(t, f.Matches("src/main/Orders.java", nil))
	assert.False(t, f.Matches("src/test/Orders.java", nil))
	assert.True(t, f.Matches("src/test/Orders.java", []byte("@RestController\nclass Orders {}")))
	assert.False(t, f.Matches("src/main/Orders.txt", nil))
}
