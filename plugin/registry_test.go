package plugin

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/archlens/model"
)

type stubAnalyzer struct {
	id       string
	family   string
	priority int
}

func (s stubAnalyzer) Identity() Identity {
	return Identity{ID: s.id, Name: s.id, Family: s.family, Priority: s.priority}
}
func (s stubAnalyzer) Applies(*model.ScanContext) bool { return true }
func (s stubAnalyzer) Scan(*model.ScanContext) *model.ScanResult {
	return model.EmptyResult(s.id)
}

func TestRegistryOrdering(t *testing.T) {
	reg, err := NewRegistry(
		stubAnalyzer{id: "npm-deps", family: "Dependency", priority: 88},
		stubAnalyzer{id: "gomod-deps", family: "Dependency", priority: 90},
		stubAnalyzer{id: "maven-deps", family: "Dependency", priority: 90},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"gomod-deps", "maven-deps", "npm-deps"}, reg.IDs())
}

func TestRegistryDuplicateID(t *testing.T) {
	_, err := NewRegistry(
		stubAnalyzer{id: "dup", priority: 1},
		stubAnalyzer{id: "dup", priority: 2},
	)
	assert.ErrorIs(t, err, ErrDuplicateAnalyzerID)
}

func TestResolveExplicitUnknownID(t *testing.T) {
	reg, err := NewRegistry(stubAnalyzer{id: "maven-deps", priority: 90})
	require.NoError(t, err)

	sel := Resolve(reg, ModeExplicit, nil, []string{"maven-deps-typo"})
	assert.False(t, sel.Includes("maven-deps"))
	assert.Equal(t, []string{"maven-deps-typo"}, sel.Unknown)
}

func TestResolveGroups(t *testing.T) {
	reg, err := NewRegistry(
		stubAnalyzer{id: "maven-deps", family: "Dependency", priority: 90},
		stubAnalyzer{id: "spring-rest", family: "REST API", priority: 55},
	)
	require.NoError(t, err)

	sel := Resolve(reg, ModeGroups, []string{"Dependency"}, nil)
	assert.True(t, sel.Includes("maven-deps"))
	assert.False(t, sel.Includes("spring-rest"))
}

func TestMatchGlob(t *testing.T) {
	reg, err := NewRegistry(
		stubAnalyzer{id: "maven-deps", priority: 90},
		stubAnalyzer{id: "gomod-deps", priority: 90},
		stubAnalyzer{id: "npm-deps", priority: 88},
	)
	require.NoError(t, err)

	matched, err := reg.MatchGlob("*-deps")
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"maven-deps", "gomod-deps", "npm-deps"}, matched)
}
