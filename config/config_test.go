package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
project:
  name: orders-platform
  version: "1.2.0"
repositories:
  - name: orders-service
    path: ./orders-service
  - name: payments-service
    path: ./payments-service
scanners:
  mode: EXPLICIT
  enabled: [maven-deps, gomod-deps]
`

func TestParseDefaultsModeToAuto(t *testing.T) {
	cfg, err := Parse([]byte(`project: { name: demo }`))
	require.NoError(t, err)
	assert.Equal(t, "AUTO", cfg.Scanners.Mode)
}

func TestParseValid(t *testing.T) {
	cfg, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, "orders-platform", cfg.Project.Name)
	assert.Len(t, cfg.Repositories, 2)
	assert.Equal(t, "EXPLICIT", cfg.Scanners.Mode)
}

func TestParseRejectsMissingProjectName(t *testing.T) {
	_, err := Parse([]byte(`project: { version: "1.0" }`))
	assert.Error(t, err)
}

func TestParseRejectsDuplicateRepositoryNames(t *testing.T) {
	_, err := Parse([]byte(`
project: { name: demo }
repositories:
  - name: a
    path: ./a
  - name: a
    path: ./b
`))
	assert.Error(t, err)
}

func TestParseRejectsUnknownMode(t *testing.T) {
	_, err := Parse([]byte(`
project: { name: demo }
scanners: { mode: BOGUS }
`))
	assert.Error(t, err)
}
