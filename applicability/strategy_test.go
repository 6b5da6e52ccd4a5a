package applicability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archlens/model"
)

func TestCombinators(t *testing.T) {
	ctx := model.NewScanContext("/does/not/matter", nil, nil, nil)

	assert.True(t, AlwaysApply(ctx))
	assert.False(t, NeverApply(ctx))
	assert.True(t, And(AlwaysApply, AlwaysApply)(ctx))
	assert.False(t, And(AlwaysApply, NeverApply)(ctx))
	assert.True(t, Or(NeverApply, AlwaysApply)(ctx))
	assert.False(t, Or(NeverApply, NeverApply)(ctx))
	assert.True(t, Not(NeverApply)(ctx))
}

func TestHasDependency(t *testing.T) {
	result := model.BuildSuccessResult("gomod-deps", nil,
		[]model.Dependency{{GroupID: "", ArtifactID: "github.com/spring-boot/starter", Version: "1.0"}},
		nil, nil, nil, nil, nil, nil)
	ctx := model.NewScanContext("/proj", nil, nil, map[string]*model.ScanResult{"gomod-deps": result})

	assert.True(t, HasDependency("spring-boot")(ctx))
	assert.False(t, HasDependency("kafka-clients")(ctx))
	assert.True(t, HasAnyDependency("kafka-clients", "spring-boot")(ctx))
}
