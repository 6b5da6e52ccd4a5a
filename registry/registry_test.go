package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archlens/fileindex"
)

func TestBuildHasNoDuplicateIDs(t *testing.T) {
	idx := fileindex.New()
	reg, err := Build(idx)
	assert.NoError(t, err)
	assert.Len(t, reg.IDs(), 20)
}

func TestBuildOrdersByPriorityDescThenIDAsc(t *testing.T) {
	idx := fileindex.New()
	reg, err := Build(idx)
	assert.NoError(t, err)

	all := reg.All()
	for i := 1; i < len(all); i++ {
		prev, cur := all[i-1].Identity(), all[i].Identity()
		if prev.Priority == cur.Priority {
			assert.LessOrEqual(t, prev.ID, cur.ID)
		} else {
			assert.Greater(t, prev.Priority, cur.Priority)
		}
	}
}
