package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAvroTypeName(t *testing.T) {
	assert.Equal(t, "long", avroTypeName("long"))
	assert.Equal(t, "string", avroTypeName([]any{"null", "string"}))
	assert.Equal(t, "", avroTypeName([]any{"null"}))
}

func TestAvroIsNullable(t *testing.T) {
	assert.True(t, avroIsNullable([]any{"null", "string"}))
	assert.False(t, avroIsNullable("string"))
}
