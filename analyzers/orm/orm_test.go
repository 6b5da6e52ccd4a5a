package orm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSqlAlchemyColumnRegex(t *testing.T) {
	match := sqlAlchemyColumn.FindStringSubmatch("    id = Column(Integer, primary_key=True)")
	require.NotNil(t, match)
	assert.Equal(t, "id", match[1])
	assert.True(t, sqlAlchemyPrimaryKey.MatchString(match[2]))

	typeMatch := sqlAlchemyColumnType.FindStringSubmatch(match[2])
	require.NotNil(t, typeMatch)
	assert.Equal(t, "Integer", typeMatch[1])
}

func TestSqlAlchemyTableNameRegex(t *testing.T) {
	match := sqlAlchemyTableName.FindStringSubmatch(`__tablename__ = "orders"`)
	require.NotNil(t, match)
	assert.Equal(t, "orders", match[1])
}

func TestAssociatedEntityName(t *testing.T) {
	assert.Equal(t, "Order", associatedEntityName("List<Order>"))
	assert.Equal(t, "Order", associatedEntityName("Order"))
	assert.Equal(t, "Order", associatedEntityName("Set<Order>"))
}
