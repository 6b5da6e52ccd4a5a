package sqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCreateTable(t *testing.T) {
	src := `
CREATE TABLE orders (
    id BIGINT NOT NULL,
    customer_name VARCHAR(255),
    total NUMERIC(10,2) NOT NULL,
    PRIMARY KEY (id)
);

CREATE INDEX idx_orders_customer ON orders (customer_name);
`
	tables := Parse(src)
	require.Len(t, tables, 1)

	orders := tables[0]
	assert.Equal(t, "orders", orders.Name)
	assert.Equal(t, "id", orders.PrimaryKey)
	require.Len(t, orders.Columns, 3)
	assert.Equal(t, "id", orders.Columns[0].Name)
	assert.False(t, orders.Columns[0].Nullable)
	assert.Equal(t, "customer_name", orders.Columns[1].Name)
	assert.True(t, orders.Columns[1].Nullable)
	assert.Equal(t, "total", orders.Columns[2].Name)
	assert.Equal(t, "NUMERIC(10,2)", orders.Columns[2].Type)
}

func TestParseCreateTableInlinePrimaryKey(t *testing.T) {
	src := `CREATE TABLE IF NOT EXISTS users (id BIGINT PRIMARY KEY, email VARCHAR(255) NOT NULL);`
	tables := Parse(src)
	require.Len(t, tables, 1)
	assert.Equal(t, "users", tables[0].Name)
	assert.Equal(t, "id", tables[0].PrimaryKey)
}
