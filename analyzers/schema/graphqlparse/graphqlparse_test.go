package graphqlparse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSchema = `
# Root query type
type Query {
  order(id: ID!): Order
  orders: [Order!]!
}

type Order {
  id: ID!
  customerName: String
  total: Float!
}

input CreateOrderInput {
  customerName: String!
}

enum OrderStatus {
  PENDING
  SHIPPED
}
`

func TestParseTypesAndFields(t *testing.T) {
	defs := Parse(sampleSchema)
	require.Len(t, defs, 4)

	byName := map[string]Definition{}
	for _, d := range defs {
		byName[d.Name] = d
	}

	order := byName["Order"]
	assert.Equal(t, DefType, order.Kind)
	require.Len(t, order.Fields, 3)
	assert.Equal(t, "id", order.Fields[0].Name)
	assert.Equal(t, "ID", order.Fields[0].Type)
	assert.False(t, order.Fields[0].Nullable)
	assert.Equal(t, "customerName", order.Fields[1].Name)
	assert.True(t, order.Fields[1].Nullable)

	query := byName["Query"]
	require.Len(t, query.Fields, 2)
	assert.Equal(t, "order", query.Fields[0].Name)
	require.Len(t, query.Fields[0].Args, 1)
	assert.Equal(t, "id", query.Fields[0].Args[0].Name)
	assert.Equal(t, "ID", query.Fields[0].Args[0].Type)
	assert.Equal(t, "orders", query.Fields[1].Name)
	assert.Equal(t, KindList, query.Fields[1].Kind)

	input := byName["CreateOrderInput"]
	assert.Equal(t, DefInput, input.Kind)
	require.Len(t, input.Fields, 1)

	enum := byName["OrderStatus"]
	assert.Equal(t, DefEnum, enum.Kind)
	require.Len(t, enum.Fields, 2)
	assert.Equal(t, "PENDING", enum.Fields[0].Name)
}
