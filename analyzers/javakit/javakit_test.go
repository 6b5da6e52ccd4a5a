package javakit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleSource = `
package com.example.orders;

@RestController
@RequestMapping("/orders")
public class OrderController {

    @GetMapping("/{id}")
    public Order getOrder(@PathVariable String id) {
        return null;
    }

    @PostMapping
    public Order createOrder() {
        return null;
    }
}
`

const entitySource = `
package com.example.orders;

@Entity
@Table(name = "orders")
public class Order {

    @Id
    @GeneratedValue
    private Long id;

    @Column(name = "customer_name")
    private String customerName;
}
`

func TestParseClassAndMethodAnnotations(t *testing.T) {
	classes, err := Parse([]byte(sampleSource))
	require.NoError(t, err)
	require.Len(t, classes, 1)

	class := classes[0]
	assert.Equal(t, "OrderController", class.Name)
	assert.True(t, HasAnnotation(class.Annotations, "RestController"))

	mapping, ok := FindAnnotation(class.Annotations, "RequestMapping")
	require.True(t, ok)
	require.Len(t, mapping.Args, 1)
	assert.Equal(t, "/orders", mapping.Args[0])

	require.Len(t, class.Methods, 2)
	get := class.Methods[0]
	assert.Equal(t, "getOrder", get.Name)
	getMapping, ok := FindAnnotation(get.Annotations, "GetMapping")
	require.True(t, ok)
	require.Len(t, getMapping.Args, 1)
	assert.Equal(t, "/{id}", getMapping.Args[0])

	post := class.Methods[1]
	assert.Equal(t, "createOrder", post.Name)
	assert.True(t, HasAnnotation(post.Annotations, "PostMapping"))
}

func TestFindAnnotationMissing(t *testing.T) {
	_, ok := FindAnnotation(nil, "Missing")
	assert.False(t, ok)
}

func TestParseEntityFields(t *testing.T) {
	classes, err := Parse([]byte(entitySource))
	require.NoError(t, err)
	require.Len(t, classes, 1)

	class := classes[0]
	assert.True(t, HasAnnotation(class.Annotations, "Entity"))

	table, ok := FindAnnotation(class.Annotations, "Table")
	require.True(t, ok)
	require.Len(t, table.Args, 1)
	assert.Equal(t, "orders", table.Args[0])

	require.Len(t, class.Fields, 2)
	assert.Equal(t, "id", class.Fields[0].Name)
	assert.Equal(t, "Long", class.Fields[0].Type)
	assert.True(t, HasAnnotation(class.Fields[0].Annotations, "Id"))

	assert.Equal(t, "customerName", class.Fields[1].Name)
	column, ok := FindAnnotation(class.Fields[1].Annotations, "Column")
	require.True(t, ok)
	require.Len(t, column.Args, 1)
	assert.Equal(t, "customer_name", column.Args[0])
}
