package restapi

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJoinPath(t *testing.T) {
	assert.Equal(t, "/orders/{id}", joinPath("/orders", "/{id}"))
	assert.Equal(t, "/orders/{id}", joinPath("/orders", "{id}"))
	assert.Equal(t, "/orders", joinPath("/orders", ""))
	assert.Equal(t, "/", joinPath("", ""))
}

func TestSpringEndpoint(t *testing.T) {
	method, path, ok := springEndpoint(nil)
	assert.False(t, ok)
	assert.Empty(t, method)
	assert.Empty(t, path)
}

func TestParseGoRoutes(t *testing.T) {
	src := []byte(`package orders

func register(r *gin.Engine) {
	r.GET("/orders", listOrders)
	r.POST("/orders", createOrder)
	mux.HandleFunc("/healthz", healthz)
}
`)
	result, err := parseGoRoutes(src)
	assert.NoError(t, err)
	assert.Equal(t, "orders", result.packageName)
	assert.Len(t, result.routes, 3)
	assert.Equal(t, "GET", result.routes[0].method)
	assert.Equal(t, "/orders", result.routes[0].path)
	assert.Equal(t, "ANY", result.routes[2].method)
}

func TestParseGoRoutesMalformed(t *testing.T) {
	_, err := parseGoRoutes([]byte(`package orders

func broken( {
`))
	assert.Error(t, err)
}

func TestRegexGoRoutes(t *testing.T) {
	result := regexGoRoutes([]byte(`package orders

func register(r *gin.Engine) {
	r.GET("/orders", listOrders)
}
`))
	assert.Equal(t, "orders", result.packageName)
	require.Len(t, result.routes, 1)
	assert.Equal(t, "GET", result.routes[0].method)
	assert.Equal(t, "/orders", result.routes[0].path)
}

func TestParseRailsController(t *testing.T) {
	lines := []string{
		"class OrdersController < ApplicationController",
		"  def index",
		"  end",
		"",
		"  def show",
		"  end",
		"",
		"  def create",
		"  end",
		"end",
	}
	className, resourcePath, actions := parseRailsController(lines)
	assert.Equal(t, "OrdersController", className)
	assert.Equal(t, "orders", resourcePath)
	assert.Equal(t, []string{"index", "show", "create"}, actions)
}

func TestParseAspNetController(t *testing.T) {
	lines := []string{
		`[Route("api/[controller]")]`,
		"public class OrdersController : ControllerBase",
		"{",
		`    [HttpGet("{id}")]`,
		"    public Order GetOrder(int id)",
		"    {",
		"        return null;",
		"    }",
		"}",
	}
	className, basePath, endpoints := parseAspNetController(lines)
	assert.Equal(t, "OrdersController", className)
	assert.Equal(t, "api/Orders", basePath)
	if assert.Len(t, endpoints, 1) {
		assert.Equal(t, "GET", endpoints[0].Method)
		assert.Equal(t, "{id}", endpoints[0].Path)
		assert.Equal(t, "GetOrder", endpoints[0].Handler)
	}
}

func TestFastAPIEndpoint(t *testing.T) {
	_, _, ok := fastAPIEndpoint(nil)
	assert.False(t, ok)
}
