package postprocess

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archlens/model"
)

func TestEventTypeName(t *testing.T) {
	assert.Equal(t, "ProductEvent", eventTypeName("/api/products"))
	assert.Equal(t, "OrderEvent", eventTypeName("/orders"))
	assert.Equal(t, "", eventTypeName("/"))
}

func TestCollectionPath(t *testing.T) {
	assert.Equal(t, "/api/products", collectionPath("/api/products/{id}"))
	assert.Equal(t, "/api/products", collectionPath("/api/products"))
	assert.Equal(t, "/api/products", collectionPath("/api/products/:id"))
}

func TestIsEventPath(t *testing.T) {
	assert.True(t, isEventPath("/api/events/order-created"))
	assert.False(t, isEventPath("/api/products"))
}

func TestScanDerivesEventAndCrudFlows(t *testing.T) {
	springResult := model.BuildSuccessResult("spring-rest", nil, nil, []model.ApiEndpoint{
		{ComponentID: "order-service", Kind: model.KindREST, Method: "POST", Path: "/api/events/order-created", RequestSchema: "OrderCreatedEvent"},
		{ComponentID: "api-gateway", Kind: model.KindREST, Method: "POST", Path: "/api/products"},
		{ComponentID: "api-gateway", Kind: model.KindREST, Method: "GET", Path: "/api/products/{id}"},
	}, nil, nil, nil, nil, model.NewScanStatistics())

	ctx := model.NewScanContext("/repo", nil, nil, map[string]*model.ScanResult{"spring-rest": springResult})

	a := NewRestEventAnalyzer()
	assert.True(t, a.Applies(ctx))

	result := a.Scan(ctx)
	assert.True(t, result.Success)
	assert.Len(t, result.MessageFlows, 2)

	var eventFlow, crudFlow *model.MessageFlow
	for i := range result.MessageFlows {
		flow := result.MessageFlows[i]
		if flow.Broker == "rest-event" {
			eventFlow = &flow
		}
		if flow.Broker == "restful-crud" {
			crudFlow = &flow
		}
	}

	if assert.NotNil(t, eventFlow) {
		assert.Equal(t, "order-service", eventFlow.SubscriberComponentID)
		assert.Empty(t, eventFlow.PublisherComponentID)
		assert.Equal(t, "/api/events/order-created", eventFlow.Topic)
		assert.Equal(t, "OrderCreatedEvent", eventFlow.MessageType)
	}

	if assert.NotNil(t, crudFlow) {
		assert.Equal(t, "api-gateway", crudFlow.PublisherComponentID)
		assert.Equal(t, "api-gateway", crudFlow.SubscriberComponentID)
		assert.Equal(t, "/api/products", crudFlow.Topic)
		assert.Equal(t, "ProductEvent", crudFlow.MessageType)
	}
}

func TestAppliesFalseWithoutEndpoints(t *testing.T) {
	ctx := model.NewScanContext("/repo", nil, nil, nil)
	a := NewRestEventAnalyzer()
	assert.False(t, a.Applies(ctx))
}
