package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComponentIDStable(t *testing.T) {
	a := ComponentID("svc/orders")
	b := ComponentID("svc/orders")
	c := ComponentID("svc/payments")
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Len(t, a, 16)
}

func TestSemanticKeys(t *testing.T) {
	dep := Dependency{SourceComponentID: "svc", GroupID: "org.springframework", ArtifactID: "spring-web", Version: "6.1.0"}
	assert.Equal(t, "svc|org.springframework|spring-web|6.1.0", dep.SemanticKey())

	ep := ApiEndpoint{ComponentID: "svc", Method: "GET", Path: "/orders/{id}"}
	assert.Equal(t, "svc|GET|/orders/{id}", ep.SemanticKey())

	entity := DataEntity{ComponentID: "svc", Name: "Order"}
	assert.Equal(t, "svc|Order", entity.SemanticKey())

	flow := MessageFlow{Topic: "orders.created", PublisherComponentID: "svc-a", SubscriberComponentID: "svc-b"}
	assert.Equal(t, "orders.created|svc-a|svc-b", flow.SemanticKey())

	rel := Relationship{SourceID: "svc-a", TargetID: "svc-b", Kind: RelDependsOn}
	assert.Equal(t, "svc-a|svc-b|DEPENDS_ON", rel.SemanticKey())
}

func TestScanStatisticsTopErrors(t *testing.T) {
	stats := NewScanStatistics()
	stats.RecordFailure(ErrorParse, "unexpected token")
	stats.RecordFailure(ErrorParse, "unexpected token")
	stats.RecordFailure(ErrorIO, "permission denied")

	top := stats.TopErrors()
	assert.Equal(t, []string{"unexpected token", "permission denied"}, top)
	assert.Equal(t, 2, stats.ErrorTypeCounts[ErrorParse])
	assert.Equal(t, 1, stats.ErrorTypeCounts[ErrorIO])
}
