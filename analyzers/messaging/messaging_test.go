package messaging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/viant/archlens/analyzers/pykit"
)

func TestKafkaSendCall(t *testing.T) {
	match := kafkaSendCall.FindStringSubmatch(`kafkaTemplate.send("orders-topic", order.id, order);`)
	if assert.NotNil(t, match) {
		assert.Equal(t, "orders-topic", match[1])
	}

	assert.Nil(t, kafkaSendCall.FindStringSubmatch(`repository.save(order);`))
}

func TestParseSidekiqWorker(t *testing.T) {
	lines := []string{
		"class OrderWorker",
		"  include Sidekiq::Worker",
		"  sidekiq_options queue: :orders",
		"",
		"  def perform(order_id)",
		"  end",
		"end",
	}
	className, queue, hasWorker, hasPerform := parseSidekiqWorker(lines)
	assert.Equal(t, "OrderWorker", className)
	assert.Equal(t, "orders", queue)
	assert.True(t, hasWorker)
	assert.True(t, hasPerform)
}

func TestParseSidekiqWorkerMissingInclude(t *testing.T) {
	lines := []string{
		"class PlainOldRubyObject",
		"  def perform(order_id)",
		"  end",
		"end",
	}
	_, _, hasWorker, _ := parseSidekiqWorker(lines)
	assert.False(t, hasWorker)
}

func TestCeleryTaskDecorator(t *testing.T) {
	def := pykit.Def{
		Name:       "send_email",
		Decorators: []pykit.Decorator{{Name: "app.task", Args: []string{"emails"}}},
	}
	decorator, ok := celeryTaskDecorator(def)
	assert.True(t, ok)
	assert.Equal(t, "emails", firstCeleryArg(decorator))
}

func TestCeleryTaskDecoratorSharedTask(t *testing.T) {
	def := pykit.Def{Name: "reindex", Decorators: []pykit.Decorator{{Name: "shared_task"}}}
	decorator, ok := celeryTaskDecorator(def)
	assert.True(t, ok)
	assert.Empty(t, firstCeleryArg(decorator))
}

func TestCeleryTaskDecoratorNotFound(t *testing.T) {
	def := pykit.Def{Name: "helper", Decorators: []pykit.Decorator{{Name: "property"}}}
	_, ok := celeryTaskDecorator(def)
	assert.False(t, ok)
}
