package services

import (
	"encoding/json"
	"log"

	"burgerpos/pkg/rabbitmq"
)

const (
	orderCreatedRoutingKey = "order.created"
	orderDeletedRoutingKey = "order.deleted"
)

// EventPublisher delivers domain events to a message broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// publishEvent sends an event if a publisher is configured. Failures are logged and never
// fail the operation that produced the event.
func publishEvent(publisher EventPublisher, routingKey string, event rabbitmq.OrderEvent) {
	if publisher == nil {
		log.Printf("Event publisher is not configured. Skipping %s.", routingKey)
		return
	}
	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := publisher.Publish(rabbitmq.OrderExchange, routingKey, body); err != nil {
		log.Printf("Warning: Failed to publish %s event: %v", routingKey, err)
		return
	}
	log.Printf("Published %s event", routingKey)
}
