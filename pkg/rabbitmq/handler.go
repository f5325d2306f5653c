package rabbitmq

import (
	"encoding/json"
	"fmt"
	"log"

	amqp "github.com/streadway/amqp"
)

// OrderEvent is the payload published for order.created and order.deleted.
type OrderEvent struct {
	OrderID       string `json:"orderID"`
	Total         string `json:"total,omitempty"`
	PaymentMethod string `json:"paymentMethod,omitempty"`
	Items         int    `json:"items,omitempty"`
}

// LogOrderEvent is a consumer handler that writes each order event to the log.
// Undecodable messages are rejected.
func LogOrderEvent(msg amqp.Delivery) error {
	var event OrderEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		return fmt.Errorf("malformed order event: %w", err)
	}
	if event.OrderID == "" {
		return fmt.Errorf("order event without orderID")
	}
	switch msg.RoutingKey {
	case "order.created":
		log.Printf("Order %s created: %d item(s), total %s via %s", event.OrderID, event.Items, event.Total, event.PaymentMethod)
	default:
		log.Printf("Order event %s for %s", msg.RoutingKey, event.OrderID)
	}
	return nil
}
