package notify

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const ordersExchange = "bakery.orders"

// OrderEvent is the payload published on every order lifecycle change.
type OrderEvent struct {
	OrderNo         string    `json:"order_no"`
	Event           string    `json:"event"` // "created", "status_changed"
	FulfillmentType string    `json:"fulfillment_type"`
	OldStatus       string    `json:"old_status,omitempty"`
	NewStatus       string    `json:"new_status"`
	Total           float64   `json:"total,omitempty"`
	OccurredAt      time.Time `json:"occurred_at"`
}

// EventPublisher pushes order events to a RabbitMQ topic exchange so
// dashboards and the notification side can react. A nil publisher is a
// no-op, used when no broker is configured.
type EventPublisher struct {
	conn *amqp.Connection
}

func NewEventPublisher(url string) *EventPublisher {
	if url == "" {
		log.Println("AMQP not configured, order events will not be published")
		return nil
	}
	conn, err := amqp.Dial(url)
	if err != nil {
		log.Printf("Warning: AMQP connection failed, order events disabled: %v", err)
		return nil
	}
	return &EventPublisher{conn: conn}
}

// Publish sends the event with routing key order.<event>.<fulfillment>.
// Failures are logged, never propagated to the request path.
func (p *EventPublisher) Publish(event OrderEvent) {
	if p == nil {
		return
	}
	event.OccurredAt = time.Now()

	ch, err := p.conn.Channel()
	if err != nil {
		log.Printf("Failed to open AMQP channel: %v", err)
		return
	}
	defer ch.Close()

	if err := ch.ExchangeDeclare(ordersExchange, "topic", true, false, false, false, nil); err != nil {
		log.Printf("Failed to declare exchange: %v", err)
		return
	}

	body, err := json.Marshal(event)
	if err != nil {
		log.Printf("Failed to marshal order event: %v", err)
		return
	}

	routingKey := fmt.Sprintf("order.%s.%s", event.Event, event.FulfillmentType)
	err = ch.Publish(ordersExchange, routingKey, false, false, amqp.Publishing{
		DeliveryMode: amqp.Persistent,
		ContentType:  "application/json",
		Body:         body,
	})
	if err != nil {
		log.Printf("Failed to publish order event %s: %v", routingKey, err)
	}
}

func (p *EventPublisher) Close() {
	if p == nil || p.conn == nil {
		return
	}
	_ = p.conn.Close()
}
