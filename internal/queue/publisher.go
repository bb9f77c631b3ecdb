package queue

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Queue names for the shop's domain events.
const (
	RentalReturnedQueue = "rental.returned"
	BillIssuedQueue     = "bill.issued"
)

// Publisher publishes domain events to RabbitMQ.  Each publish
// dials a fresh connection, declares the durable queue and sends a
// persistent message; errors are logged and returned so callers
// can ignore them without interrupting the request flow.
type Publisher struct {
	url string
}

// NewPublisher returns a Publisher for the given AMQP URL.
func NewPublisher(url string) *Publisher { return &Publisher{url: url} }

// PublishRentalReturned sends a RentalReturnedEvent to the
// rental.returned queue.
func (p *Publisher) PublishRentalReturned(ctx context.Context, ev RentalReturnedEvent) error {
	return p.publish(ctx, RentalReturnedQueue, ev)
}

// PublishBillIssued sends a BillIssuedEvent to the bill.issued
// queue.
func (p *Publisher) PublishBillIssued(ctx context.Context, ev BillIssuedEvent) error {
	return p.publish(ctx, BillIssuedQueue, ev)
}

func (p *Publisher) publish(ctx context.Context, queueName string, ev any) error {
	conn, err := amqp.Dial(p.url)
	if err != nil {
		log.Printf("rabbitmq: dial failed: %v", err)
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		log.Printf("rabbitmq: channel open failed: %v", err)
		return err
	}
	defer func() { _ = ch.Close() }()

	// Idempotent declare; durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		log.Printf("rabbitmq: queue declare failed: %v", err)
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("rabbitmq: marshal event failed: %v", err)
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	if err := ch.PublishWithContext(ctx, "", queueName, false, false, pub); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}
	return nil
}
