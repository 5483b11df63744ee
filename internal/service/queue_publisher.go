// Package queue_publisher provides functions to publish domain events to RabbitMQ.
// Errors are logged and returned to allow callers to ignore failures without
// interrupting the main request flow.
package queue_publisher

import (
	"context"
	"encoding/json"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	q "github.com/bsgholding/cms-backend/internal/queue"
)

// Publisher posts ContentChangedEvents to the content.changed queue. A nil
// Publisher (or one with an empty URL) publishes nothing, which is how the
// broker is disabled in deployments that do not run one.
type Publisher struct {
	URL string
}

func NewPublisher(url string) *Publisher {
	if url == "" {
		return nil
	}
	return &Publisher{URL: url}
}

// ContentChanged publishes the event, marking it persistent. The function
// never panics and never blocks the request for long: any error is logged
// and returned so callers can ignore it. The admin write has already been
// committed at this point; losing a notification only delays cache expiry.
func (p *Publisher) ContentChanged(ctx context.Context, ev q.ContentChangedEvent) error {
	if p == nil || p.URL == "" {
		return nil
	}
	if ev.At == "" {
		ev.At = time.Now().UTC().Format(time.RFC3339)
	}

	conn, err := amqp.Dial(p.URL)
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

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		q.ContentChangedQueue, // name
		true,                  // durable
		false,                 // autoDelete
		false,                 // exclusive
		false,                 // noWait
		nil,                   // args
	); err != nil {
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
		DeliveryMode: amqp.Persistent, // store on disk
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	if err := ch.PublishWithContext(ctx,
		"",                    // default exchange
		q.ContentChangedQueue, // routing key = queue name
		false,                 // mandatory
		false,                 // immediate
		pub,
	); err != nil {
		log.Printf("rabbitmq: publish failed: %v", err)
		return err
	}

	return nil
}
