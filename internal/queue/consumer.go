package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/redis/go-redis/v9"

	"github.com/bsgholding/cms-backend/internal/middleware"
)

// StartContentConsumer connects to RabbitMQ, declares the content.changed
// queue (durable) and consumes change events. Each event purges the Redis
// response cache under cachePrefix so public list endpoints stop serving
// pre-change payloads. The function runs a reconnect loop with exponential
// backoff and returns only when ctx is cancelled; processing errors are
// logged and the offending message rejected so the server keeps operating.
func StartContentConsumer(ctx context.Context, url string, rdb *redis.Client, cachePrefix string) error {
	if url == "" || rdb == nil {
		return nil // broker or cache disabled, nothing to keep fresh
	}

	backoff := time.Second
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		conn, err := amqp.Dial(url)
		if err != nil {
			log.Printf("content-consumer: failed to dial broker: %v; retrying in %s", err, backoff)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
			if backoff < 30*time.Second {
				backoff *= 2
			}
			continue
		}
		backoff = time.Second // reset after successful connect

		if err := consumeLoop(ctx, conn, rdb, cachePrefix); err != nil {
			log.Printf("content-consumer: consume loop ended: %v; reconnecting", err)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(2 * time.Second):
			}
		}
	}
}

func consumeLoop(ctx context.Context, conn *amqp.Connection, rdb *redis.Client, cachePrefix string) error {
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return fmt.Errorf("channel open: %w", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.Qos(50, 0, false); err != nil {
		log.Printf("content-consumer: set QoS failed: %v", err)
	}

	if _, err := ch.QueueDeclare(ContentChangedQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("queue declare: %w", err)
	}

	msgs, err := ch.Consume(ContentChangedQueue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("queue consume: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case d, ok := <-msgs:
			if !ok {
				return errors.New("deliveries channel closed")
			}
			if err := handleMessage(ctx, d.Body, rdb, cachePrefix); err != nil {
				log.Printf("content-consumer: handle message failed: %v", err)
				_ = d.Nack(false, false) // reject, do not requeue to avoid tight loops
				continue
			}
			_ = d.Ack(false)
		}
	}
}

func handleMessage(ctx context.Context, body []byte, rdb *redis.Client, cachePrefix string) error {
	var ev ContentChangedEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return fmt.Errorf("unmarshal: %w", err)
	}
	if err := middleware.PurgePrefix(ctx, rdb, cachePrefix); err != nil {
		return fmt.Errorf("purge cache after %s %s/%d: %w", ev.Action, ev.Resource, ev.ID, err)
	}
	log.Printf("content-consumer: %s %s/%d by user %d; response cache purged", ev.Action, ev.Resource, ev.ID, ev.Actor)
	return nil
}
