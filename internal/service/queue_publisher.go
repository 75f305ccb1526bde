package service

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/iliyamo/fyyur/internal/queue"
)

// Publisher delivers listing events after a mutation has committed.
// Failures are reported but never undo the committed change.
type Publisher interface {
	Publish(ctx context.Context, ev queue.ListingEvent) error
}

// NopPublisher drops every event.  It is used when events are disabled.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, queue.ListingEvent) error { return nil }

// defaultDialTimeout bounds connecting and handshaking with the broker so
// an unreachable broker cannot stall the request that triggered the event.
const defaultDialTimeout = 2 * time.Second

// AMQPPublisher publishes listing events to the durable listings queue on
// the default exchange.  Messages are marked as persistent.
type AMQPPublisher struct {
	URL         string
	DialTimeout time.Duration // zero means defaultDialTimeout
}

// Publish dials the broker, declares the queue and publishes ev as JSON.
func (p AMQPPublisher) Publish(ctx context.Context, ev queue.ListingEvent) error {
	timeout := p.DialTimeout
	if timeout <= 0 {
		timeout = defaultDialTimeout
	}
	if dl, ok := ctx.Deadline(); ok && time.Until(dl) < timeout {
		timeout = time.Until(dl)
	}
	conn, err := amqp.DialConfig(p.URL, amqp.Config{
		Heartbeat: 10 * time.Second,
		Locale:    "en_US",
		Dial:      amqp.DefaultDial(timeout),
	})
	if err != nil {
		return err
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		return err
	}
	defer func() { _ = ch.Close() }()

	// Ensure the queue exists (idempotent). Durable so messages survive broker restarts.
	if _, err := ch.QueueDeclare(
		queue.ListingQueueName, // name
		true,                   // durable
		false,                  // autoDelete
		false,                  // exclusive
		false,                  // noWait
		nil,                    // args
	); err != nil {
		return err
	}

	body, err := json.Marshal(ev)
	if err != nil {
		return err
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}
	return ch.PublishWithContext(ctx, "", queue.ListingQueueName, false, false, pub)
}

// publish sends ev and logs a failure instead of returning it.
func (d *Directory) publish(ctx context.Context, ev queue.ListingEvent) {
	ev.OccurredAt = d.clock().UTC().Format(time.RFC3339)
	if err := d.events.Publish(ctx, ev); err != nil {
		d.log.Printf("publish %s id=%d failed: %v", ev.Kind, ev.ID, err)
	}
}
