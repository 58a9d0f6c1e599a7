package changefeed

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPFeed shares events between instances through a fanout exchange. Each
// instance consumes from its own exclusive, auto-deleted queue.
type AMQPFeed struct {
	conn     *amqp091.Connection
	publish  *amqp091.Channel
	consume  *amqp091.Channel
	exchange string
	queue    string
	hub      *hub
	logger   *slog.Logger
	mu       sync.Mutex // guards publish
}

// NewAMQPFeed dials url and declares the exchange and this instance's queue.
func NewAMQPFeed(url, exchange string, logger *slog.Logger) (*AMQPFeed, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	feed := &AMQPFeed{conn: conn, exchange: exchange, hub: newHub(), logger: logger}
	if err := feed.setup(); err != nil {
		feed.Close()
		return nil, fmt.Errorf("setup change feed exchange: %w", err)
	}
	logger.Info("Connected to AMQP change feed", slog.String("exchange", exchange), slog.String("queue", feed.queue))
	return feed, nil
}

func (f *AMQPFeed) setup() error {
	var err error
	if f.publish, err = f.conn.Channel(); err != nil {
		return fmt.Errorf("open publish channel: %w", err)
	}
	if f.consume, err = f.conn.Channel(); err != nil {
		return fmt.Errorf("open consume channel: %w", err)
	}

	err = f.publish.ExchangeDeclare(
		f.exchange, // name
		"fanout",   // type
		true,       // durable
		false,      // auto-deleted
		false,      // internal
		false,      // no-wait
		nil,        // arguments
	)
	if err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}

	q, err := f.consume.QueueDeclare(
		"",    // server-named
		false, // durable
		true,  // delete when unused
		true,  // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	f.queue = q.Name

	if err := f.consume.QueueBind(f.queue, "", f.exchange, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

func (f *AMQPFeed) Publish(ctx context.Context, event Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	f.mu.Lock()
	defer f.mu.Unlock()
	err = f.publish.PublishWithContext(
		ctx,
		f.exchange, // exchange
		"",         // routing key, ignored by fanout
		false,      // mandatory
		false,      // immediate
		amqp091.Publishing{
			ContentType: "application/json",
			Timestamp:   event.At,
			Body:        body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

func (f *AMQPFeed) Subscribe(ownerID string) (<-chan Event, func()) {
	return f.hub.subscribe(ownerID)
}

// Run consumes this instance's queue and relays events to local subscribers.
func (f *AMQPFeed) Run(ctx context.Context) error {
	deliveries, err := f.consume.Consume(
		f.queue, // queue
		"",      // consumer
		true,    // auto-ack
		true,    // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	f.logger.Info("Listening for change events", slog.String("queue", f.queue))
	return relay(ctx, f.hub, f.logger, deliveries, amqpBody, "AMQP delivery channel")
}

func amqpBody(d amqp091.Delivery) []byte {
	return d.Body
}

func (f *AMQPFeed) Close() error {
	f.hub.close()
	if f.consume != nil {
		f.consume.Close()
	}
	if f.publish != nil {
		f.publish.Close()
	}
	if f.conn != nil {
		return f.conn.Close()
	}
	return nil
}
