package changefeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/redis/go-redis/v9"
)

// DefaultRedisChannel is the pub/sub channel shared by all instances.
const DefaultRedisChannel = "fintrack:changes"

// RedisFeed shares events between instances over Redis pub/sub. Local
// subscribers are served when the published event comes back from Redis, so
// every instance, including the publisher, observes the same stream.
type RedisFeed struct {
	client  *redis.Client
	channel string
	hub     *hub
	logger  *slog.Logger
}

// NewRedisFeed connects to addr and verifies the connection.
func NewRedisFeed(ctx context.Context, addr string, logger *slog.Logger) (*RedisFeed, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", addr, err)
	}
	logger.Info("Connected to Redis change feed", slog.String("addr", addr))
	return newRedisFeed(client, DefaultRedisChannel, logger), nil
}

func newRedisFeed(client *redis.Client, channel string, logger *slog.Logger) *RedisFeed {
	return &RedisFeed{client: client, channel: channel, hub: newHub(), logger: logger}
}

func (f *RedisFeed) Publish(ctx context.Context, event Event) error {
	body, err := encodeEvent(event)
	if err != nil {
		return err
	}
	if err := f.client.Publish(ctx, f.channel, body).Err(); err != nil {
		return fmt.Errorf("publish change event: %w", err)
	}
	return nil
}

func (f *RedisFeed) Subscribe(ownerID string) (<-chan Event, func()) {
	return f.hub.subscribe(ownerID)
}

// Run relays messages from the Redis channel to local subscribers.
func (f *RedisFeed) Run(ctx context.Context) error {
	pubsub := f.client.Subscribe(ctx, f.channel)
	defer pubsub.Close()

	if _, err := pubsub.Receive(ctx); err != nil {
		return fmt.Errorf("subscribe to %s: %w", f.channel, err)
	}
	f.logger.Info("Listening for change events", slog.String("channel", f.channel))

	return relay(ctx, f.hub, f.logger, pubsub.Channel(), redisPayload, "redis subscription to "+f.channel)
}

func redisPayload(msg *redis.Message) []byte {
	return []byte(msg.Payload)
}

func (f *RedisFeed) Close() error {
	f.hub.close()
	return f.client.Close()
}
