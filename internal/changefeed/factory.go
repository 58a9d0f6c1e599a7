package changefeed

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack/internal/platform/config"
)

// New builds the feed selected by cfg.ChangeFeed.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (Feed, error) {
	switch cfg.ChangeFeed {
	case config.FeedRedis:
		return NewRedisFeed(ctx, cfg.RedisAddr, logger)
	case config.FeedAMQP:
		return NewAMQPFeed(cfg.AMQPURL, cfg.AMQPExchange, logger)
	case config.FeedMemory, "":
		return NewMemoryFeed(), nil
	default:
		return nil, fmt.Errorf("unknown change feed %q", cfg.ChangeFeed)
	}
}

var (
	_ Feed = (*MemoryFeed)(nil)
	_ Feed = (*RedisFeed)(nil)
	_ Feed = (*AMQPFeed)(nil)
)
