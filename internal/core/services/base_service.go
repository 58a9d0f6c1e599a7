package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/middleware"
)

// BaseService carries the logging helpers and change feed shared by services.
type BaseService struct {
	Feed changefeed.Feed
}

// GetLogger returns the request-scoped logger for ctx.
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	return middleware.GetLoggerFromCtx(ctx)
}

// LogError logs err under msg with any extra attributes.
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// PublishChange announces a committed write for ownerID. Feed failures are
// logged, not returned.
func (s *BaseService) PublishChange(ctx context.Context, ownerID string, collection changefeed.Collection) {
	if s.Feed == nil {
		return
	}
	event := changefeed.Event{OwnerID: ownerID, Collection: collection, At: nowUTC()}
	if err := s.Feed.Publish(ctx, event); err != nil {
		s.LogError(ctx, err, "Failed to publish change event",
			slog.String("owner_id", ownerID),
			slog.String("collection", string(collection)))
	}
}

func nowUTC() time.Time {
	return time.Now().UTC()
}
