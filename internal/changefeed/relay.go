package changefeed

import (
	"context"
	"fmt"
	"log/slog"
)

// relay decodes transport messages from in and hands them to h until ctx is
// done. Malformed messages are logged and dropped. A closed in is an error
// because the feed can no longer observe other instances.
func relay[M any](ctx context.Context, h *hub, logger *slog.Logger, in <-chan M, body func(M) []byte, source string) error {
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-in:
			if !ok {
				return fmt.Errorf("%s closed", source)
			}
			deliver(h, logger, body(msg))
		}
	}
}

// deliver dispatches one encoded event and reports whether it was accepted.
func deliver(h *hub, logger *slog.Logger, body []byte) bool {
	event, err := decodeEvent(body)
	if err != nil {
		logger.Warn("Dropping malformed change event", slog.String("error", err.Error()))
		return false
	}
	h.dispatch(event)
	return true
}
