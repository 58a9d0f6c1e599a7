// posthog_client.go wraps posthog.Client so callers need not check whether analytics is configured.
package utils

import (
	"log/slog"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/posthog/posthog-go"
)

// DefaultPosthogEndpoint is used when no endpoint is configured.
const DefaultPosthogEndpoint = "https://eu.i.posthog.com"

// PosthogClientWrapper is a nil-safe analytics client.
type PosthogClientWrapper struct {
	posthogClient posthog.Client
	logger        *slog.Logger
}

// InitializePosthogClient returns a wrapper that drops events when apiKey is empty.
func InitializePosthogClient(apiKey, endpoint string, logger *slog.Logger) *PosthogClientWrapper {
	if apiKey == "" {
		logger.Warn("Posthog API key is empty, analytics disabled")
		return &PosthogClientWrapper{logger: logger}
	}
	if endpoint == "" {
		endpoint = DefaultPosthogEndpoint
	}
	client, err := posthog.NewWithConfig(apiKey, posthog.Config{Endpoint: endpoint})
	if err != nil {
		logger.Error("Failed to initialize posthog client, analytics disabled", slog.String("error", err.Error()))
		return &PosthogClientWrapper{logger: logger}
	}
	logger.Info("Posthog client initialized", slog.String("endpoint", endpoint))
	return &PosthogClientWrapper{posthogClient: client, logger: logger}
}

func (w *PosthogClientWrapper) IsInitialized() bool {
	return w != nil && w.posthogClient != nil
}

// Enqueue captures an event for distinctID. It is a no-op when analytics is disabled.
func (w *PosthogClientWrapper) Enqueue(distinctID string, event string, properties map[string]any) {
	if !w.IsInitialized() {
		return
	}
	if w.logger != nil {
		w.logger.Debug("Enqueueing analytics event", slog.String("distinct_id", distinctID), slog.String("event", event))
	}
	if err := w.posthogClient.Enqueue(posthog.Capture{
		DistinctId: distinctID,
		Event:      event,
		Properties: properties,
	}); err != nil && w.logger != nil {
		w.logger.Warn("Failed to enqueue analytics event", slog.String("event", event), slog.String("error", err.Error()))
	}
}

func (w *PosthogClientWrapper) Close() {
	if !w.IsInitialized() {
		return
	}
	w.posthogClient.Close()
}

// AuthObserver returns a callback that records identity changes as analytics events.
func (w *PosthogClientWrapper) AuthObserver() func(domain.AuthEvent) {
	return func(e domain.AuthEvent) {
		w.Enqueue(e.UserID, "auth_"+string(e.Type), map[string]any{"at": e.At})
	}
}
