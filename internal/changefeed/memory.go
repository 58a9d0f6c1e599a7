package changefeed

import (
	"context"
)

// MemoryFeed delivers events within a single process.
type MemoryFeed struct {
	hub *hub
}

// NewMemoryFeed creates a MemoryFeed.
func NewMemoryFeed() *MemoryFeed {
	return &MemoryFeed{hub: newHub()}
}

func (f *MemoryFeed) Publish(_ context.Context, event Event) error {
	f.hub.dispatch(event)
	return nil
}

func (f *MemoryFeed) Subscribe(ownerID string) (<-chan Event, func()) {
	return f.hub.subscribe(ownerID)
}

// Run has nothing to pump; it blocks until ctx is done.
func (f *MemoryFeed) Run(ctx context.Context) error {
	<-ctx.Done()
	return nil
}

func (f *MemoryFeed) Close() error {
	f.hub.close()
	return nil
}
