package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
)

type snapshotService struct {
	BaseService
	snapshotRepo portsrepo.SnapshotReader
}

// NewSnapshotService creates a snapshot service. A nil feed falls back to an
// in-process feed, which only sees writes made through this process.
func NewSnapshotService(repo portsrepo.SnapshotReader, feed changefeed.Feed) portssvc.SnapshotSvcFacade {
	if feed == nil {
		feed = changefeed.NewMemoryFeed()
	}
	return &snapshotService{
		BaseService:  BaseService{Feed: feed},
		snapshotRepo: repo,
	}
}

var _ portssvc.SnapshotSvcFacade = (*snapshotService)(nil)

func (s *snapshotService) LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	snapshot, err := s.snapshotRepo.LoadSnapshot(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load snapshot", slog.String("owner_id", ownerID))
		return domain.Snapshot{}, fmt.Errorf("failed to load snapshot: %w", err)
	}
	return snapshot, nil
}

func (s *snapshotService) Subscribe(ctx context.Context, ownerID string, onSnapshot func(domain.Snapshot)) (func(), error) {
	if onSnapshot == nil {
		return nil, errors.New("snapshot callback is required")
	}

	// Subscribe before the first load so no change slips between the two.
	events, stopFeed := s.Feed.Subscribe(ownerID)
	initial, err := s.LoadSnapshot(ctx, ownerID)
	if err != nil {
		stopFeed()
		return nil, err
	}

	subCtx, cancel := context.WithCancel(ctx)
	go func() {
		defer stopFeed()
		onSnapshot(initial)
		for {
			select {
			case <-subCtx.Done():
				return
			case _, ok := <-events:
				if !ok {
					return
				}
				snapshot, err := s.LoadSnapshot(subCtx, ownerID)
				if subCtx.Err() != nil {
					return
				}
				if err != nil {
					continue
				}
				onSnapshot(snapshot)
			}
		}
	}()

	s.LogDebug(ctx, "Snapshot subscription started", slog.String("owner_id", ownerID))
	var once sync.Once
	return func() { once.Do(cancel) }, nil
}
