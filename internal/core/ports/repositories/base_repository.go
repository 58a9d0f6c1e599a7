package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// SnapshotReader loads everything the dashboard needs for one owner in a
// single consistent read.
type SnapshotReader interface {
	LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error)
}

// HealthChecker reports whether the backing store is reachable.
type HealthChecker interface {
	Ping(ctx context.Context) error
}
