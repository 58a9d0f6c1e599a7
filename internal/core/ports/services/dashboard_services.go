package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// DashboardSvc derives view models from owner snapshots.
type DashboardSvc interface {
	// GetDashboard loads a fresh snapshot and builds its view model.
	GetDashboard(ctx context.Context, ownerID string, params domain.ViewParams) (*domain.ViewModel, error)
	// BuildView runs the engine on an already loaded snapshot.
	BuildView(snapshot domain.Snapshot, params domain.ViewParams) domain.ViewModel
}

// SnapshotSvcFacade delivers full snapshots of an owner's data as it changes.
type SnapshotSvcFacade interface {
	// LoadSnapshot reads transactions and budgets together.
	LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error)
	// Subscribe calls onSnapshot with the current snapshot and again after
	// every change. Calls are serialized and bursts coalesce to the latest
	// state. Delivery stops when ctx is done or unsubscribe is called.
	Subscribe(ctx context.Context, ownerID string, onSnapshot func(domain.Snapshot)) (unsubscribe func(), err error)
}
