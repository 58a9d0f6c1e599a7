package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/aggregation"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
)

type dashboardService struct {
	BaseService
	snapshots portssvc.SnapshotSvcFacade
	engine    *aggregation.Engine
}

// DashboardServiceOption is a functional option for configuring the dashboard service
type DashboardServiceOption func(*dashboardService)

// WithEngine replaces the default aggregation engine.
func WithEngine(engine *aggregation.Engine) DashboardServiceOption {
	return func(s *dashboardService) {
		s.engine = engine
	}
}

func NewDashboardService(snapshots portssvc.SnapshotSvcFacade, options ...DashboardServiceOption) portssvc.DashboardSvc {
	svc := &dashboardService{
		snapshots: snapshots,
		engine:    aggregation.NewEngine(),
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.DashboardSvc = (*dashboardService)(nil)

func (s *dashboardService) GetDashboard(ctx context.Context, ownerID string, params domain.ViewParams) (*domain.ViewModel, error) {
	snapshot, err := s.snapshots.LoadSnapshot(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	vm := s.BuildView(snapshot, params)
	return &vm, nil
}

func (s *dashboardService) BuildView(snapshot domain.Snapshot, params domain.ViewParams) domain.ViewModel {
	return s.engine.Build(snapshot, params)
}
