package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

type budgetService struct {
	BaseService
	budgetRepo portsrepo.BudgetRepositoryFacade
}

// BudgetServiceOption is a functional option for configuring the budget service
type BudgetServiceOption func(*budgetService)

// WithBudgetFeed publishes a change event after every successful write.
func WithBudgetFeed(feed changefeed.Feed) BudgetServiceOption {
	return func(s *budgetService) {
		s.Feed = feed
	}
}

func NewBudgetService(repo portsrepo.BudgetRepositoryFacade, options ...BudgetServiceOption) portssvc.BudgetSvcFacade {
	svc := &budgetService{budgetRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.BudgetSvcFacade = (*budgetService)(nil)

// SetBudget creates or replaces the limit for month. A zero limit is stored
// and reads back as "no budget".
func (s *budgetService) SetBudget(ctx context.Context, ownerID string, month domain.MonthKey, limit decimal.Decimal) (*domain.Budget, error) {
	budget := domain.Budget{
		OwnerID:       ownerID,
		Month:         month,
		Limit:         limit,
		LastUpdatedAt: nowUTC(),
	}
	if err := budget.Validate(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := s.budgetRepo.UpsertBudget(ctx, budget); err != nil {
		s.LogError(ctx, err, "Failed to upsert budget",
			slog.String("owner_id", ownerID),
			slog.String("month", month.String()))
		return nil, fmt.Errorf("failed to save budget: %w", err)
	}

	s.LogInfo(ctx, "Budget set",
		slog.String("owner_id", ownerID),
		slog.String("month", month.String()),
		slog.String("limit", limit.String()))
	s.PublishChange(ctx, ownerID, changefeed.CollectionBudgets)
	return &budget, nil
}

func (s *budgetService) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	budgets, err := s.budgetRepo.ListBudgets(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list budgets", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	return budgets, nil
}

func (s *budgetService) DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error {
	if !month.Valid() {
		return apperrors.NewBadRequestError("month must be formatted as YYYY-MM")
	}
	if err := s.budgetRepo.DeleteBudget(ctx, ownerID, month); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete budget",
			slog.String("owner_id", ownerID),
			slog.String("month", month.String()))
		return fmt.Errorf("failed to delete budget: %w", err)
	}
	s.PublishChange(ctx, ownerID, changefeed.CollectionBudgets)
	return nil
}
