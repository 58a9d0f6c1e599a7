package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BudgetSvcFacade manages monthly budgets. Writes publish a change event.
type BudgetSvcFacade interface {
	SetBudget(ctx context.Context, ownerID string, month domain.MonthKey, limit decimal.Decimal) (*domain.Budget, error)
	ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
	DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error
}
