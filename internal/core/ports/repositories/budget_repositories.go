package repositories

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// BudgetReader defines read operations for monthly budgets.
type BudgetReader interface {
	FindBudget(ctx context.Context, ownerID string, month domain.MonthKey) (*domain.Budget, error)
	ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error)
}

// BudgetWriter defines write operations for monthly budgets.
type BudgetWriter interface {
	// UpsertBudget creates or replaces the budget for (OwnerID, Month).
	UpsertBudget(ctx context.Context, budget domain.Budget) error
	DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error
}

// BudgetRepositoryFacade combines all budget repository interfaces.
type BudgetRepositoryFacade interface {
	BudgetReader
	BudgetWriter
}
