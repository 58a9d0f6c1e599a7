package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// SetBudgetRequest sets the limit of the month named in the path.
type SetBudgetRequest struct {
	Limit *decimal.Decimal `json:"limit" binding:"required,gte=0"`
}

type BudgetResponse struct {
	Month         string          `json:"month"`
	Limit         decimal.Decimal `json:"limit"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

func ToBudgetResponse(b *domain.Budget) BudgetResponse {
	return BudgetResponse{
		Month:         string(b.Month),
		Limit:         b.Limit,
		LastUpdatedAt: b.LastUpdatedAt,
	}
}

type ListBudgetsResponse struct {
	Budgets []BudgetResponse `json:"budgets"`
}

func ToListBudgetsResponse(budgets []domain.Budget) ListBudgetsResponse {
	out := make([]BudgetResponse, len(budgets))
	for i := range budgets {
		out[i] = ToBudgetResponse(&budgets[i])
	}
	return ListBudgetsResponse{Budgets: out}
}
