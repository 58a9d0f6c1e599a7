package dto_test

import (
	"encoding/json"
	"testing"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDashboardResponse_NoBudgetOmitsNumbers(t *testing.T) {
	vm := &domain.ViewModel{
		TargetMonth:  "2024-02",
		BudgetStatus: domain.BudgetStatus{Month: "2024-02", State: domain.BudgetStateNotSet},
	}

	resp := dto.ToDashboardResponse(vm, "₹")
	raw, err := json.Marshal(resp.BudgetStatus)
	require.NoError(t, err)

	assert.JSONEq(t, `{"month":"2024-02","state":"NO_BUDGET_SET","isOverBudget":false}`, string(raw))
	assert.NotNil(t, resp.Insights)
}

func TestToDashboardResponse_FormatsAmounts(t *testing.T) {
	vm := &domain.ViewModel{
		Totals: domain.Totals{
			Income:  decimal.NewFromInt(500),
			Expense: decimal.NewFromInt(100),
			Balance: decimal.NewFromInt(400),
		},
		BudgetStatus: domain.BudgetStatus{
			Month:         "2024-01",
			State:         domain.BudgetStateSet,
			Limit:         decimal.NewFromInt(1000),
			Spent:         decimal.NewFromInt(1200),
			Overage:       decimal.NewFromInt(200),
			Percentage:    decimal.NewFromInt(100),
			RawPercentage: decimal.NewFromInt(120),
			IsOverBudget:  true,
			Tier:          domain.TierOverBudget,
		},
	}

	resp := dto.ToDashboardResponse(vm, "₹")

	assert.Equal(t, "₹400.00", resp.Totals.Balance.Formatted)
	require.NotNil(t, resp.BudgetStatus.Overage)
	assert.Equal(t, "₹200.00", resp.BudgetStatus.Overage.Formatted)
	assert.Equal(t, "120.00", resp.BudgetStatus.RawPercentage)
	assert.True(t, resp.BudgetStatus.IsOverBudget)
}
