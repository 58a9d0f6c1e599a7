package aggregation_test

import (
	"testing"

	"github.com/SscSPs/fintrack/internal/core/aggregation"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func kinds(insights []domain.Insight) []domain.InsightKind {
	out := make([]domain.InsightKind, 0, len(insights))
	for _, i := range insights {
		out = append(out, i.Kind)
	}
	return out
}

func TestInsights_SavingTrend(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "1000", "2024-01-15", "Food"),
		txn(t, domain.KindExpense, "700", "2024-02-15", "Food"),
	}

	insights := aggregation.Insights(txns, nil, "2024-02")

	require.NotEmpty(t, insights)
	assert.Equal(t, domain.InsightSavingTrend, insights[0].Kind)
	assert.Equal(t, domain.SeveritySuccess, insights[0].Severity)
	assert.Contains(t, insights[0].Message, "300")
}

func TestInsights_SpendingSpike(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "1000", "2024-01-15", "Food"),
		txn(t, domain.KindExpense, "1200", "2024-02-15", "Food"),
	}

	insights := aggregation.Insights(txns, nil, "2024-02")

	require.NotEmpty(t, insights)
	assert.Equal(t, domain.InsightSpendingSpike, insights[0].Kind)
	assert.Equal(t, domain.SeverityWarning, insights[0].Severity)
	assert.Contains(t, insights[0].Message, "20%")
}

func TestInsights_SmallIncreaseIsQuiet(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "1000", "2024-01-15", "Food"),
		txn(t, domain.KindExpense, "1100", "2024-02-15", "Food"),
	}

	insights := aggregation.Insights(txns, nil, "2024-02")

	assert.Equal(t, []domain.InsightKind{domain.InsightTopCategory, domain.InsightTip}, kinds(insights))
}

func TestInsights_NoPreviousMonthSpending(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindIncome, "1000", "2024-01-15", "Salary"),
		txn(t, domain.KindExpense, "1200", "2024-02-15", "Food"),
	}

	insights := aggregation.Insights(txns, nil, "2024-02")

	assert.NotContains(t, kinds(insights), domain.InsightSavingTrend)
	assert.NotContains(t, kinds(insights), domain.InsightSpendingSpike)
}

func TestInsights_TopCategoryTieUsesFirstSeen(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "50", "2024-02-01", "Transport"),
		txn(t, domain.KindExpense, "50", "2024-02-02", "Food"),
		txn(t, domain.KindExpense, "90", "2024-01-02", "Health"),
	}

	insights := aggregation.Insights(txns, nil, "2024-02")

	var top *domain.Insight
	for i := range insights {
		if insights[i].Kind == domain.InsightTopCategory {
			top = &insights[i]
		}
	}
	require.NotNil(t, top)
	assert.Contains(t, top.Message, "Transport")
	assert.Contains(t, top.Message, "₹50.00")
}

func TestInsights_PowerTipOrder(t *testing.T) {
	t.Run("budget overage wins", func(t *testing.T) {
		txns := []domain.Transaction{
			txn(t, domain.KindIncome, "5000", "2024-02-01", "Salary"),
			txn(t, domain.KindExpense, "1200", "2024-02-05", "Food"),
		}
		budgets := domain.BudgetTable{"2024-02": dec("1000")}

		insights := aggregation.Insights(txns, budgets, "2024-02")

		last := insights[len(insights)-1]
		assert.Equal(t, domain.InsightBudgetOverage, last.Kind)
		assert.Contains(t, last.Message, "₹200.00")
	})

	t.Run("savings when income exceeds expense", func(t *testing.T) {
		txns := []domain.Transaction{
			txn(t, domain.KindIncome, "5000", "2024-02-01", "Salary"),
			txn(t, domain.KindExpense, "1200", "2024-02-05", "Food"),
		}

		insights := aggregation.Insights(txns, nil, "2024-02")

		last := insights[len(insights)-1]
		assert.Equal(t, domain.InsightMonthlySaving, last.Kind)
		assert.Contains(t, last.Message, "₹3800.00")
	})

	t.Run("static tip otherwise", func(t *testing.T) {
		insights := aggregation.Insights(nil, nil, "2024-02")

		require.Len(t, insights, 1)
		assert.Equal(t, domain.InsightTip, insights[0].Kind)
	})

	t.Run("income without expense is not a saving", func(t *testing.T) {
		txns := []domain.Transaction{txn(t, domain.KindIncome, "5000", "2024-02-01", "Salary")}

		insights := aggregation.Insights(txns, nil, "2024-02")

		assert.Equal(t, []domain.InsightKind{domain.InsightTip}, kinds(insights))
	})
}

func TestInsights_ExactlyOnePowerTip(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "1000", "2024-01-15", "Food"),
		txn(t, domain.KindExpense, "1500", "2024-02-15", "Food"),
		txn(t, domain.KindIncome, "9000", "2024-02-01", "Salary"),
	}
	budgets := domain.BudgetTable{"2024-02": dec("1200")}

	insights := aggregation.Insights(txns, budgets, "2024-02")

	tips := 0
	for _, i := range insights {
		switch i.Kind {
		case domain.InsightBudgetOverage, domain.InsightMonthlySaving, domain.InsightTip:
			tips++
		}
	}
	assert.Equal(t, 1, tips)
	assert.Equal(t, []domain.InsightKind{domain.InsightSpendingSpike, domain.InsightTopCategory, domain.InsightBudgetOverage}, kinds(insights))
}
