package aggregation_test

import (
	"math/rand"
	"testing"

	"github.com/SscSPs/fintrack/internal/core/aggregation"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryBreakdown_GroupsAndSorts(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "30", "2024-01-01", "Transport"),
		txn(t, domain.KindExpense, "50", "2024-01-02", "Food"),
		txn(t, domain.KindIncome, "1000", "2024-01-03", "Salary"),
		txn(t, domain.KindExpense, "20", "2024-01-04", "Food"),
		txn(t, domain.KindExpense, "30", "2024-01-05", "Health"),
	}

	shares := aggregation.CategoryBreakdown(txns)

	require.Len(t, shares, 3)
	assert.Equal(t, "Food", shares[0].Category)
	assertDecimal(t, "70", shares[0].Total)
	assertDecimal(t, "53.85", shares[0].Percentage.Round(2))
	// equal totals fall back to name order
	assert.Equal(t, "Health", shares[1].Category)
	assert.Equal(t, "Transport", shares[2].Category)
}

func TestCategoryBreakdown_CaseSensitiveAndUncategorized(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "10", "2024-01-01", "food"),
		txn(t, domain.KindExpense, "10", "2024-01-01", "Food"),
		txn(t, domain.KindExpense, "10", "2024-01-01", ""),
		txn(t, domain.KindExpense, "10", "2024-01-01", "   "),
	}

	shares := aggregation.CategoryBreakdown(txns)

	require.Len(t, shares, 3)
	names := []string{shares[0].Category, shares[1].Category, shares[2].Category}
	assert.Equal(t, []string{domain.UncategorizedLabel, "Food", "food"}, names)
	assertDecimal(t, "20", shares[0].Total)
	assertDecimal(t, "50", shares[0].Percentage)
}

func TestCategoryBreakdown_NoExpenses(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindIncome, "1000", "2024-01-03", "Salary"),
	}

	assert.Empty(t, aggregation.CategoryBreakdown(txns))
	assert.Empty(t, aggregation.CategoryBreakdown(nil))
}

func TestCategoryBreakdown_ZeroAmounts(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "0", "2024-01-03", "Food"),
	}

	shares := aggregation.CategoryBreakdown(txns)

	require.Len(t, shares, 1)
	assert.True(t, shares[0].Percentage.IsZero())
}

func TestCategoryBreakdown_PercentagesSumTo100(t *testing.T) {
	categories := []string{"Food", "Transport", "Utilities", "Entertainment", "Health", ""}
	tolerance := decimal.RequireFromString("0.000000001")
	r := rand.New(rand.NewSource(7))

	for i := 0; i < 200; i++ {
		n := 1 + r.Intn(25)
		txns := make([]domain.Transaction, 0, n)
		for j := 0; j < n; j++ {
			amount := decimal.New(1+r.Int63n(500_000), -2)
			txns = append(txns, txn(t, domain.KindExpense, amount.String(), "2024-02-10", categories[r.Intn(len(categories))]))
		}

		sum := decimal.Zero
		for _, s := range aggregation.CategoryBreakdown(txns) {
			sum = sum.Add(s.Percentage)
		}

		assert.True(t, sum.Sub(decimal.NewFromInt(100)).Abs().LessThan(tolerance), "iteration %d: sum %s", i, sum)
	}
}

func TestCategoryBreakdown_DoesNotMutateInput(t *testing.T) {
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "5", "2024-01-01", "B"),
		txn(t, domain.KindExpense, "9", "2024-01-01", "A"),
	}
	before := append([]domain.Transaction(nil), txns...)

	_ = aggregation.CategoryBreakdown(txns)

	assert.Equal(t, before, txns)
}
