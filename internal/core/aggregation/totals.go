package aggregation

import (
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// Totals sums income and expenses of the transactions matching dateFilter.
// Expense covers every transaction that is not income.
func Totals(txns []domain.Transaction, dateFilter domain.DateFilter) domain.Totals {
	income := decimal.Zero
	expense := decimal.Zero
	for _, t := range txns {
		if !dateFilter.Matches(t.Date) {
			continue
		}
		if t.IsIncome() {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return domain.Totals{
		Income:  income,
		Expense: expense,
		Balance: income.Sub(expense),
	}
}

// monthTotals returns income and expense for a single month.
func monthTotals(txns []domain.Transaction, month domain.MonthKey) (income, expense decimal.Decimal) {
	t := Totals(txns, domain.DateFilter(month))
	return t.Income, t.Expense
}
