package aggregation

import (
	"fmt"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

var spikeFactor = decimal.RequireFromString("1.1")

const staticTip = "Tip: set a budget for next month and check your top category every week."

// Insights returns the heuristic observations for targetMonth using the
// default currency symbol.
func Insights(txns []domain.Transaction, budgets domain.BudgetTable, targetMonth domain.MonthKey) []domain.Insight {
	return defaultEngine.Insights(txns, budgets, targetMonth)
}

// Insights returns, in order: a saving trend or spending spike versus the
// previous month, the month's top expense category, and exactly one tip.
// Missing data yields fewer insights; it never fails.
func (e *Engine) Insights(txns []domain.Transaction, budgets domain.BudgetTable, targetMonth domain.MonthKey) []domain.Insight {
	insights := make([]domain.Insight, 0, 3)

	income, current := monthTotals(txns, targetMonth)
	_, previous := monthTotals(txns, targetMonth.Prev())

	if previous.IsPositive() {
		switch {
		case current.LessThan(previous):
			insights = append(insights, domain.Insight{
				Kind:     domain.InsightSavingTrend,
				Severity: domain.SeveritySuccess,
				Message:  fmt.Sprintf("You saved %s compared to last month.", e.money(previous.Sub(current))),
			})
		case current.GreaterThan(previous.Mul(spikeFactor)):
			increase := current.Sub(previous).Div(previous).Mul(hundred)
			insights = append(insights, domain.Insight{
				Kind:     domain.InsightSpendingSpike,
				Severity: domain.SeverityWarning,
				Message:  fmt.Sprintf("Spending is up %s%% from last month (%s vs %s).", increase.StringFixed(0), e.money(current), e.money(previous)),
			})
		}
	}

	if category, total, ok := topCategory(txns, targetMonth); ok {
		insights = append(insights, domain.Insight{
			Kind:     domain.InsightTopCategory,
			Severity: domain.SeverityInfo,
			Message:  fmt.Sprintf("%s is your top category this month at %s.", category, e.money(total)),
		})
	}

	return append(insights, e.powerTip(budgets, targetMonth, income, current))
}

func (e *Engine) powerTip(budgets domain.BudgetTable, month domain.MonthKey, income, expense decimal.Decimal) domain.Insight {
	if limit, ok := budgets.Limit(month); ok && expense.GreaterThan(limit) {
		return domain.Insight{
			Kind:     domain.InsightBudgetOverage,
			Severity: domain.SeverityDanger,
			Message:  fmt.Sprintf("You are %s over this month's budget. Pause non-essential spending.", e.money(expense.Sub(limit))),
		}
	}
	if income.GreaterThan(expense) && expense.IsPositive() {
		return domain.Insight{
			Kind:     domain.InsightMonthlySaving,
			Severity: domain.SeveritySuccess,
			Message:  fmt.Sprintf("You kept %s of this month's income. Consider moving it to savings.", e.money(income.Sub(expense))),
		}
	}
	return domain.Insight{
		Kind:     domain.InsightTip,
		Severity: domain.SeverityInfo,
		Message:  staticTip,
	}
}
