package aggregation

import (
	"fmt"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

var (
	tierGreatMax       = decimal.NewFromInt(30)
	tierOnTrackMax     = decimal.NewFromInt(60)
	tierSlowDownMax    = decimal.NewFromInt(80)
	tierAlmostThereMax = hundred
)

// BudgetStatus evaluates spending in targetMonth against its budget using the
// default currency symbol for the message.
func BudgetStatus(txns []domain.Transaction, budgets domain.BudgetTable, targetMonth domain.MonthKey) domain.BudgetStatus {
	return defaultEngine.BudgetStatus(txns, budgets, targetMonth)
}

// BudgetStatus evaluates spending in targetMonth against its budget.
// A missing or zero limit yields BudgetStateNotSet with no numeric fields.
func (e *Engine) BudgetStatus(txns []domain.Transaction, budgets domain.BudgetTable, targetMonth domain.MonthKey) domain.BudgetStatus {
	limit, ok := budgets.Limit(targetMonth)
	if !ok {
		return domain.BudgetStatus{Month: targetMonth, State: domain.BudgetStateNotSet}
	}

	_, spent := monthTotals(txns, targetMonth)
	raw := spent.Div(limit).Mul(hundred)

	status := domain.BudgetStatus{
		Month:         targetMonth,
		State:         domain.BudgetStateSet,
		Limit:         limit,
		Spent:         spent,
		Remaining:     decimal.Max(limit.Sub(spent), decimal.Zero),
		Overage:       decimal.Max(spent.Sub(limit), decimal.Zero),
		Percentage:    decimal.Min(raw, hundred),
		RawPercentage: raw,
		IsOverBudget:  spent.GreaterThan(limit),
	}
	status.Tier = tierFor(raw)
	status.Severity, status.Message = e.tierMessage(status)
	return status
}

func tierFor(raw decimal.Decimal) domain.BudgetTier {
	switch {
	case !raw.IsPositive():
		return domain.TierJustStarted
	case raw.LessThanOrEqual(tierGreatMax):
		return domain.TierGreat
	case raw.LessThanOrEqual(tierOnTrackMax):
		return domain.TierOnTrack
	case raw.LessThanOrEqual(tierSlowDownMax):
		return domain.TierSlowDown
	case raw.LessThanOrEqual(tierAlmostThereMax):
		return domain.TierAlmostThere
	default:
		return domain.TierOverBudget
	}
}

func (e *Engine) tierMessage(s domain.BudgetStatus) (domain.Severity, string) {
	pct := s.RawPercentage.StringFixed(0)
	switch s.Tier {
	case domain.TierJustStarted:
		return domain.SeverityInfo, fmt.Sprintf("Nothing spent yet this month. You have %s to work with.", e.money(s.Limit))
	case domain.TierGreat:
		return domain.SeveritySuccess, fmt.Sprintf("Great start! Only %s%% of your budget used.", pct)
	case domain.TierOnTrack:
		return domain.SeverityInfo, fmt.Sprintf("You're on track: %s%% used, %s left.", pct, e.money(s.Remaining))
	case domain.TierSlowDown:
		return domain.SeverityWarning, fmt.Sprintf("Slow down a little: %s%% of your budget is gone.", pct)
	case domain.TierAlmostThere:
		return domain.SeverityWarning, fmt.Sprintf("Almost at your limit: only %s left this month.", e.money(s.Remaining))
	default:
		return domain.SeverityDanger, fmt.Sprintf("Over budget by %s this month.", e.money(s.Overage))
	}
}
