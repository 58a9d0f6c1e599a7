package aggregation

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MonthlySeries returns windowSize consecutive monthly expense totals ending at
// the later of anchor and the newest transaction date, oldest first. Months
// without expenses are present with a zero total. A windowSize below 1 falls
// back to DefaultWindowSize.
//
// The anchor counts by its calendar date in its own location; the clock time
// and zone offset are ignored.
func MonthlySeries(txns []domain.Transaction, anchor time.Time, windowSize int) []domain.MonthlyPoint {
	if windowSize < 1 {
		windowSize = DefaultWindowSize
	}

	anchor = domain.TruncateToDate(anchor)
	for _, t := range txns {
		if d := domain.TruncateToDate(t.Date); d.After(anchor) {
			anchor = d
		}
	}

	first := domain.MonthKeyOf(anchor).AddMonths(-(windowSize - 1))
	points := make([]domain.MonthlyPoint, windowSize)
	index := make(map[domain.MonthKey]int, windowSize)
	for i := range points {
		m := first.AddMonths(i)
		points[i] = domain.MonthlyPoint{Month: m, Label: m.Label(), Total: decimal.Zero}
		index[m] = i
	}

	for _, t := range txns {
		if t.IsIncome() {
			continue
		}
		if i, ok := index[t.Month()]; ok {
			points[i].Total = points[i].Total.Add(t.Amount)
		}
	}
	return points
}
