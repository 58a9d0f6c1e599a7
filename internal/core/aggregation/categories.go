package aggregation

import (
	"slices"
	"strings"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CategoryBreakdown groups expenses by category and reports each group's
// share of total expenses. Income is ignored. Category names are compared
// exactly, so "food" and "Food" are separate groups; blank categories are
// grouped under domain.UncategorizedLabel.
//
// Entries are sorted by total descending, then by category name.
func CategoryBreakdown(txns []domain.Transaction) []domain.CategoryShare {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	sum := decimal.Zero

	for _, t := range txns {
		if t.IsIncome() {
			continue
		}
		label := t.CategoryLabel()
		current, seen := totals[label]
		if !seen {
			order = append(order, label)
		}
		totals[label] = current.Add(t.Amount)
		sum = sum.Add(t.Amount)
	}

	shares := make([]domain.CategoryShare, 0, len(order))
	for _, label := range order {
		total := totals[label]
		pct := decimal.Zero
		if !sum.IsZero() {
			pct = total.Div(sum).Mul(hundred)
		}
		shares = append(shares, domain.CategoryShare{
			Category:   label,
			Total:      total,
			Percentage: pct,
		})
	}

	slices.SortFunc(shares, func(a, b domain.CategoryShare) int {
		if c := b.Total.Cmp(a.Total); c != 0 {
			return c
		}
		return strings.Compare(a.Category, b.Category)
	})
	return shares
}

// topCategory returns the category with the largest expense total in month.
// Ties go to the category encountered first in txns.
func topCategory(txns []domain.Transaction, month domain.MonthKey) (string, decimal.Decimal, bool) {
	totals := make(map[string]decimal.Decimal)
	order := make([]string, 0)
	for _, t := range txns {
		if t.IsIncome() || t.Month() != month {
			continue
		}
		label := t.CategoryLabel()
		current, seen := totals[label]
		if !seen {
			order = append(order, label)
		}
		totals[label] = current.Add(t.Amount)
	}
	if len(order) == 0 {
		return "", decimal.Zero, false
	}
	best := order[0]
	for _, label := range order[1:] {
		if totals[label].GreaterThan(totals[best]) {
			best = label
		}
	}
	return best, totals[best], true
}
