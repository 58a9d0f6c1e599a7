package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a per-owner spending ceiling for one month.
// At most one exists per (OwnerID, Month); a later write replaces the earlier one.
type Budget struct {
	OwnerID       string          `json:"ownerID"`
	Month         MonthKey        `json:"month"`
	Limit         decimal.Decimal `json:"limit"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// Validate checks the budget before it is written.
func (b Budget) Validate() error {
	if b.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if !b.Month.Valid() {
		return errors.New("month must be formatted as YYYY-MM")
	}
	if b.Limit.IsNegative() {
		return errors.New("limit must not be negative")
	}
	return nil
}

// BudgetTable maps a month to its spending limit for a single owner.
type BudgetTable map[MonthKey]decimal.Decimal

// NewBudgetTable indexes budgets by month. Later entries win on duplicate months.
func NewBudgetTable(budgets []Budget) BudgetTable {
	table := make(BudgetTable, len(budgets))
	for _, b := range budgets {
		table[b.Month] = b.Limit
	}
	return table
}

// Limit returns the limit for month, and false when no positive limit is set.
func (t BudgetTable) Limit(month MonthKey) (decimal.Decimal, bool) {
	limit, ok := t[month]
	if !ok || !limit.IsPositive() {
		return decimal.Zero, false
	}
	return limit, true
}
