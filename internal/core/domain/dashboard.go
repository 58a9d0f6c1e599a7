package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Totals summarizes a set of transactions.
type Totals struct {
	Income  decimal.Decimal `json:"income"`
	Expense decimal.Decimal `json:"expense"`
	Balance decimal.Decimal `json:"balance"` // Income - Expense
}

// CategoryShare is one category's slice of total expenses.
type CategoryShare struct {
	Category   string          `json:"category"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"` // 0-100
}

// MonthlyPoint is one bucket of the trailing expense series.
type MonthlyPoint struct {
	Month MonthKey        `json:"month"`
	Label string          `json:"label"`
	Total decimal.Decimal `json:"total"`
}

// BudgetState distinguishes "no budget" from a budget with zero spending.
type BudgetState string

const (
	BudgetStateNotSet BudgetState = "NO_BUDGET_SET"
	BudgetStateSet    BudgetState = "SET"
)

// BudgetTier is the message band selected by the raw spending percentage.
type BudgetTier string

const (
	TierJustStarted BudgetTier = "just_started" // 0%
	TierGreat       BudgetTier = "great"        // (0, 30]
	TierOnTrack     BudgetTier = "on_track"     // (30, 60]
	TierSlowDown    BudgetTier = "slow_down"    // (60, 80]
	TierAlmostThere BudgetTier = "almost_there" // (80, 100]
	TierOverBudget  BudgetTier = "over_budget"  // > 100
)

// Severity is the presentation tone of a status line or insight.
type Severity string

const (
	SeverityInfo    Severity = "info"
	SeveritySuccess Severity = "success"
	SeverityWarning Severity = "warning"
	SeverityDanger  Severity = "danger"
)

// BudgetStatus evaluates one month's spending against its budget.
// When State is BudgetStateNotSet only Month and State are meaningful.
type BudgetStatus struct {
	Month         MonthKey
	State         BudgetState
	Limit         decimal.Decimal
	Spent         decimal.Decimal
	Remaining     decimal.Decimal
	Overage       decimal.Decimal
	Percentage    decimal.Decimal // clamped to [0, 100] for bar fills
	RawPercentage decimal.Decimal // unclamped, drives the tier
	IsOverBudget  bool
	Tier          BudgetTier
	Severity      Severity
	Message       string
}

// HasBudget reports whether a budget is set for the month.
func (s BudgetStatus) HasBudget() bool {
	return s.State == BudgetStateSet
}

// InsightKind identifies the rule that produced an insight.
type InsightKind string

const (
	InsightSavingTrend   InsightKind = "saving_trend"
	InsightSpendingSpike InsightKind = "spending_spike"
	InsightTopCategory   InsightKind = "top_category"
	InsightBudgetOverage InsightKind = "budget_overage"
	InsightMonthlySaving InsightKind = "monthly_saving"
	InsightTip           InsightKind = "tip"
)

// Insight is a short heuristic observation about spending behavior.
type Insight struct {
	Kind     InsightKind `json:"kind"`
	Severity Severity    `json:"severity"`
	Message  string      `json:"message"`
}

// Snapshot is an immutable view of one owner's data at a point in time.
type Snapshot struct {
	OwnerID      string
	Transactions []Transaction
	Budgets      BudgetTable
	TakenAt      time.Time
}

// ViewParams carries the presentation state used to derive a view model.
// The zero value means: all dates, no list filters, default window, anchored at now.
type ViewParams struct {
	DateFilter  DateFilter
	Category    string
	Search      string
	TargetMonth MonthKey
	WindowSize  int
	Anchor      time.Time
	Offset      int
	Limit       int
}

// TransactionPage is a window into the filtered transaction list.
type TransactionPage struct {
	Items  []Transaction
	Total  int
	Offset int
	Limit  int
}

// ViewModel is the derived, presentation-ready aggregate of a snapshot.
type ViewModel struct {
	DateFilter        DateFilter
	TargetMonth       MonthKey
	Totals            Totals
	CategoryBreakdown []CategoryShare
	MonthlySeries     []MonthlyPoint
	BudgetStatus      BudgetStatus
	Insights          []Insight
	Transactions      TransactionPage
	Categories        []string
	GeneratedAt       time.Time
}
