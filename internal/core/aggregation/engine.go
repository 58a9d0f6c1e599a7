// Package aggregation turns a snapshot of transactions and budgets into the
// derived dashboard view model. Every operation is a pure function of its
// arguments: nothing here performs I/O, keeps state between calls or mutates
// its inputs, so an Engine may be shared freely between goroutines.
package aggregation

import (
	"cmp"
	"slices"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	// DefaultWindowSize is the length of the trailing monthly series.
	DefaultWindowSize = 12
	// DefaultCurrencySymbol prefixes amounts in generated messages.
	DefaultCurrencySymbol = "₹"
)

var (
	hundred       = decimal.NewFromInt(100)
	defaultEngine = NewEngine()
)

// Engine computes view models. The zero value is not usable; call NewEngine.
type Engine struct {
	now            func() time.Time
	windowSize     int
	currencySymbol string
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the source of "today" used when no anchor date is supplied.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithWindowSize sets the default number of months in the trailing series.
func WithWindowSize(n int) Option {
	return func(e *Engine) {
		if n >= 1 {
			e.windowSize = n
		}
	}
}

// WithCurrencySymbol sets the prefix used when amounts appear in messages.
func WithCurrencySymbol(symbol string) Option {
	return func(e *Engine) {
		if symbol != "" {
			e.currencySymbol = symbol
		}
	}
}

// NewEngine creates an Engine with the provided options.
func NewEngine(options ...Option) *Engine {
	e := &Engine{
		now:            time.Now,
		windowSize:     DefaultWindowSize,
		currencySymbol: DefaultCurrencySymbol,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Build derives the complete view model for one snapshot.
//
// Totals and the category breakdown use the date-filtered transactions; the
// monthly series always looks at every transaction; budget status and insights
// evaluate the target month. Category and search filters only narrow the
// returned transaction list.
func (e *Engine) Build(snapshot domain.Snapshot, params domain.ViewParams) domain.ViewModel {
	anchor := params.Anchor
	if anchor.IsZero() {
		anchor = e.now()
	}
	anchor = domain.TruncateToDate(anchor)

	filter := params.DateFilter
	if filter == "" {
		filter = domain.AllDates
	}

	target := params.TargetMonth
	if !target.Valid() {
		if m, ok := filter.Month(); ok {
			target = m
		} else {
			target = domain.MonthKeyOf(anchor)
		}
	}

	window := params.WindowSize
	if window < 1 {
		window = e.windowSize
	}

	dated := filterByDate(snapshot.Transactions, filter)
	listed := FilterForDisplay(dated, params.Category, params.Search)
	sortForDisplay(listed)

	return domain.ViewModel{
		DateFilter:        filter,
		TargetMonth:       target,
		Totals:            Totals(snapshot.Transactions, filter),
		CategoryBreakdown: CategoryBreakdown(dated),
		MonthlySeries:     MonthlySeries(snapshot.Transactions, anchor, window),
		BudgetStatus:      e.BudgetStatus(snapshot.Transactions, snapshot.Budgets, target),
		Insights:          e.Insights(snapshot.Transactions, snapshot.Budgets, target),
		Transactions:      paginate(listed, params.Offset, params.Limit),
		Categories:        Categories(snapshot.Transactions),
		GeneratedAt:       e.now(),
	}
}

// MonthlySeries is the package-level MonthlySeries with the engine's defaults
// for a missing anchor or window.
func (e *Engine) MonthlySeries(txns []domain.Transaction, anchor time.Time, windowSize int) []domain.MonthlyPoint {
	if anchor.IsZero() {
		anchor = e.now()
	}
	if windowSize < 1 {
		windowSize = e.windowSize
	}
	return MonthlySeries(txns, anchor, windowSize)
}

// Categories lists the distinct category labels in txns, sorted by name.
func Categories(txns []domain.Transaction) []string {
	seen := make(map[string]struct{}, len(txns))
	out := make([]string, 0)
	for _, t := range txns {
		label := t.CategoryLabel()
		if _, ok := seen[label]; ok {
			continue
		}
		seen[label] = struct{}{}
		out = append(out, label)
	}
	slices.Sort(out)
	return out
}

func filterByDate(txns []domain.Transaction, filter domain.DateFilter) []domain.Transaction {
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if filter.Matches(t.Date) {
			out = append(out, t)
		}
	}
	return out
}

// sortForDisplay orders newest first by creation time.
func sortForDisplay(txns []domain.Transaction) {
	slices.SortStableFunc(txns, func(a, b domain.Transaction) int {
		if c := b.CreatedAt.Compare(a.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(b.TransactionID, a.TransactionID)
	})
}

func paginate(txns []domain.Transaction, offset, limit int) domain.TransactionPage {
	total := len(txns)
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}
	end := total
	if limit > 0 && offset+limit < total {
		end = offset + limit
	}
	items := make([]domain.Transaction, end-offset)
	copy(items, txns[offset:end])
	return domain.TransactionPage{
		Items:  items,
		Total:  total,
		Offset: offset,
		Limit:  limit,
	}
}

func (e *Engine) money(d decimal.Decimal) string {
	return e.currencySymbol + d.StringFixed(2)
}
