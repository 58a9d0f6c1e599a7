package aggregation_test

import (
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/core/aggregation"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func snapshotFixture(t *testing.T) domain.Snapshot {
	t.Helper()
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	txns := []domain.Transaction{
		txn(t, domain.KindExpense, "1000", "2024-02-10", "Food"),
		txn(t, domain.KindExpense, "400", "2024-03-02", "Food"),
		txn(t, domain.KindExpense, "300", "2024-03-03", "Transport"),
		txn(t, domain.KindIncome, "5000", "2024-03-01", "Salary"),
	}
	for i := range txns {
		txns[i].CreatedAt = base.Add(time.Duration(i) * time.Minute)
	}
	return domain.Snapshot{
		OwnerID:      "owner-1",
		Transactions: txns,
		Budgets:      domain.BudgetTable{"2024-03": dec("1000")},
	}
}

func TestEngineBuild_ComposesViewModel(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	engine := aggregation.NewEngine(aggregation.WithClock(func() time.Time { return now }))
	snapshot := snapshotFixture(t)

	vm := engine.Build(snapshot, domain.ViewParams{DateFilter: "2024-03", Category: "Food", WindowSize: 3})

	assert.Equal(t, domain.MonthKey("2024-03"), vm.TargetMonth)
	assertDecimal(t, "5000", vm.Totals.Income)
	assertDecimal(t, "700", vm.Totals.Expense)
	// aggregates ignore the category filter
	require.Len(t, vm.CategoryBreakdown, 2)
	require.Len(t, vm.MonthlySeries, 3)
	assertDecimal(t, "1000", vm.MonthlySeries[1].Total)
	assertDecimal(t, "700", vm.MonthlySeries[2].Total)
	assert.Equal(t, domain.TierSlowDown, vm.BudgetStatus.Tier)
	assert.Equal(t, domain.InsightSavingTrend, vm.Insights[0].Kind)
	require.Equal(t, 1, vm.Transactions.Total)
	assert.Equal(t, "Food", vm.Transactions.Items[0].Category)
	assert.Equal(t, []string{"Food", "Salary", "Transport"}, vm.Categories)
	assert.Equal(t, now, vm.GeneratedAt)
}

func TestEngineBuild_DefaultsTargetToAnchorMonth(t *testing.T) {
	engine := aggregation.NewEngine()
	snapshot := snapshotFixture(t)

	vm := engine.Build(snapshot, domain.ViewParams{Anchor: date(t, "2024-02-15")})

	assert.Equal(t, domain.AllDates, vm.DateFilter)
	assert.Equal(t, domain.MonthKey("2024-02"), vm.TargetMonth)
	assert.Equal(t, domain.BudgetStateNotSet, vm.BudgetStatus.State)
	assert.Len(t, vm.MonthlySeries, aggregation.DefaultWindowSize)
}

func TestEngineBuild_LocalClockWestOfUTC(t *testing.T) {
	est := time.FixedZone("EST", -5*60*60)
	now := time.Date(2024, 3, 31, 22, 0, 0, 0, est)
	engine := aggregation.NewEngine(aggregation.WithClock(func() time.Time { return now }))
	snapshot := domain.Snapshot{Transactions: []domain.Transaction{
		txn(t, domain.KindExpense, "42", "2024-04-01", "Food"),
	}}

	vm := engine.Build(snapshot, domain.ViewParams{WindowSize: 2})

	assert.Equal(t, domain.MonthKey("2024-03"), vm.TargetMonth)
	require.Len(t, vm.MonthlySeries, 2)
	assert.Equal(t, domain.MonthKey("2024-04"), vm.MonthlySeries[1].Month)
	assertDecimal(t, "42", vm.MonthlySeries[1].Total)
}

func TestEngineBuild_NewestFirstAndPaginated(t *testing.T) {
	engine := aggregation.NewEngine()
	snapshot := snapshotFixture(t)

	vm := engine.Build(snapshot, domain.ViewParams{Offset: 1, Limit: 2, Anchor: date(t, "2024-03-20")})

	assert.Equal(t, 4, vm.Transactions.Total)
	require.Len(t, vm.Transactions.Items, 2)
	assert.Equal(t, snapshot.Transactions[2].TransactionID, vm.Transactions.Items[0].TransactionID)
	assert.Equal(t, snapshot.Transactions[1].TransactionID, vm.Transactions.Items[1].TransactionID)

	vm = engine.Build(snapshot, domain.ViewParams{Offset: 10, Limit: 2, Anchor: date(t, "2024-03-20")})
	assert.Empty(t, vm.Transactions.Items)
}

func TestEngineBuild_Idempotent(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	engine := aggregation.NewEngine(aggregation.WithClock(func() time.Time { return now }))
	snapshot := snapshotFixture(t)
	original := append([]domain.Transaction(nil), snapshot.Transactions...)
	params := domain.ViewParams{DateFilter: "2024-03", Search: "food"}

	first := engine.Build(snapshot, params)
	second := engine.Build(snapshot, params)

	assert.Equal(t, first, second)
	assert.Equal(t, original, snapshot.Transactions, "input must not be reordered")
}

func TestEngineBuild_ConcurrentCallers(t *testing.T) {
	now := time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC)
	engine := aggregation.NewEngine(aggregation.WithClock(func() time.Time { return now }))
	snapshot := snapshotFixture(t)
	want := engine.Build(snapshot, domain.ViewParams{})

	var wg sync.WaitGroup
	results := make([]domain.ViewModel, 16)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = engine.Build(snapshot, domain.ViewParams{})
		}(i)
	}
	wg.Wait()

	for _, got := range results {
		assert.Equal(t, want, got)
	}
}

func TestEngineBuild_EmptySnapshot(t *testing.T) {
	vm := aggregation.NewEngine().Build(domain.Snapshot{}, domain.ViewParams{})

	assert.True(t, vm.Totals.Balance.IsZero())
	assert.Empty(t, vm.CategoryBreakdown)
	assert.Len(t, vm.MonthlySeries, aggregation.DefaultWindowSize)
	assert.Equal(t, domain.BudgetStateNotSet, vm.BudgetStatus.State)
	assert.Equal(t, []domain.InsightKind{domain.InsightTip}, kinds(vm.Insights))
	assert.Empty(t, vm.Transactions.Items)
}
