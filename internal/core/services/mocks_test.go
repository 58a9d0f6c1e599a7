package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	var txn *domain.Transaction
	if args.Get(0) != nil {
		txn = args.Get(0).(*domain.Transaction)
	}
	return txn, args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, ownerID string, query portsrepo.TransactionPageQuery) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID, query)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, ownerID)
	var txns []domain.Transaction
	if args.Get(0) != nil {
		txns = args.Get(0).([]domain.Transaction)
	}
	return txns, args.Error(1)
}

func (m *MockTransactionRepository) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	var categories []string
	if args.Get(0) != nil {
		categories = args.Get(0).([]string)
	}
	return categories, args.Error(1)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	args := m.Called(ctx, txns)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	args := m.Called(ctx, ownerID, transactionID)
	return args.Error(0)
}

// --- Mock BudgetRepository ---
type MockBudgetRepository struct {
	mock.Mock
}

func (m *MockBudgetRepository) FindBudget(ctx context.Context, ownerID string, month domain.MonthKey) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, month)
	var b *domain.Budget
	if args.Get(0) != nil {
		b = args.Get(0).(*domain.Budget)
	}
	return b, args.Error(1)
}

func (m *MockBudgetRepository) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	args := m.Called(ctx, ownerID)
	var budgets []domain.Budget
	if args.Get(0) != nil {
		budgets = args.Get(0).([]domain.Budget)
	}
	return budgets, args.Error(1)
}

func (m *MockBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	args := m.Called(ctx, budget)
	return args.Error(0)
}

func (m *MockBudgetRepository) DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error {
	args := m.Called(ctx, ownerID, month)
	return args.Error(0)
}

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	args := m.Called(ctx, provider, providerUserID)
	var user *domain.User
	if args.Get(0) != nil {
		user = args.Get(0).(*domain.User)
	}
	return user, args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	args := m.Called(ctx, userID, refreshTokenHash, expiresAt)
	return args.Error(0)
}

func (m *MockUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// --- Mock SnapshotReader ---
type MockSnapshotRepository struct {
	mock.Mock
}

func (m *MockSnapshotRepository) LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	args := m.Called(ctx, ownerID)
	return args.Get(0).(domain.Snapshot), args.Error(1)
}

// expectEvent waits briefly for one change event on ch.
func expectEvent(t *testing.T, ch <-chan changefeed.Event) changefeed.Event {
	t.Helper()
	select {
	case e := <-ch:
		return e
	case <-time.After(time.Second):
		t.Fatal("expected a change event")
		return changefeed.Event{}
	}
}

// expectNoEvent asserts nothing is pending on ch.
func expectNoEvent(t *testing.T, ch <-chan changefeed.Event) {
	t.Helper()
	select {
	case e := <-ch:
		t.Fatalf("unexpected change event: %+v", e)
	default:
	}
}
