package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// TransactionPageQuery selects one page of an owner's transactions, newest
// first. When AfterID is set only rows strictly older than
// (AfterCreatedAt, AfterID) are returned.
type TransactionPageQuery struct {
	Limit          int
	AfterCreatedAt time.Time
	AfterID        string
	Month          domain.MonthKey // optional
}

// TransactionReader defines read operations for transactions.
// Every lookup is scoped to ownerID; rows of other owners are reported as not found.
type TransactionReader interface {
	FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, query TransactionPageQuery) ([]domain.Transaction, error)
	ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error)
	ListCategories(ctx context.Context, ownerID string) ([]string, error)
}

// TransactionWriter defines write operations for transactions.
type TransactionWriter interface {
	SaveTransaction(ctx context.Context, txn domain.Transaction) error
	// SaveTransactions inserts all rows or none.
	SaveTransactions(ctx context.Context, txns []domain.Transaction) error
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction repository interfaces.
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
