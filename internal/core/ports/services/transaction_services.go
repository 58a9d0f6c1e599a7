package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
)

// TransactionReaderSvc defines read operations on an owner's transactions.
type TransactionReaderSvc interface {
	GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)
	// ListCategories merges the default suggestions with the owner's used categories.
	ListCategories(ctx context.Context, ownerID string) ([]string, error)
}

// TransactionWriterSvc defines write operations on an owner's transactions.
// Every successful write publishes a change event.
type TransactionWriterSvc interface {
	CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error)
	UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error)
	DeleteTransaction(ctx context.Context, ownerID, transactionID string) error
	// CreateTransactions stores already-validated rows atomically.
	CreateTransactions(ctx context.Context, ownerID string, txns []domain.Transaction) (int, error)
}

// TransactionSvcFacade combines all transaction service interfaces.
type TransactionSvcFacade interface {
	TransactionReaderSvc
	TransactionWriterSvc
}
