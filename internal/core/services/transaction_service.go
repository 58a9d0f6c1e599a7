package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/utils/pagination"
	"github.com/google/uuid"
)

type transactionService struct {
	BaseService
	txnRepo portsrepo.TransactionRepositoryFacade
}

// TransactionServiceOption is a functional option for configuring the transaction service
type TransactionServiceOption func(*transactionService)

// WithTransactionFeed publishes a change event after every successful write.
func WithTransactionFeed(feed changefeed.Feed) TransactionServiceOption {
	return func(s *transactionService) {
		s.Feed = feed
	}
}

// NewTransactionService creates a new transaction service with the provided options
func NewTransactionService(repo portsrepo.TransactionRepositoryFacade, options ...TransactionServiceOption) portssvc.TransactionSvcFacade {
	svc := &transactionService{txnRepo: repo}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

func (s *transactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	if req.Amount == nil {
		return nil, apperrors.NewBadRequestError("amount is required")
	}
	date, err := domain.ParseDate(req.Date)
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	now := nowUTC()
	txn := domain.Transaction{
		TransactionID: uuid.NewString(),
		OwnerID:       ownerID,
		Description:   strings.TrimSpace(req.Description),
		Amount:        *req.Amount,
		Category:      strings.TrimSpace(req.Category),
		Kind:          domain.ParseTransactionKind(req.Kind),
		Date:          date,
		AuditFields:   domain.NewAuditFields(now),
	}
	if err := txn.Validate(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created",
		slog.String("transaction_id", txn.TransactionID),
		slog.String("owner_id", ownerID))
	s.PublishChange(ctx, ownerID, changefeed.CollectionTransactions)
	return &txn, nil
}

func (s *transactionService) CreateTransactions(ctx context.Context, ownerID string, txns []domain.Transaction) (int, error) {
	if len(txns) == 0 {
		return 0, nil
	}
	now := nowUTC()
	batch := make([]domain.Transaction, len(txns))
	for i, txn := range txns {
		txn.TransactionID = uuid.NewString()
		txn.OwnerID = ownerID
		// Distinct timestamps keep sheet order under newest-first listing.
		txn.CreatedAt = now.Add(time.Duration(i) * time.Microsecond)
		txn.LastUpdatedAt = txn.CreatedAt
		if err := txn.Validate(); err != nil {
			return 0, apperrors.NewBadRequestError(fmt.Sprintf("transaction %d: %s", i+1, err.Error()))
		}
		batch[i] = txn
	}

	if err := s.txnRepo.SaveTransactions(ctx, batch); err != nil {
		s.LogError(ctx, err, "Failed to save transaction batch",
			slog.String("owner_id", ownerID),
			slog.Int("count", len(batch)))
		return 0, fmt.Errorf("failed to save transactions: %w", err)
	}

	s.LogInfo(ctx, "Transactions imported", slog.String("owner_id", ownerID), slog.Int("count", len(batch)))
	s.PublishChange(ctx, ownerID, changefeed.CollectionTransactions)
	return len(batch), nil
}

func (s *transactionService) GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, ownerID, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to get transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return txn, nil
}

func (s *transactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = 20
	}
	query := portsrepo.TransactionPageQuery{
		Limit: limit + 1,
		Month: domain.MonthKey(params.Month),
	}
	if params.NextToken != "" {
		createdAt, id, err := pagination.DecodeCursor(params.NextToken)
		if err != nil {
			return nil, apperrors.NewBadRequestError("invalid nextToken")
		}
		query.AfterCreatedAt = createdAt
		query.AfterID = id
	}

	txns, err := s.txnRepo.ListTransactions(ctx, ownerID, query)
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	resp := &dto.ListTransactionsResponse{}
	if len(txns) > limit {
		txns = txns[:limit]
		last := txns[len(txns)-1]
		token := pagination.EncodeCursor(last.CreatedAt, last.TransactionID)
		resp.NextToken = &token
	}
	resp.Transactions = dto.ToTransactionResponses(txns)
	return resp, nil
}

func (s *transactionService) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	used, err := s.txnRepo.ListCategories(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to list categories", slog.String("owner_id", ownerID))
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}

	categories := slices.Clone(domain.DefaultCategories)
	for _, c := range used {
		c = strings.TrimSpace(c)
		if c == "" || slices.Contains(categories, c) {
			continue
		}
		categories = append(categories, c)
	}
	slices.Sort(categories[len(domain.DefaultCategories):])
	return categories, nil
}

func (s *transactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	update := req.ToDomainUpdate()
	if req.Date != nil && update.Date == nil {
		return nil, apperrors.NewBadRequestError("date must be formatted as YYYY-MM-DD")
	}

	existing, err := s.GetTransaction(ctx, ownerID, transactionID)
	if err != nil {
		return nil, err
	}
	if update.IsEmpty() {
		return existing, nil
	}

	updated := update.Apply(*existing)
	updated.Description = strings.TrimSpace(updated.Description)
	updated.Category = strings.TrimSpace(updated.Category)
	updated.Touch(nowUTC())
	if err := updated.Validate(); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if err := s.txnRepo.UpdateTransaction(ctx, updated); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to update transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}

	s.PublishChange(ctx, ownerID, changefeed.CollectionTransactions)
	return &updated, nil
}

func (s *transactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	if err := s.txnRepo.DeleteTransaction(ctx, ownerID, transactionID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to delete transaction", slog.String("transaction_id", transactionID))
		return fmt.Errorf("failed to delete transaction: %w", err)
	}
	s.LogInfo(ctx, "Transaction deleted", slog.String("transaction_id", transactionID))
	s.PublishChange(ctx, ownerID, changefeed.CollectionTransactions)
	return nil
}
