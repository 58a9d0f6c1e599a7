package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	transactionColumns   = `transaction_id, owner_id, description, amount, category, kind, txn_date, created_at, last_updated_at`
	insertTransactionSQL = `INSERT INTO transactions (` + transactionColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);`
)

type PgxTransactionRepository struct {
	BaseRepository
}

func newPgxTransactionRepository(pool *pgxpool.Pool) *PgxTransactionRepository {
	return &PgxTransactionRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.TransactionRepositoryFacade = (*PgxTransactionRepository)(nil)

// querier is satisfied by both the pool and a pgx.Tx.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
}

func scanTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	modelTxns, err := pgx.CollectRows(rows, pgx.RowToStructByNameLax[models.Transaction])
	if err != nil {
		return nil, fmt.Errorf("failed to scan transaction rows: %w", err)
	}
	return mapping.ToDomainTransactionSlice(modelTxns), nil
}

func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	_, err := r.Pool.Exec(ctx, insertTransactionSQL,
		m.TransactionID, m.OwnerID, m.Description, m.Amount, m.Category, m.Kind, m.TxnDate, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: transaction %s already exists", apperrors.ErrDuplicate, m.TransactionID)
		}
		return fmt.Errorf("failed to save transaction %s: %w", m.TransactionID, err)
	}
	return nil
}

func (r *PgxTransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}

	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	batch := &pgx.Batch{}
	for _, txn := range txns {
		m := mapping.ToModelTransaction(txn)
		batch.Queue(insertTransactionSQL,
			m.TransactionID, m.OwnerID, m.Description, m.Amount, m.Category, m.Kind, m.TxnDate, m.CreatedAt, m.LastUpdatedAt,
		)
	}
	if err := tx.SendBatch(ctx, batch).Close(); err != nil {
		return fmt.Errorf("failed to insert transaction batch: %w", err)
	}
	return r.Commit(ctx, tx)
}

func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`
	rows, err := r.Pool.Query(ctx, query, transactionID, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transaction %s: %w", transactionID, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByNameLax[models.Transaction])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	txn := mapping.ToDomainTransaction(m)
	return &txn, nil
}

func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, ownerID string, q portsrepo.TransactionPageQuery) ([]domain.Transaction, error) {
	var sb strings.Builder
	args := []any{ownerID}
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1`)
	if q.Month != "" {
		start := q.Month.Start()
		args = append(args, start, start.AddDate(0, 1, 0))
		fmt.Fprintf(&sb, ` AND txn_date >= $%d AND txn_date < $%d`, len(args)-1, len(args))
	}
	if q.AfterID != "" {
		args = append(args, q.AfterCreatedAt, q.AfterID)
		fmt.Fprintf(&sb, ` AND (created_at, transaction_id) < ($%d, $%d)`, len(args)-1, len(args))
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	args = append(args, limit)
	fmt.Fprintf(&sb, ` ORDER BY created_at DESC, transaction_id DESC LIMIT $%d;`, len(args))

	rows, err := r.Pool.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return scanTransactions(rows)
}

func (r *PgxTransactionRepository) ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	return listAllTransactions(ctx, r.Pool, ownerID)
}

func listAllTransactions(ctx context.Context, q querier, ownerID string) ([]domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = $1 ORDER BY created_at DESC, transaction_id DESC;`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return scanTransactions(rows)
}

func (r *PgxTransactionRepository) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	query := `SELECT DISTINCT category FROM transactions WHERE owner_id = $1 AND category <> '' ORDER BY category;`
	rows, err := r.Pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	categories, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("failed to scan categories: %w", err)
	}
	return categories, nil
}

func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET description = $1, amount = $2, category = $3, kind = $4, txn_date = $5, last_updated_at = $6
		WHERE transaction_id = $7 AND owner_id = $8;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.Description, m.Amount, m.Category, m.Kind, m.TxnDate, m.LastUpdatedAt, m.TransactionID, m.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", m.TransactionID, apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxTransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM transactions WHERE transaction_id = $1 AND owner_id = $2;`, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrNotFound)
	}
	return nil
}
