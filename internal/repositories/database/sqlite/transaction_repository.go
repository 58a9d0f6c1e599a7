package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
)

const (
	transactionColumns   = `transaction_id, owner_id, description, amount, category, kind, txn_date, created_at, last_updated_at`
	insertTransactionSQL = `INSERT INTO transactions (` + transactionColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
)

type TransactionRepository struct {
	db *sql.DB
}

func newTransactionRepository(db *sql.DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

var _ portsrepo.TransactionRepositoryFacade = (*TransactionRepository)(nil)

func transactionArgs(txn domain.Transaction) []any {
	m := mapping.ToModelTransaction(txn)
	return []any{
		m.TransactionID, m.OwnerID, m.Description, m.Amount.String(), m.Category, m.Kind,
		m.TxnDate.Format(domain.DateLayout), formatTime(m.CreatedAt), formatTime(m.LastUpdatedAt),
	}
}

func scanTransaction(s scanner) (domain.Transaction, error) {
	var (
		m                             models.Transaction
		txnDate, createdAt, updatedAt string
	)
	if err := s.Scan(&m.TransactionID, &m.OwnerID, &m.Description, &m.Amount, &m.Category, &m.Kind, &txnDate, &createdAt, &updatedAt); err != nil {
		return domain.Transaction{}, err
	}
	var err error
	if m.TxnDate, err = domain.ParseDate(txnDate); err != nil {
		return domain.Transaction{}, err
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return domain.Transaction{}, err
	}
	if m.LastUpdatedAt, err = parseTime(updatedAt); err != nil {
		return domain.Transaction{}, err
	}
	return mapping.ToDomainTransaction(m), nil
}

func collectTransactions(rows *sql.Rows) ([]domain.Transaction, error) {
	defer rows.Close()
	txns := []domain.Transaction{}
	for rows.Next() {
		txn, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transaction rows: %w", err)
	}
	return txns, nil
}

func (r *TransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	if _, err := r.db.ExecContext(ctx, insertTransactionSQL, transactionArgs(txn)...); err != nil {
		return fmt.Errorf("failed to save transaction %s: %w", txn.TransactionID, err)
	}
	return nil
}

func (r *TransactionRepository) SaveTransactions(ctx context.Context, txns []domain.Transaction) error {
	if len(txns) == 0 {
		return nil
	}
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertTransactionSQL)
	if err != nil {
		return fmt.Errorf("failed to prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, txn := range txns {
		if _, err := stmt.ExecContext(ctx, transactionArgs(txn)...); err != nil {
			return fmt.Errorf("failed to insert transaction %s: %w", txn.TransactionID, err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction batch: %w", err)
	}
	return nil
}

func (r *TransactionRepository) FindTransactionByID(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE transaction_id = ? AND owner_id = ?`,
		transactionID, ownerID)
	txn, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction %s: %w", transactionID, err)
	}
	return &txn, nil
}

func (r *TransactionRepository) ListTransactions(ctx context.Context, ownerID string, q portsrepo.TransactionPageQuery) ([]domain.Transaction, error) {
	var sb strings.Builder
	args := []any{ownerID}
	sb.WriteString(`SELECT ` + transactionColumns + ` FROM transactions WHERE owner_id = ?`)
	if q.Month != "" {
		sb.WriteString(` AND substr(txn_date, 1, 7) = ?`)
		args = append(args, string(q.Month))
	}
	if q.AfterID != "" {
		sb.WriteString(` AND (created_at, transaction_id) < (?, ?)`)
		args = append(args, formatTime(q.AfterCreatedAt), q.AfterID)
	}
	limit := q.Limit
	if limit <= 0 {
		limit = 20
	}
	sb.WriteString(` ORDER BY created_at DESC, transaction_id DESC LIMIT ?`)
	args = append(args, limit)

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) ListAllTransactions(ctx context.Context, ownerID string) ([]domain.Transaction, error) {
	return listAllTransactions(ctx, r.db, ownerID)
}

func listAllTransactions(ctx context.Context, q queryer, ownerID string) ([]domain.Transaction, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT `+transactionColumns+` FROM transactions WHERE owner_id = ? ORDER BY created_at DESC, transaction_id DESC`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return collectTransactions(rows)
}

func (r *TransactionRepository) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT DISTINCT category FROM transactions WHERE owner_id = ? AND category <> '' ORDER BY category`,
		ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	categories := []string{}
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

func (r *TransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	m := mapping.ToModelTransaction(txn)
	res, err := r.db.ExecContext(ctx, `
		UPDATE transactions
		SET description = ?, amount = ?, category = ?, kind = ?, txn_date = ?, last_updated_at = ?
		WHERE transaction_id = ? AND owner_id = ?`,
		m.Description, m.Amount.String(), m.Category, m.Kind, m.TxnDate.Format(domain.DateLayout), formatTime(m.LastUpdatedAt),
		m.TransactionID, m.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to update transaction %s: %w", m.TransactionID, err)
	}
	return requireAffected(res, "transaction "+m.TransactionID)
}

func (r *TransactionRepository) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM transactions WHERE transaction_id = ? AND owner_id = ?`, transactionID, ownerID)
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}
	return requireAffected(res, "transaction "+transactionID)
}

func requireAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s: %w", what, apperrors.ErrNotFound)
	}
	return nil
}
