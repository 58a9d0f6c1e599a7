package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
)

const budgetColumns = `owner_id, month, limit_amount, last_updated_at`

type BudgetRepository struct {
	db *sql.DB
}

func newBudgetRepository(db *sql.DB) *BudgetRepository {
	return &BudgetRepository{db: db}
}

var _ portsrepo.BudgetRepositoryFacade = (*BudgetRepository)(nil)

func scanBudget(s scanner) (domain.Budget, error) {
	var (
		m         models.Budget
		updatedAt string
	)
	if err := s.Scan(&m.OwnerID, &m.Month, &m.LimitAmount, &updatedAt); err != nil {
		return domain.Budget{}, err
	}
	t, err := parseTime(updatedAt)
	if err != nil {
		return domain.Budget{}, err
	}
	m.LastUpdatedAt = t
	return mapping.ToDomainBudget(m), nil
}

func (r *BudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO budgets (`+budgetColumns+`) VALUES (?, ?, ?, ?)
		ON CONFLICT (owner_id, month) DO UPDATE SET
			limit_amount = excluded.limit_amount,
			last_updated_at = excluded.last_updated_at`,
		m.OwnerID, m.Month, m.LimitAmount.String(), formatTime(m.LastUpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert budget %s: %w", m.Month, err)
	}
	return nil
}

func (r *BudgetRepository) FindBudget(ctx context.Context, ownerID string, month domain.MonthKey) (*domain.Budget, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE owner_id = ? AND month = ?`, ownerID, string(month))
	b, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", month, err)
	}
	return &b, nil
}

func (r *BudgetRepository) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	return listBudgets(ctx, r.db, ownerID)
}

func listBudgets(ctx context.Context, q queryer, ownerID string) ([]domain.Budget, error) {
	rows, err := q.QueryContext(ctx, `SELECT `+budgetColumns+` FROM budgets WHERE owner_id = ? ORDER BY month DESC`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	defer rows.Close()

	budgets := []domain.Budget{}
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan budget row: %w", err)
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

func (r *BudgetRepository) DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM budgets WHERE owner_id = ? AND month = ?`, ownerID, string(month))
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", month, err)
	}
	return requireAffected(res, "budget "+string(month))
}
