package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const budgetColumns = `owner_id, month, limit_amount, last_updated_at`

type PgxBudgetRepository struct {
	BaseRepository
}

func newPgxBudgetRepository(pool *pgxpool.Pool) *PgxBudgetRepository {
	return &PgxBudgetRepository{BaseRepository{Pool: pool}}
}

var _ portsrepo.BudgetRepositoryFacade = (*PgxBudgetRepository)(nil)

func (r *PgxBudgetRepository) UpsertBudget(ctx context.Context, budget domain.Budget) error {
	m := mapping.ToModelBudget(budget)
	query := `
		INSERT INTO budgets (` + budgetColumns + `)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (owner_id, month) DO UPDATE SET
			limit_amount = EXCLUDED.limit_amount,
			last_updated_at = EXCLUDED.last_updated_at;
	`
	if _, err := r.Pool.Exec(ctx, query, m.OwnerID, m.Month, m.LimitAmount, m.LastUpdatedAt); err != nil {
		return fmt.Errorf("failed to upsert budget %s: %w", m.Month, err)
	}
	return nil
}

func (r *PgxBudgetRepository) FindBudget(ctx context.Context, ownerID string, month domain.MonthKey) (*domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE owner_id = $1 AND month = $2;`
	rows, err := r.Pool.Query(ctx, query, ownerID, string(month))
	if err != nil {
		return nil, fmt.Errorf("failed to query budget %s: %w", month, err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find budget %s: %w", month, err)
	}
	b := mapping.ToDomainBudget(m)
	return &b, nil
}

func (r *PgxBudgetRepository) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	return listBudgets(ctx, r.Pool, ownerID)
}

func listBudgets(ctx context.Context, q querier, ownerID string) ([]domain.Budget, error) {
	query := `SELECT ` + budgetColumns + ` FROM budgets WHERE owner_id = $1 ORDER BY month DESC;`
	rows, err := q.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list budgets: %w", err)
	}
	ms, err := pgx.CollectRows(rows, pgx.RowToStructByName[models.Budget])
	if err != nil {
		return nil, fmt.Errorf("failed to scan budget rows: %w", err)
	}
	return mapping.ToDomainBudgetSlice(ms), nil
}

func (r *PgxBudgetRepository) DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error {
	cmdTag, err := r.Pool.Exec(ctx, `DELETE FROM budgets WHERE owner_id = $1 AND month = $2;`, ownerID, string(month))
	if err != nil {
		return fmt.Errorf("failed to delete budget %s: %w", month, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("budget %s: %w", month, apperrors.ErrNotFound)
	}
	return nil
}
