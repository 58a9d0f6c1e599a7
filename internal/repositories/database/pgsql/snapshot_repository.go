package pgsql

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PgxSnapshotRepository reads transactions and budgets inside one
// repeatable-read transaction, so a snapshot never mixes two states.
type PgxSnapshotRepository struct {
	BaseRepository
}

func newPgxSnapshotRepository(pool *pgxpool.Pool) *PgxSnapshotRepository {
	return &PgxSnapshotRepository{BaseRepository{Pool: pool}}
}

var (
	_ portsrepo.SnapshotReader = (*PgxSnapshotRepository)(nil)
	_ portsrepo.HealthChecker  = (*PgxSnapshotRepository)(nil)
)

func (r *PgxSnapshotRepository) LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	tx, err := r.BeginReadOnly(ctx)
	if err != nil {
		return domain.Snapshot{}, err
	}
	defer r.Rollback(ctx, tx)

	txns, err := listAllTransactions(ctx, tx, ownerID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	budgets, err := listBudgets(ctx, tx, ownerID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	if err := r.Commit(ctx, tx); err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		OwnerID:      ownerID,
		Transactions: txns,
		Budgets:      domain.NewBudgetTable(budgets),
		TakenAt:      time.Now().UTC(),
	}, nil
}
