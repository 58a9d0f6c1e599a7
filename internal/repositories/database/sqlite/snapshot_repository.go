package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
)

// SnapshotRepository reads transactions and budgets in one transaction.
type SnapshotRepository struct {
	db *sql.DB
}

func newSnapshotRepository(db *sql.DB) *SnapshotRepository {
	return &SnapshotRepository{db: db}
}

var (
	_ portsrepo.SnapshotReader = (*SnapshotRepository)(nil)
	_ portsrepo.HealthChecker  = (*SnapshotRepository)(nil)
)

func (r *SnapshotRepository) LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("failed to begin read transaction: %w", err)
	}
	defer tx.Rollback()

	txns, err := listAllTransactions(ctx, tx, ownerID)
	if err != nil {
		return domain.Snapshot{}, err
	}
	budgets, err := listBudgets(ctx, tx, ownerID)
	if err != nil {
		return domain.Snapshot{}, err
	}

	return domain.Snapshot{
		OwnerID:      ownerID,
		Transactions: txns,
		Budgets:      domain.NewBudgetTable(budgets),
		TakenAt:      time.Now().UTC(),
	}, nil
}

func (r *SnapshotRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
