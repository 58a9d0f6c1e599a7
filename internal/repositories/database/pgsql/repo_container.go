package pgsql

import (
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewRepositoryProvider builds every PostgreSQL-backed repository over one pool.
func NewRepositoryProvider(pool *pgxpool.Pool) portsrepo.RepositoryProvider {
	snapshots := newPgxSnapshotRepository(pool)
	return portsrepo.RepositoryProvider{
		UserRepo:        newPgxUserRepository(pool),
		TransactionRepo: newPgxTransactionRepository(pool),
		BudgetRepo:      newPgxBudgetRepository(pool),
		SnapshotRepo:    snapshots,
		Health:          snapshots,
	}
}
