package sqlite

import (
	"database/sql"

	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
)

func NewRepositoryProvider(db *sql.DB) portsrepo.RepositoryProvider {
	snapshotRepo := newSnapshotRepository(db)

	return portsrepo.RepositoryProvider{
		UserRepo:        newUserRepository(db),
		TransactionRepo: newTransactionRepository(db),
		BudgetRepo:      newBudgetRepository(db),
		SnapshotRepo:    snapshotRepo,
		Health:          snapshotRepo,
	}
}
