package services

import (
	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/aggregation"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, feed changefeed.Feed) *portssvc.ServiceContainer {
	if feed == nil {
		feed = changefeed.NewMemoryFeed()
	}

	container := &portssvc.ServiceContainer{}

	container.Transaction = NewTransactionService(repos.TransactionRepo, WithTransactionFeed(feed))
	container.Budget = NewBudgetService(repos.BudgetRepo, WithBudgetFeed(feed))
	container.Snapshot = NewSnapshotService(repos.SnapshotRepo, feed)

	engine := aggregation.NewEngine(
		aggregation.WithCurrencySymbol(cfg.CurrencySymbol),
		aggregation.WithWindowSize(cfg.SeriesWindow),
	)
	container.Dashboard = NewDashboardService(container.Snapshot, WithEngine(engine))
	container.Transfer = NewTransferService(repos.TransactionRepo, container.Transaction)

	container.TokenService = NewTokenService(cfg, repos.UserRepo)
	container.Auth = NewAuthService(repos.UserRepo, container.TokenService)
	container.User = NewUserService(repos.UserRepo)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
