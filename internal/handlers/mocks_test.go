package handlers_test

import (
	"context"
	"io"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// --- Mock TransactionService ---
type MockTransactionService struct {
	mock.Mock
}

func (m *MockTransactionService) GetTransaction(ctx context.Context, ownerID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) ListTransactions(ctx context.Context, ownerID string, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListTransactionsResponse), args.Error(1)
}

func (m *MockTransactionService) ListCategories(ctx context.Context, ownerID string) ([]string, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTransactionService) CreateTransaction(ctx context.Context, ownerID string, req dto.CreateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) UpdateTransaction(ctx context.Context, ownerID, transactionID string, req dto.UpdateTransactionRequest) (*domain.Transaction, error) {
	args := m.Called(ctx, ownerID, transactionID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionService) DeleteTransaction(ctx context.Context, ownerID, transactionID string) error {
	return m.Called(ctx, ownerID, transactionID).Error(0)
}

func (m *MockTransactionService) CreateTransactions(ctx context.Context, ownerID string, txns []domain.Transaction) (int, error) {
	args := m.Called(ctx, ownerID, txns)
	return args.Int(0), args.Error(1)
}

var _ portssvc.TransactionSvcFacade = (*MockTransactionService)(nil)

// --- Mock BudgetService ---
type MockBudgetService struct {
	mock.Mock
}

func (m *MockBudgetService) SetBudget(ctx context.Context, ownerID string, month domain.MonthKey, limit decimal.Decimal) (*domain.Budget, error) {
	args := m.Called(ctx, ownerID, month, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Budget), args.Error(1)
}

func (m *MockBudgetService) ListBudgets(ctx context.Context, ownerID string) ([]domain.Budget, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Budget), args.Error(1)
}

func (m *MockBudgetService) DeleteBudget(ctx context.Context, ownerID string, month domain.MonthKey) error {
	return m.Called(ctx, ownerID, month).Error(0)
}

var _ portssvc.BudgetSvcFacade = (*MockBudgetService)(nil)

// --- Mock DashboardService ---
type MockDashboardService struct {
	mock.Mock
}

func (m *MockDashboardService) GetDashboard(ctx context.Context, ownerID string, params domain.ViewParams) (*domain.ViewModel, error) {
	args := m.Called(ctx, ownerID, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ViewModel), args.Error(1)
}

func (m *MockDashboardService) BuildView(snapshot domain.Snapshot, params domain.ViewParams) domain.ViewModel {
	return m.Called(snapshot, params).Get(0).(domain.ViewModel)
}

var _ portssvc.DashboardSvc = (*MockDashboardService)(nil)

// fakeSnapshots delivers one snapshot per Subscribe call.
type fakeSnapshots struct {
	snapshot     domain.Snapshot
	unsubscribed chan struct{}
}

func (f *fakeSnapshots) LoadSnapshot(ctx context.Context, ownerID string) (domain.Snapshot, error) {
	return f.snapshot, nil
}

func (f *fakeSnapshots) Subscribe(ctx context.Context, ownerID string, onSnapshot func(domain.Snapshot)) (func(), error) {
	snap := f.snapshot
	snap.OwnerID = ownerID
	go onSnapshot(snap)
	return func() { close(f.unsubscribed) }, nil
}

var _ portssvc.SnapshotSvcFacade = (*fakeSnapshots)(nil)

// --- Mock TransferService ---
type MockTransferService struct {
	mock.Mock
}

func (m *MockTransferService) ExportTransactions(ctx context.Context, ownerID string, filter domain.DateFilter, w io.Writer) error {
	args := m.Called(ctx, ownerID, filter, w)
	if args.Error(0) == nil {
		_, _ = w.Write([]byte("PK-workbook"))
	}
	return args.Error(0)
}

func (m *MockTransferService) ImportTransactions(ctx context.Context, ownerID string, r io.Reader) (*dto.ImportTransactionsResponse, error) {
	body, _ := io.ReadAll(r)
	args := m.Called(ctx, ownerID, string(body))
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ImportTransactionsResponse), args.Error(1)
}

var _ portssvc.TransferSvc = (*MockTransferService)(nil)

// --- Mock AuthService ---
type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockAuthService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) Refresh(ctx context.Context, userID, refreshToken string) (*domain.Session, error) {
	args := m.Called(ctx, userID, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) Logout(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

func (m *MockAuthService) SignInWithGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Session, error) {
	args := m.Called(ctx, info)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Session), args.Error(1)
}

func (m *MockAuthService) OnAuthChange(observer func(domain.AuthEvent)) func() {
	return func() {}
}

var _ portssvc.AuthSvcFacade = (*MockAuthService)(nil)

// --- Mock GoogleOAuthService ---
type MockGoogleOAuthService struct {
	mock.Mock
}

func (m *MockGoogleOAuthService) GenerateStateString(ctx context.Context) (string, error) {
	args := m.Called(ctx)
	return args.String(0), args.Error(1)
}

func (m *MockGoogleOAuthService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return m.Called(ctx, state).String(0)
}

func (m *MockGoogleOAuthService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*oauth2.Token), args.Error(1)
}

func (m *MockGoogleOAuthService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GoogleUserInfo), args.Error(1)
}

func (m *MockGoogleOAuthService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	args := m.Called(ctx, idTokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*idtoken.Payload), args.Error(1)
}

var _ portssvc.GoogleOAuthHandlerSvcFacade = (*MockGoogleOAuthService)(nil)

// --- Mock UserService ---
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	args := m.Called(ctx, userID, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

var _ portssvc.UserSvcFacade = (*MockUserService)(nil)
