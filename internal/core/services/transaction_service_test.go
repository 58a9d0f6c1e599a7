package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/changefeed"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/utils/pagination"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type TransactionServiceTestSuite struct {
	suite.Suite
	mockRepo *MockTransactionRepository
	feed     *changefeed.MemoryFeed
	events   <-chan changefeed.Event
	stop     func()
	service  portssvc.TransactionSvcFacade
	ownerID  string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.ownerID = uuid.NewString()
	suite.mockRepo = new(MockTransactionRepository)
	suite.feed = changefeed.NewMemoryFeed()
	suite.events, suite.stop = suite.feed.Subscribe(suite.ownerID)
	suite.service = services.NewTransactionService(suite.mockRepo, services.WithTransactionFeed(suite.feed))
}

func (suite *TransactionServiceTestSuite) TearDownTest() {
	suite.stop()
}

func amountPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func strPtr(s string) *string { return &s }

// --- CreateTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestCreateTransaction_Success() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{
		Description: "  Groceries ",
		Amount:      amountPtr("42.50"),
		Category:    "Food",
		Date:        "2024-03-05",
	}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.OwnerID == suite.ownerID &&
			txn.Description == "Groceries" &&
			txn.Amount.Equal(decimal.RequireFromString("42.5")) &&
			txn.Kind == domain.KindExpense &&
			txn.DateString() == "2024-03-05" &&
			txn.TransactionID != "" &&
			!txn.CreatedAt.IsZero()
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.Require().NotNil(txn)
	_, parseErr := uuid.Parse(txn.TransactionID)
	suite.NoError(parseErr)

	event := expectEvent(suite.T(), suite.events)
	suite.Equal(suite.ownerID, event.OwnerID)
	suite.Equal(changefeed.CollectionTransactions, event.Collection)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeKind() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Description: "Salary", Amount: amountPtr("1000"), Kind: "income", Date: "2024-03-01"}

	suite.mockRepo.On("SaveTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Kind == domain.KindIncome
	})).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().NoError(err)
	suite.True(txn.IsIncome())
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ValidationErrors() {
	ctx := context.Background()
	cases := map[string]dto.CreateTransactionRequest{
		"missing amount":    {Description: "x", Date: "2024-03-01"},
		"bad date":          {Description: "x", Amount: amountPtr("1"), Date: "03/01/2024"},
		"negative amount":   {Description: "x", Amount: amountPtr("-1"), Date: "2024-03-01"},
		"blank description": {Description: "   ", Amount: amountPtr("1"), Date: "2024-03-01"},
		"five decimals":     {Description: "x", Amount: amountPtr("0.12345"), Date: "2024-03-01"},
		"long category":     {Description: "x", Amount: amountPtr("1"), Category: strings.Repeat("c", 51), Date: "2024-03-01"},
	}
	for name, req := range cases {
		suite.Run(name, func() {
			txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)
			suite.Nil(txn)
			suite.ErrorIs(err, apperrors.ErrValidation)
		})
	}
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
	expectNoEvent(suite.T(), suite.events)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SaveError() {
	ctx := context.Background()
	req := dto.CreateTransactionRequest{Description: "x", Amount: amountPtr("1"), Date: "2024-03-01"}
	suite.mockRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(assert.AnError).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.ownerID, req)

	suite.Require().Error(err)
	suite.Nil(txn)
	suite.ErrorIs(err, assert.AnError)
	expectNoEvent(suite.T(), suite.events)
}

// --- ListTransactions Tests ---
func (suite *TransactionServiceTestSuite) TestListTransactions_ReturnsNextTokenWhenMoreRows() {
	ctx := context.Background()
	base := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	rows := []domain.Transaction{
		{TransactionID: "c", AuditFields: domain.AuditFields{CreatedAt: base.Add(2 * time.Minute)}},
		{TransactionID: "b", AuditFields: domain.AuditFields{CreatedAt: base.Add(time.Minute)}},
		{TransactionID: "a", AuditFields: domain.AuditFields{CreatedAt: base}},
	}
	suite.mockRepo.On("ListTransactions", ctx, suite.ownerID, portsrepo.TransactionPageQuery{Limit: 3}).Return(rows, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.ownerID, dto.ListTransactionsParams{Limit: 2})

	suite.Require().NoError(err)
	suite.Len(resp.Transactions, 2)
	suite.Require().NotNil(resp.NextToken)
	createdAt, id, err := pagination.DecodeCursor(*resp.NextToken)
	suite.Require().NoError(err)
	suite.Equal("b", id)
	suite.True(createdAt.Equal(rows[1].CreatedAt))
}

func (suite *TransactionServiceTestSuite) TestListTransactions_PassesCursorAndMonth() {
	ctx := context.Background()
	cursorTime := time.Date(2024, 3, 10, 12, 0, 0, 0, time.UTC)
	token := pagination.EncodeCursor(cursorTime, "b")

	suite.mockRepo.On("ListTransactions", ctx, suite.ownerID, mock.MatchedBy(func(q portsrepo.TransactionPageQuery) bool {
		return q.Limit == 21 && q.AfterID == "b" && q.AfterCreatedAt.Equal(cursorTime) && q.Month == "2024-03"
	})).Return([]domain.Transaction{}, nil).Once()

	resp, err := suite.service.ListTransactions(ctx, suite.ownerID, dto.ListTransactionsParams{Limit: 20, NextToken: token, Month: "2024-03"})

	suite.Require().NoError(err)
	suite.Empty(resp.Transactions)
	suite.Nil(resp.NextToken)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestListTransactions_InvalidToken() {
	resp, err := suite.service.ListTransactions(context.Background(), suite.ownerID, dto.ListTransactionsParams{Limit: 5, NextToken: "%%%"})

	suite.Nil(resp)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- ListCategories Tests ---
func (suite *TransactionServiceTestSuite) TestListCategories_MergesDefaults() {
	ctx := context.Background()
	suite.mockRepo.On("ListCategories", ctx, suite.ownerID).Return([]string{"Rent", "Food", "", "Books"}, nil).Once()

	categories, err := suite.service.ListCategories(ctx, suite.ownerID)

	suite.Require().NoError(err)
	suite.Equal([]string{"Food", "Transport", "Utilities", "Entertainment", "Health", "Books", "Rent"}, categories)
	suite.Equal("Food", domain.DefaultCategories[0], "defaults must not be mutated")
}

// --- UpdateTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestUpdateTransaction_Success() {
	ctx := context.Background()
	existing := &domain.Transaction{
		TransactionID: "t1",
		OwnerID:       suite.ownerID,
		Description:   "Taxi",
		Amount:        decimal.NewFromInt(12),
		Category:      "Transport",
		Kind:          domain.KindExpense,
		Date:          time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, "t1").Return(existing, nil).Once()
	suite.mockRepo.On("UpdateTransaction", ctx, mock.MatchedBy(func(txn domain.Transaction) bool {
		return txn.Amount.Equal(decimal.NewFromInt(15)) && txn.Description == "Taxi" && txn.DateString() == "2024-03-02"
	})).Return(nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.ownerID, "t1", dto.UpdateTransactionRequest{
		Amount: amountPtr("15"),
		Date:   strPtr("2024-03-02"),
	})

	suite.Require().NoError(err)
	suite.Equal("15", updated.Amount.String())
	expectEvent(suite.T(), suite.events)
	suite.mockRepo.AssertExpectations(suite.T())
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_NotFound() {
	ctx := context.Background()
	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, "missing").Return(nil, apperrors.ErrNotFound).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.ownerID, "missing", dto.UpdateTransactionRequest{Amount: amountPtr("1")})

	suite.Nil(updated)
	suite.ErrorIs(err, apperrors.ErrNotFound)
	expectNoEvent(suite.T(), suite.events)
}

func (suite *TransactionServiceTestSuite) TestUpdateTransaction_EmptyUpdateIsNoop() {
	ctx := context.Background()
	existing := &domain.Transaction{TransactionID: "t1", OwnerID: suite.ownerID}
	suite.mockRepo.On("FindTransactionByID", ctx, suite.ownerID, "t1").Return(existing, nil).Once()

	updated, err := suite.service.UpdateTransaction(ctx, suite.ownerID, "t1", dto.UpdateTransactionRequest{})

	suite.Require().NoError(err)
	suite.Equal(existing, updated)
	suite.mockRepo.AssertNotCalled(suite.T(), "UpdateTransaction", mock.Anything, mock.Anything)
	expectNoEvent(suite.T(), suite.events)
}

// --- DeleteTransaction Tests ---
func (suite *TransactionServiceTestSuite) TestDeleteTransaction_PublishesChange() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.ownerID, "t1").Return(nil).Once()

	suite.Require().NoError(suite.service.DeleteTransaction(ctx, suite.ownerID, "t1"))
	expectEvent(suite.T(), suite.events)
}

func (suite *TransactionServiceTestSuite) TestDeleteTransaction_OtherOwnerIsNotFound() {
	ctx := context.Background()
	suite.mockRepo.On("DeleteTransaction", ctx, suite.ownerID, "foreign").Return(apperrors.ErrNotFound).Once()

	err := suite.service.DeleteTransaction(ctx, suite.ownerID, "foreign")

	suite.ErrorIs(err, apperrors.ErrNotFound)
	expectNoEvent(suite.T(), suite.events)
}

// --- CreateTransactions Tests ---
func (suite *TransactionServiceTestSuite) TestCreateTransactions_StampsBatch() {
	ctx := context.Background()
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	input := []domain.Transaction{
		{Description: "a", Amount: decimal.NewFromInt(1), Kind: domain.KindExpense, Date: date},
		{Description: "b", Amount: decimal.NewFromInt(2), Kind: domain.KindIncome, Date: date},
	}
	suite.mockRepo.On("SaveTransactions", ctx, mock.MatchedBy(func(batch []domain.Transaction) bool {
		return len(batch) == 2 &&
			batch[0].OwnerID == suite.ownerID &&
			batch[0].TransactionID != batch[1].TransactionID &&
			batch[1].CreatedAt.After(batch[0].CreatedAt)
	})).Return(nil).Once()

	n, err := suite.service.CreateTransactions(ctx, suite.ownerID, input)

	suite.Require().NoError(err)
	suite.Equal(2, n)
	suite.Empty(input[0].OwnerID, "input slice must not be modified")
	expectEvent(suite.T(), suite.events)
}

func (suite *TransactionServiceTestSuite) TestCreateTransactions_Empty() {
	n, err := suite.service.CreateTransactions(context.Background(), suite.ownerID, nil)

	suite.NoError(err)
	suite.Zero(n)
	expectNoEvent(suite.T(), suite.events)
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
