package services_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows [][]any) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow(sheet, cell, &row))
	}
	buf := new(bytes.Buffer)
	require.NoError(t, f.Write(buf))
	return buf
}

func TestTransferService_ExportFiltersByMonth(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	repo.On("ListAllTransactions", ctx, "owner-1").Return([]domain.Transaction{
		{Description: "Lunch", Amount: decimal.RequireFromString("12.5"), Category: "Food", Kind: domain.KindExpense, Date: time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)},
		{Description: "Bonus", Amount: decimal.NewFromInt(300), Kind: domain.KindIncome, Date: time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)},
	}, nil).Once()
	svc := services.NewTransferService(repo, nil)

	buf := new(bytes.Buffer)
	require.NoError(t, svc.ExportTransactions(ctx, "owner-1", domain.DateFilter("2024-03"), buf))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(services.TransactionsSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Date", "Description", "Category", "Kind", "Amount"},
		{"2024-03-02", "Lunch", "Food", "expense", "12.5"},
	}, rows)
}

func TestTransferService_ImportRejectsMalformedRows(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	txnSvc := services.NewTransactionService(repo)
	repo.On("SaveTransactions", ctx, mock.MatchedBy(func(batch []domain.Transaction) bool {
		return len(batch) == 2 &&
			batch[0].Description == "Coffee" && batch[0].Amount.Equal(decimal.RequireFromString("3.5")) &&
			batch[1].Kind == domain.KindIncome && batch[1].Category == ""
	})).Return(nil).Once()
	svc := services.NewTransferService(repo, txnSvc)

	buf := workbook(t, [][]any{
		{"date", "Description", "Amount", "Category", "Type"},
		{"2024-03-01", "Coffee", "3.50", "Food", ""},
		{"2024-03-02", "Refund", "20", "", "income"},
		{"yesterday", "Bad date", "5", "", ""},
		{"2024-03-03", "Bad amount", "five", "", ""},
		{"2024-03-04", "", "5", "", ""},
		{"2024-03-05", "Bad kind", "5", "", "transfer"},
	})

	resp, err := svc.ImportTransactions(ctx, "owner-1", buf)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Rejected, 4)
	assert.Equal(t, 4, resp.Rejected[0].Row)
	assert.Contains(t, resp.Rejected[0].Error, "invalid date")
	assert.Equal(t, 5, resp.Rejected[1].Row)
	assert.Contains(t, resp.Rejected[1].Error, "invalid amount")
	assert.Equal(t, 6, resp.Rejected[2].Row)
	assert.Equal(t, 7, resp.Rejected[3].Row)
	repo.AssertExpectations(t)
}

func TestTransferService_ImportRejectsRowsTheStoreCannotHold(t *testing.T) {
	ctx := context.Background()
	repo := new(MockTransactionRepository)
	txnSvc := services.NewTransactionService(repo)
	repo.On("SaveTransactions", ctx, mock.MatchedBy(func(batch []domain.Transaction) bool {
		return len(batch) == 2 && batch[0].Description == "Groceries" && batch[1].Description == "Rent"
	})).Return(nil).Once()
	svc := services.NewTransferService(repo, txnSvc)

	buf := workbook(t, [][]any{
		{"Date", "Description", "Amount", "Category"},
		{"2024-03-01", "Groceries", "40", "Food"},
		{"2024-03-02", "Gadget", "99", strings.Repeat("c", domain.MaxCategoryLength+1)},
		{"2024-03-03", strings.Repeat("é", domain.MaxDescriptionLength+1), "1", ""},
		{"2024-03-04", "Windfall", "1000000000000000", ""},
		{"2024-03-05", "Rent", "800", strings.Repeat("ü", domain.MaxCategoryLength)},
	})

	resp, err := svc.ImportTransactions(ctx, "owner-1", buf)

	require.NoError(t, err)
	assert.Equal(t, 2, resp.Imported)
	require.Len(t, resp.Rejected, 3)
	assert.Equal(t, 3, resp.Rejected[0].Row)
	assert.Contains(t, resp.Rejected[0].Error, "category too long")
	assert.Equal(t, 4, resp.Rejected[1].Row)
	assert.Contains(t, resp.Rejected[1].Error, "description too long")
	assert.Equal(t, 5, resp.Rejected[2].Row)
	assert.Contains(t, resp.Rejected[2].Error, "amount too large")
	repo.AssertExpectations(t)
}

func TestTransferService_ImportMissingColumns(t *testing.T) {
	svc := services.NewTransferService(nil, nil)
	buf := workbook(t, [][]any{{"Description", "Category"}, {"x", "y"}})

	resp, err := svc.ImportTransactions(context.Background(), "owner-1", buf)

	assert.Nil(t, resp)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	assert.Contains(t, err.Error(), "Date")
	assert.Contains(t, err.Error(), "Amount")
}

func TestTransferService_ImportNotAWorkbook(t *testing.T) {
	svc := services.NewTransferService(nil, nil)

	_, err := svc.ImportTransactions(context.Background(), "owner-1", bytes.NewBufferString("date,amount\n"))

	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
