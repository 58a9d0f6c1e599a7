package services

import (
	"context"
	"io"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
)

// TransferSvc moves transactions in and out as XLSX workbooks.
type TransferSvc interface {
	ExportTransactions(ctx context.Context, ownerID string, filter domain.DateFilter, w io.Writer) error
	// ImportTransactions stores every valid row and reports the rejected ones.
	ImportTransactions(ctx context.Context, ownerID string, r io.Reader) (*dto.ImportTransactionsResponse, error)
}
