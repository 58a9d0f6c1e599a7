package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"slices"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/xuri/excelize/v2"
)

const (
	// TransactionsSheet is the worksheet written by exports.
	TransactionsSheet = "Transactions"
	// MaxImportRows caps the data rows accepted in one workbook.
	MaxImportRows = 5000
)

var exportHeaders = []string{"Date", "Description", "Category", "Kind", "Amount"}

type importColumns struct {
	date, description, category, kind, amount int
}

type transferService struct {
	BaseService
	txnRepo portsrepo.TransactionReader
	txnSvc  portssvc.TransactionWriterSvc
}

func NewTransferService(txnRepo portsrepo.TransactionReader, txnSvc portssvc.TransactionWriterSvc) portssvc.TransferSvc {
	return &transferService{txnRepo: txnRepo, txnSvc: txnSvc}
}

var _ portssvc.TransferSvc = (*transferService)(nil)

func (s *transferService) ExportTransactions(ctx context.Context, ownerID string, filter domain.DateFilter, w io.Writer) error {
	txns, err := s.txnRepo.ListAllTransactions(ctx, ownerID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load transactions for export", slog.String("owner_id", ownerID))
		return fmt.Errorf("failed to load transactions: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName(f.GetSheetName(0), TransactionsSheet); err != nil {
		return fmt.Errorf("failed to name worksheet: %w", err)
	}

	if err := f.SetSheetRow(TransactionsSheet, "A1", &exportHeaders); err != nil {
		return fmt.Errorf("failed to write header row: %w", err)
	}

	row := 2
	for _, txn := range txns {
		if !filter.Matches(txn.Date) {
			continue
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return err
		}
		values := []any{txn.DateString(), txn.Description, txn.Category, string(txn.Kind), txn.Amount.String()}
		if err := f.SetSheetRow(TransactionsSheet, cell, &values); err != nil {
			return fmt.Errorf("failed to write row %d: %w", row, err)
		}
		row++
	}

	_ = f.SetColWidth(TransactionsSheet, "A", "A", 12)
	_ = f.SetColWidth(TransactionsSheet, "B", "B", 40)
	_ = f.SetColWidth(TransactionsSheet, "C", "D", 15)
	_ = f.SetColWidth(TransactionsSheet, "E", "E", 12)

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	s.LogInfo(ctx, "Transactions exported", slog.String("owner_id", ownerID), slog.Int("rows", row-2))
	return nil
}

// ImportTransactions reads the first worksheet. The header row names the
// columns; Date, Description and Amount are required, Category and Kind
// are optional. Rows that fail to parse are reported and skipped, the rest
// are stored together.
func (s *transferService) ImportTransactions(ctx context.Context, ownerID string, r io.Reader) (*dto.ImportTransactionsResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, apperrors.NewBadRequestError("file is not a readable XLSX workbook")
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, apperrors.NewBadRequestError("workbook has no worksheets")
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, apperrors.NewBadRequestError("failed to read worksheet")
	}
	if len(rows) == 0 {
		return nil, apperrors.NewBadRequestError("worksheet is empty")
	}
	if len(rows)-1 > MaxImportRows {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("too many rows (max %d)", MaxImportRows))
	}

	cols, err := mapImportColumns(rows[0])
	if err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	resp := &dto.ImportTransactionsResponse{Rejected: []dto.ImportRowError{}}
	valid := make([]domain.Transaction, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		sheetRow := i + 2
		if isBlankRow(cells) {
			continue
		}
		txn, err := parseImportRow(cells, cols)
		if err != nil {
			resp.Rejected = append(resp.Rejected, dto.ImportRowError{Row: sheetRow, Error: err.Error()})
			continue
		}
		txn.OwnerID = ownerID
		if err := txn.Validate(); err != nil {
			resp.Rejected = append(resp.Rejected, dto.ImportRowError{Row: sheetRow, Error: err.Error()})
			continue
		}
		valid = append(valid, txn)
	}

	if len(valid) > 0 {
		n, err := s.txnSvc.CreateTransactions(ctx, ownerID, valid)
		if err != nil {
			return nil, err
		}
		resp.Imported = n
	}

	s.LogInfo(ctx, "Transactions imported from workbook",
		slog.String("owner_id", ownerID),
		slog.Int("imported", resp.Imported),
		slog.Int("rejected", len(resp.Rejected)))
	return resp, nil
}

func mapImportColumns(header []string) (importColumns, error) {
	cols := importColumns{date: -1, description: -1, category: -1, kind: -1, amount: -1}
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "date":
			cols.date = i
		case "description":
			cols.description = i
		case "category":
			cols.category = i
		case "kind", "type":
			cols.kind = i
		case "amount":
			cols.amount = i
		}
	}

	var missing []string
	if cols.date < 0 {
		missing = append(missing, "Date")
	}
	if cols.description < 0 {
		missing = append(missing, "Description")
	}
	if cols.amount < 0 {
		missing = append(missing, "Amount")
	}
	if len(missing) > 0 {
		return cols, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}
	return cols, nil
}

func parseImportRow(cells []string, cols importColumns) (domain.Transaction, error) {
	cell := func(i int) string {
		if i < 0 || i >= len(cells) {
			return ""
		}
		return strings.TrimSpace(cells[i])
	}

	date, err := domain.ParseDate(cell(cols.date))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid date %q", cell(cols.date))
	}
	amount, err := utils.ParseAmount(cell(cols.amount))
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid amount %q", cell(cols.amount))
	}

	kind := domain.KindExpense
	if raw := strings.ToLower(cell(cols.kind)); raw != "" {
		if raw != string(domain.KindIncome) && raw != string(domain.KindExpense) {
			return domain.Transaction{}, fmt.Errorf("invalid kind %q", cell(cols.kind))
		}
		kind = domain.TransactionKind(raw)
	}

	return domain.Transaction{
		Description: cell(cols.description),
		Amount:      amount,
		Category:    cell(cols.category),
		Kind:        kind,
		Date:        date,
	}, nil
}

func isBlankRow(cells []string) bool {
	return !slices.ContainsFunc(cells, func(c string) bool {
		return strings.TrimSpace(c) != ""
	})
}
