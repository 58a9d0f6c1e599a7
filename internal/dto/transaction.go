package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to record a transaction.
// Amount accepts a JSON number or a numeric string; anything else is rejected.
type CreateTransactionRequest struct {
	Description string           `json:"description" binding:"required,max=200"`
	Amount      *decimal.Decimal `json:"amount" binding:"required,gte=0"`
	Category    string           `json:"category" binding:"max=50"`
	Kind        string           `json:"kind" binding:"omitempty,oneof=income expense"`
	Date        string           `json:"date" binding:"required,isodate"`
}

// UpdateTransactionRequest defines a partial update. Omitted fields are left unchanged.
type UpdateTransactionRequest struct {
	Description *string          `json:"description" binding:"omitempty,min=1,max=200"`
	Amount      *decimal.Decimal `json:"amount" binding:"omitempty,gte=0"`
	Category    *string          `json:"category" binding:"omitempty,max=50"`
	Kind        *string          `json:"kind" binding:"omitempty,oneof=income expense"`
	Date        *string          `json:"date" binding:"omitempty,isodate"`
}

// ToDomainUpdate converts the request into a domain update. Fields were
// validated by binding, so parse failures cannot occur here.
func (r UpdateTransactionRequest) ToDomainUpdate() domain.TransactionUpdate {
	u := domain.TransactionUpdate{
		Description: r.Description,
		Amount:      r.Amount,
		Category:    r.Category,
	}
	if r.Kind != nil {
		k := domain.ParseTransactionKind(*r.Kind)
		u.Kind = &k
	}
	if r.Date != nil {
		if d, err := domain.ParseDate(*r.Date); err == nil {
			u.Date = &d
		}
	}
	return u
}

// ListTransactionsParams defines query parameters for listing transactions.
type ListTransactionsParams struct {
	Limit     int    `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken string `form:"nextToken"`
	Month     string `form:"month" binding:"omitempty,monthkey"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID string          `json:"transactionID"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Category      string          `json:"category"`
	Kind          string          `json:"kind"`
	Date          string          `json:"date"`
	CreatedAt     time.Time       `json:"createdAt"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ListTransactionsResponse wraps one page of transactions.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to TransactionResponse DTO.
func ToTransactionResponse(txn *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Description:   txn.Description,
		Amount:        txn.Amount,
		Category:      txn.Category,
		Kind:          string(txn.Kind),
		Date:          txn.DateString(),
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}

// ToTransactionResponses converts a slice of domain.Transaction to []TransactionResponse.
func ToTransactionResponses(txns []domain.Transaction) []TransactionResponse {
	responses := make([]TransactionResponse, len(txns))
	for i := range txns {
		responses[i] = ToTransactionResponse(&txns[i])
	}
	return responses
}

// ImportRowError reports a spreadsheet row that was not imported.
type ImportRowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// ImportTransactionsResponse summarizes a spreadsheet import.
type ImportTransactionsResponse struct {
	Imported int              `json:"imported"`
	Rejected []ImportRowError `json:"rejected"`
}

// CategoriesResponse lists category suggestions.
type CategoriesResponse struct {
	Categories []string `json:"categories"`
}
