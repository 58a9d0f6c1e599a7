package domain_test

import (
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func validTransaction() domain.Transaction {
	return domain.Transaction{
		OwnerID:     "owner-1",
		Description: "Lunch",
		Amount:      decimal.RequireFromString("12.5"),
		Category:    "Food",
		Kind:        domain.KindExpense,
		Date:        time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
	}
}

func TestTransactionValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*domain.Transaction)
		wantErr string
	}{
		{name: "valid", mutate: func(*domain.Transaction) {}},
		{name: "missing owner", mutate: func(tx *domain.Transaction) { tx.OwnerID = "" }, wantErr: "owner ID"},
		{name: "blank description", mutate: func(tx *domain.Transaction) { tx.Description = "  " }, wantErr: "description is required"},
		{
			name:   "multibyte description at limit",
			mutate: func(tx *domain.Transaction) { tx.Description = strings.Repeat("é", domain.MaxDescriptionLength) },
		},
		{
			name:    "description over limit",
			mutate:  func(tx *domain.Transaction) { tx.Description = strings.Repeat("a", domain.MaxDescriptionLength+1) },
			wantErr: "description too long",
		},
		{
			name:   "multibyte category at limit",
			mutate: func(tx *domain.Transaction) { tx.Category = strings.Repeat("ü", domain.MaxCategoryLength) },
		},
		{
			name:    "category over limit",
			mutate:  func(tx *domain.Transaction) { tx.Category = strings.Repeat("c", domain.MaxCategoryLength+1) },
			wantErr: "category too long",
		},
		{name: "negative amount", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.NewFromInt(-1) }, wantErr: "negative"},
		{name: "four decimal places", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("0.0001") }},
		{name: "trailing zeros beyond scale", mutate: func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("1.500000") }},
		{
			name:    "five decimal places",
			mutate:  func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("0.00001") },
			wantErr: "decimal places",
		},
		{
			name:    "amount beyond column range",
			mutate:  func(tx *domain.Transaction) { tx.Amount = decimal.RequireFromString("1000000000000000") },
			wantErr: "amount too large",
		},
		{name: "unknown kind", mutate: func(tx *domain.Transaction) { tx.Kind = "transfer" }, wantErr: "kind"},
		{name: "missing date", mutate: func(tx *domain.Transaction) { tx.Date = time.Time{} }, wantErr: "date is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tx := validTransaction()
			tt.mutate(&tx)
			err := tx.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantErr)
			}
		})
	}
}
