package aggregation_test

import (
	"testing"

	"github.com/SscSPs/fintrack/internal/core/aggregation"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestFilterForDisplay(t *testing.T) {
	coffee := txn(t, domain.KindExpense, "4", "2024-01-01", "Food")
	coffee.Description = "Morning Coffee"
	bus := txn(t, domain.KindExpense, "2", "2024-01-01", "Transport")
	bus.Description = "Bus ticket"
	gift := txn(t, domain.KindIncome, "50", "2024-01-01", "")
	gift.Description = "Birthday gift"
	txns := []domain.Transaction{coffee, bus, gift}

	tests := []struct {
		name     string
		category string
		search   string
		want     []domain.Transaction
	}{
		{"no filters", "", "", txns},
		{"category exact", "Food", "", []domain.Transaction{coffee}},
		{"category is case sensitive", "food", "", []domain.Transaction{}},
		{"uncategorized label", domain.UncategorizedLabel, "", []domain.Transaction{gift}},
		{"search description ignores case", "", "COFFEE", []domain.Transaction{coffee}},
		{"search category", "", "transp", []domain.Transaction{bus}},
		{"category and search", "Food", "bus", []domain.Transaction{}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, aggregation.FilterForDisplay(txns, tc.category, tc.search))
		})
	}
}
