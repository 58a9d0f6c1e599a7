package aggregation_test

import (
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(t *testing.T, s string) time.Time {
	t.Helper()
	d, err := domain.ParseDate(s)
	require.NoError(t, err)
	return d
}

func txn(t *testing.T, kind domain.TransactionKind, amount string, on string, category string) domain.Transaction {
	t.Helper()
	return domain.Transaction{
		TransactionID: on + "-" + category + "-" + amount,
		OwnerID:       "owner-1",
		Description:   category + " purchase",
		Amount:        decimal.RequireFromString(amount),
		Category:      category,
		Kind:          kind,
		Date:          date(t, on),
	}
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...interface{}) {
	t.Helper()
	require.Truef(t, dec(want).Equal(got), "want %s, got %s %v", want, got.String(), msgAndArgs)
}
