package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction is a row of the transactions table.
type Transaction struct {
	TransactionID string          `db:"transaction_id"`
	OwnerID       string          `db:"owner_id"`
	Description   string          `db:"description"`
	Amount        decimal.Decimal `db:"amount"`
	Category      string          `db:"category"`
	Kind          string          `db:"kind"`
	TxnDate       time.Time       `db:"txn_date"`
	AuditFields
}
