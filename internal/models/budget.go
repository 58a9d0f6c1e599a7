package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Budget is a row of the budgets table, keyed by (owner_id, month).
type Budget struct {
	OwnerID       string          `db:"owner_id"`
	Month         string          `db:"month"`
	LimitAmount   decimal.Decimal `db:"limit_amount"`
	LastUpdatedAt time.Time       `db:"last_updated_at"`
}
