package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

// TransactionKind tells whether money came in or went out.
type TransactionKind string

const (
	KindExpense TransactionKind = "expense"
	KindIncome  TransactionKind = "income"
)

// Column limits shared by both stores. Lengths count characters, not bytes.
const (
	MaxDescriptionLength = 200
	MaxCategoryLength    = 50
	// MaxAmountScale is the number of decimal places an amount may carry.
	MaxAmountScale = 4
	// maxAmountDigits is the integer part NUMERIC(19, 4) can hold.
	maxAmountDigits = 15
)

var amountCeiling = decimal.New(1, maxAmountDigits)

// UncategorizedLabel buckets transactions that carry no category.
const UncategorizedLabel = "Uncategorized"

// DefaultCategories are offered to users before they have created any of their own.
var DefaultCategories = []string{"Food", "Transport", "Utilities", "Entertainment", "Health"}

// ParseTransactionKind normalizes raw input. Anything other than income is an expense.
func ParseTransactionKind(s string) TransactionKind {
	if TransactionKind(strings.ToLower(strings.TrimSpace(s))) == KindIncome {
		return KindIncome
	}
	return KindExpense
}

// Transaction is a single income or expense record owned by one user.
type Transaction struct {
	TransactionID string          `json:"transactionID"` // Primary Key (UUID), assigned by the store
	OwnerID       string          `json:"ownerID"`       // FK -> users.user_id
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"` // Non-negative magnitude; direction comes from Kind
	Category      string          `json:"category"`
	Kind          TransactionKind `json:"kind"`
	Date          time.Time       `json:"date"` // Calendar date, UTC midnight
	AuditFields
}

// IsIncome reports whether the transaction adds to the balance.
// Missing or unknown kinds count as expenses.
func (t Transaction) IsIncome() bool {
	return t.Kind == KindIncome
}

// Month returns the YYYY-MM bucket of the transaction date.
func (t Transaction) Month() MonthKey {
	return MonthKeyOf(t.Date)
}

// DateString is the canonical YYYY-MM-DD form of the transaction date.
func (t Transaction) DateString() string {
	return t.Date.Format(DateLayout)
}

// CategoryLabel returns the category used for grouping, substituting the
// uncategorized label for blank values.
func (t Transaction) CategoryLabel() string {
	if strings.TrimSpace(t.Category) == "" {
		return UncategorizedLabel
	}
	return t.Category
}

// Validate checks the invariants the store relies on.
func (t Transaction) Validate() error {
	if t.OwnerID == "" {
		return errors.New("owner ID is required")
	}
	if strings.TrimSpace(t.Description) == "" {
		return errors.New("description is required")
	}
	if utf8.RuneCountInString(t.Description) > MaxDescriptionLength {
		return fmt.Errorf("description too long (max %d characters)", MaxDescriptionLength)
	}
	if utf8.RuneCountInString(t.Category) > MaxCategoryLength {
		return fmt.Errorf("category too long (max %d characters)", MaxCategoryLength)
	}
	if t.Amount.IsNegative() {
		return errors.New("amount must not be negative")
	}
	if !t.Amount.Equal(t.Amount.Truncate(MaxAmountScale)) {
		return fmt.Errorf("amount has more than %d decimal places", MaxAmountScale)
	}
	if t.Amount.GreaterThanOrEqual(amountCeiling) {
		return errors.New("amount too large")
	}
	if t.Kind != KindIncome && t.Kind != KindExpense {
		return errors.New("kind must be income or expense")
	}
	if t.Date.IsZero() {
		return errors.New("date is required")
	}
	return nil
}

// TransactionUpdate carries the fields of a partial update. Nil fields are left unchanged.
type TransactionUpdate struct {
	Description *string
	Amount      *decimal.Decimal
	Category    *string
	Kind        *TransactionKind
	Date        *time.Time
}

// Apply returns a copy of t with the non-nil fields of u applied.
func (u TransactionUpdate) Apply(t Transaction) Transaction {
	if u.Description != nil {
		t.Description = *u.Description
	}
	if u.Amount != nil {
		t.Amount = *u.Amount
	}
	if u.Category != nil {
		t.Category = *u.Category
	}
	if u.Kind != nil {
		t.Kind = *u.Kind
	}
	if u.Date != nil {
		t.Date = *u.Date
	}
	return t
}

// IsEmpty reports whether the update changes nothing.
func (u TransactionUpdate) IsEmpty() bool {
	return u.Description == nil && u.Amount == nil && u.Category == nil && u.Kind == nil && u.Date == nil
}
