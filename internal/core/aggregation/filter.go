package aggregation

import (
	"strings"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// FilterForDisplay narrows the transaction list shown to the user. An empty
// category or search matches everything. category is compared exactly
// against the grouping label; search is a case-insensitive substring of the
// description or category. The input slice is not modified.
func FilterForDisplay(txns []domain.Transaction, category, search string) []domain.Transaction {
	search = strings.ToLower(strings.TrimSpace(search))
	out := make([]domain.Transaction, 0, len(txns))
	for _, t := range txns {
		if category != "" && t.CategoryLabel() != category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.Description), search) &&
			!strings.Contains(strings.ToLower(t.Category), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}
