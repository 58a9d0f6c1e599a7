package mapping

import (
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		OwnerID:       d.OwnerID,
		Description:   d.Description,
		Amount:        d.Amount,
		Category:      d.Category,
		Kind:          string(d.Kind),
		TxnDate:       domain.TruncateToDate(d.Date),
		AuditFields:   auditColumns(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
// Unknown kinds read back as expenses.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		OwnerID:       m.OwnerID,
		Description:   m.Description,
		Amount:        m.Amount,
		Category:      m.Category,
		Kind:          domain.ParseTransactionKind(m.Kind),
		Date:          domain.TruncateToDate(m.TxnDate),
		AuditFields:   auditFromColumns(m.AuditFields),
	}
}

func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
