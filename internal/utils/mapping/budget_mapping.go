package mapping

import (
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/models"
)

func ToModelBudget(d domain.Budget) models.Budget {
	return models.Budget{
		OwnerID:       d.OwnerID,
		Month:         string(d.Month),
		LimitAmount:   d.Limit,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

func ToDomainBudget(m models.Budget) domain.Budget {
	return domain.Budget{
		OwnerID:       m.OwnerID,
		Month:         domain.MonthKey(m.Month),
		Limit:         m.LimitAmount,
		LastUpdatedAt: m.LastUpdatedAt.UTC(),
	}
}

func ToDomainBudgetSlice(ms []models.Budget) []domain.Budget {
	ds := make([]domain.Budget, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainBudget(m)
	}
	return ds
}
