package domain

import "time"

// AuditFields are the creation and last-write instants of a stored record.
type AuditFields struct {
	CreatedAt     time.Time `json:"createdAt"`
	LastUpdatedAt time.Time `json:"lastUpdatedAt"`
}

// NewAuditFields stamps a record created at now.
func NewAuditFields(now time.Time) AuditFields {
	now = now.UTC()
	return AuditFields{CreatedAt: now, LastUpdatedAt: now}
}

// Touch records a write at now. CreatedAt never changes.
func (a *AuditFields) Touch(now time.Time) {
	a.LastUpdatedAt = now.UTC()
}
