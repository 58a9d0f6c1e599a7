package mapping

import (
	"database/sql"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	m := models.User{
		UserID:         d.UserID,
		Username:       d.Username,
		Email:          d.Email,
		PasswordHash:   nullString(d.PasswordHash),
		AuthProvider:   string(d.AuthProvider),
		ProviderUserID: nullString(d.ProviderUserID),
		AuditFields:    auditColumns(d.AuditFields),
	}
	m.RefreshTokenHash = nullString(d.RefreshTokenHash)
	if d.RefreshTokenExpiryTime != nil {
		m.RefreshTokenExpiryTime = sql.NullTime{Time: *d.RefreshTokenExpiryTime, Valid: true}
	}
	return m
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	d := domain.User{
		UserID:           m.UserID,
		Username:         m.Username,
		Email:            m.Email,
		PasswordHash:     m.PasswordHash.String,
		AuthProvider:     domain.AuthProvider(m.AuthProvider),
		ProviderUserID:   m.ProviderUserID.String,
		AuditFields:      auditFromColumns(m.AuditFields),
		RefreshTokenHash: m.RefreshTokenHash.String,
	}
	if m.RefreshTokenExpiryTime.Valid {
		t := m.RefreshTokenExpiryTime.Time
		d.RefreshTokenExpiryTime = &t
	}
	return d
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func auditColumns(a domain.AuditFields) models.AuditFields {
	return models.AuditFields{CreatedAt: a.CreatedAt.UTC(), LastUpdatedAt: a.LastUpdatedAt.UTC()}
}

// auditFromColumns reads timestamps back in UTC whatever zone the driver returned.
func auditFromColumns(m models.AuditFields) domain.AuditFields {
	return domain.AuditFields{CreatedAt: m.CreatedAt.UTC(), LastUpdatedAt: m.LastUpdatedAt.UTC()}
}
