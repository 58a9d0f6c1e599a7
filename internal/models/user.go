package models

import "database/sql"

// User is a row of the users table.
type User struct {
	UserID         string         `db:"user_id"`
	Username       string         `db:"username"`
	Email          string         `db:"email"`
	PasswordHash   sql.NullString `db:"password_hash"`
	AuthProvider   string         `db:"auth_provider"`
	ProviderUserID sql.NullString `db:"provider_user_id"`
	AuditFields

	// Only the SHA-256 of the active refresh token is stored.
	RefreshTokenHash       sql.NullString `db:"refresh_token_hash"`
	RefreshTokenExpiryTime sql.NullTime   `db:"refresh_token_expiry_time"`
}
