package domain

import "time"

// AuthProvider names the identity source of a user account.
type AuthProvider string

const (
	ProviderLocal  AuthProvider = "LOCAL"
	ProviderGoogle AuthProvider = "GOOGLE"
)

// User represents an account holder.
type User struct {
	UserID         string       `json:"userID"` // Primary Key (UUID)
	Username       string       `json:"username"`
	Email          string       `json:"email"`
	PasswordHash   string       `json:"-"`
	AuthProvider   AuthProvider `json:"authProvider"`
	ProviderUserID string       `json:"-"`
	AuditFields

	RefreshTokenHash       string     `json:"-"`
	RefreshTokenExpiryTime *time.Time `json:"-"`
}

// GoogleUserInfo is the profile returned by Google's userinfo endpoint.
type GoogleUserInfo struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	Picture       string `json:"picture"`
}

// Session is the token pair handed to a signed-in client.
type Session struct {
	User                  *User     `json:"user"`
	AccessToken           string    `json:"accessToken"`
	AccessTokenExpiresAt  time.Time `json:"accessTokenExpiresAt"`
	RefreshToken          string    `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time `json:"refreshTokenExpiresAt"`
}

// AuthEventType enumerates identity state changes.
type AuthEventType string

const (
	AuthEventRegistered AuthEventType = "registered"
	AuthEventSignedIn   AuthEventType = "signed_in"
	AuthEventSignedOut  AuthEventType = "signed_out"
)

// AuthEvent is delivered to auth-change observers.
type AuthEvent struct {
	Type   AuthEventType
	UserID string
	At     time.Time
}
