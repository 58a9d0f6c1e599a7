package dto

import (
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// RegisterRequest is the sign-up payload.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=50"`
	Email    string `json:"email" binding:"required,email,max=254"`
	Password string `json:"password" binding:"required,min=6,max=72"`
}

// LoginRequest is the email/password sign-in payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// RefreshTokenRequest carries the refresh token when it is not sent as a cookie.
type RefreshTokenRequest struct {
	UserID       string `json:"userID" binding:"required"`
	RefreshToken string `json:"refreshToken"`
}

// GoogleExchangeCodeRequest carries an OAuth authorization code from the front end.
type GoogleExchangeCodeRequest struct {
	Code string `json:"code" binding:"required"`
}

// GoogleIDTokenRequest carries a Google ID token obtained by the front end.
type GoogleIDTokenRequest struct {
	IDToken string `json:"idToken" binding:"required"`
}

// GoogleLoginURLResponse is the consent screen URL and its CSRF state.
type GoogleLoginURLResponse struct {
	URL   string `json:"url"`
	State string `json:"state"`
}

// UpdateProfileRequest changes the display name of the signed-in user.
type UpdateProfileRequest struct {
	Username string `json:"username" binding:"required,min=1,max=50"`
}

type UserResponse struct {
	UserID       string    `json:"userID"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	AuthProvider string    `json:"authProvider"`
	CreatedAt    time.Time `json:"createdAt"`
}

func ToUserResponse(user *domain.User) UserResponse {
	return UserResponse{
		UserID:       user.UserID,
		Username:     user.Username,
		Email:        user.Email,
		AuthProvider: string(user.AuthProvider),
		CreatedAt:    user.CreatedAt,
	}
}

// LoginResponse represents the response for a successful sign-in or token refresh.
type LoginResponse struct {
	Token                 string       `json:"token"`
	ExpiresAt             time.Time    `json:"expiresAt"`
	RefreshToken          string       `json:"refreshToken"`
	RefreshTokenExpiresAt time.Time    `json:"refreshTokenExpiresAt"`
	User                  UserResponse `json:"user"`
}

func ToLoginResponse(s *domain.Session) LoginResponse {
	return LoginResponse{
		Token:                 s.AccessToken,
		ExpiresAt:             s.AccessTokenExpiresAt,
		RefreshToken:          s.RefreshToken,
		RefreshTokenExpiresAt: s.RefreshTokenExpiresAt,
		User:                  ToUserResponse(s.User),
	}
}
