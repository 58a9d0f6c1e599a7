package services

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
	"golang.org/x/oauth2"
	"google.golang.org/api/idtoken"
)

// AuthSvcFacade is the identity provider: accounts, sessions and auth-change notifications.
type AuthSvcFacade interface {
	Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, email, password string) (*domain.Session, error)
	Refresh(ctx context.Context, userID, refreshToken string) (*domain.Session, error)
	Logout(ctx context.Context, userID string) error
	// SignInWithGoogle finds or creates the user behind a verified Google identity.
	SignInWithGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Session, error)
	// OnAuthChange registers an observer and returns a function that removes it.
	OnAuthChange(observer func(domain.AuthEvent)) (unregister func())
}

// TokenSvcFacade issues access and refresh tokens.
type TokenSvcFacade interface {
	GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error)
	// GenerateRefreshToken returns a raw refresh token, the hash to store and its expiry.
	GenerateRefreshToken(ctx context.Context, user *domain.User) (string, string, time.Time, error)
	// ValidateAndParseRefreshToken returns the owner of an unexpired refresh token.
	ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error)
}

// GoogleOAuthHandlerSvcFacade talks to Google for the two sign-in flows:
// authorization code exchange and direct ID token validation.
type GoogleOAuthHandlerSvcFacade interface {
	// GenerateStateString returns the CSRF state sent with the consent URL.
	GenerateStateString(ctx context.Context) (string, error)
	GetGoogleLoginURL(ctx context.Context, state string) string
	ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error)
	GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error)
	// ValidateGoogleIDToken checks signature and audience against our client ID.
	ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error)
}
