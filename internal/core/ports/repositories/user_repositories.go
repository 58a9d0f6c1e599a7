package repositories

import (
	"context"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
)

// UserReader looks users up. Misses are apperrors.ErrNotFound.
type UserReader interface {
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)

	// FindUserByEmail retrieves a user by email, compared case-insensitively.
	FindUserByEmail(ctx context.Context, email string) (*domain.User, error)

	// FindUserByProviderID retrieves a user linked to an external identity.
	FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error)
}

// UserWriter persists users.
type UserWriter interface {
	// SaveUser persists a new user. A taken email yields apperrors.ErrDuplicate.
	SaveUser(ctx context.Context, user domain.User) error

	// UpdateUser updates an existing user's profile and provider link.
	UpdateUser(ctx context.Context, user domain.User) error
}

// UserTokenManager stores the single active refresh token of a user.
type UserTokenManager interface {
	UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error
	ClearRefreshToken(ctx context.Context, userID string) error
}

// UserRepositoryFacade is everything the auth and profile services need.
type UserRepositoryFacade interface {
	UserReader
	UserWriter
	UserTokenManager
}
