package services

import (
	"context"

	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/dto"
)

// UserSvcFacade exposes the signed-in user's own profile.
type UserSvcFacade interface {
	GetProfile(ctx context.Context, userID string) (*domain.User, error)
	UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error)
}
