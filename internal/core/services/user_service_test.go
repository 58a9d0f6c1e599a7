package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	stored := &domain.User{UserID: "u1", Username: "ada", Email: "ada@example.com"}
	stored.LastUpdatedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	repo.On("FindUserByID", ctx, "u1").Return(stored, nil).Once()
	repo.On("UpdateUser", ctx, mock.MatchedBy(func(u domain.User) bool {
		return u.UserID == "u1" && u.Username == "Ada L." && u.LastUpdatedAt.After(stored.CreatedAt)
	})).Return(nil).Once()

	user, err := svc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Username: "  Ada L. "})

	require.NoError(t, err)
	assert.Equal(t, "Ada L.", user.Username)
	repo.AssertExpectations(t)
}

func TestUserService_UpdateProfile_Unchanged(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindUserByID", ctx, "u1").Return(&domain.User{UserID: "u1", Username: "ada"}, nil).Once()

	_, err := svc.UpdateProfile(ctx, "u1", dto.UpdateProfileRequest{Username: "ada"})

	require.NoError(t, err)
	repo.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserService_GetProfile_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(MockUserRepository)
	svc := services.NewUserService(repo)

	repo.On("FindUserByID", ctx, "ghost").Return(nil, apperrors.ErrNotFound).Once()

	_, err := svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.UpdateProfile(ctx, "ghost", dto.UpdateProfileRequest{Username: " "})
	assert.ErrorIs(t, err, apperrors.ErrValidation)
}
