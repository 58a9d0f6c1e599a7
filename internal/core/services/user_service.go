package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
)

type userService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
}

func NewUserService(userRepo portsrepo.UserRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

func (s *userService) UpdateProfile(ctx context.Context, userID string, req dto.UpdateProfileRequest) (*domain.User, error) {
	username := strings.TrimSpace(req.Username)
	if username == "" {
		return nil, apperrors.NewBadRequestError("username is required")
	}

	user, err := s.GetProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.Username == username {
		return user, nil
	}

	user.Username = username
	user.Touch(nowUTC())
	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		s.LogError(ctx, err, "Failed to update profile")
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	s.LogInfo(ctx, "Profile updated")
	return user, nil
}
