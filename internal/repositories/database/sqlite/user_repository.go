package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
)

const userColumns = `user_id, username, email, password_hash, auth_provider, provider_user_id,
	created_at, last_updated_at, refresh_token_hash, refresh_token_expiry_time`

type UserRepository struct {
	db *sql.DB
}

func newUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

var _ portsrepo.UserRepositoryFacade = (*UserRepository)(nil)

func (r *UserRepository) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	var (
		m                    models.User
		createdAt, updatedAt string
		expiry               sql.NullString
	)
	err := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE `+where, args...).Scan(
		&m.UserID, &m.Username, &m.Email, &m.PasswordHash, &m.AuthProvider, &m.ProviderUserID,
		&createdAt, &updatedAt, &m.RefreshTokenHash, &expiry,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	if m.CreatedAt, err = parseTime(createdAt); err != nil {
		return nil, err
	}
	if m.LastUpdatedAt, err = parseTime(updatedAt); err != nil {
		return nil, err
	}
	if m.RefreshTokenExpiryTime, err = nullTime(expiry); err != nil {
		return nil, err
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *UserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = ?`, userID)
}

func (r *UserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `lower(email) = ?`, strings.ToLower(email))
}

func (r *UserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, `auth_provider = ? AND provider_user_id = ?`, string(provider), providerUserID)
}

func (r *UserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (user_id, username, email, password_hash, auth_provider, provider_user_id, created_at, last_updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		m.UserID, m.Username, m.Email, m.PasswordHash, m.AuthProvider, m.ProviderUserID,
		formatTime(m.CreatedAt), formatTime(m.LastUpdatedAt),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET username = ?, auth_provider = ?, provider_user_id = ?, last_updated_at = ?
		WHERE user_id = ?`,
		m.Username, m.AuthProvider, m.ProviderUserID, formatTime(m.LastUpdatedAt), m.UserID,
	)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return requireAffected(res, "user "+m.UserID)
}

func (r *UserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token_hash = ?, refresh_token_expiry_time = ? WHERE user_id = ?`,
		refreshTokenHash, formatTime(expiresAt), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	return requireAffected(res, "user "+userID)
}

func (r *UserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = ?`, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	return requireAffected(res, "user "+userID)
}
