package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	"github.com/SscSPs/fintrack/internal/models"
	"github.com/SscSPs/fintrack/internal/utils/mapping"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `user_id, username, email, password_hash, auth_provider, provider_user_id,
	created_at, last_updated_at, refresh_token_hash, refresh_token_expiry_time`

type PgxUserRepository struct {
	BaseRepository
}

func newPgxUserRepository(pool *pgxpool.Pool) *PgxUserRepository {
	return &PgxUserRepository{BaseRepository{Pool: pool}}
}

// Ensure PgxUserRepository implements portsrepo.UserRepositoryFacade
var _ portsrepo.UserRepositoryFacade = (*PgxUserRepository)(nil)

func (r *PgxUserRepository) findOne(ctx context.Context, where string, args ...any) (*domain.User, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+userColumns+` FROM users WHERE `+where+`;`, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query user: %w", err)
	}
	m, err := pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[models.User])
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan user: %w", err)
	}
	user := mapping.ToDomainUser(m)
	return &user, nil
}

func (r *PgxUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return r.findOne(ctx, `user_id = $1`, userID)
}

func (r *PgxUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.findOne(ctx, `lower(email) = $1`, strings.ToLower(email))
}

func (r *PgxUserRepository) FindUserByProviderID(ctx context.Context, provider domain.AuthProvider, providerUserID string) (*domain.User, error) {
	return r.findOne(ctx, `auth_provider = $1 AND provider_user_id = $2`, string(provider), providerUserID)
}

func (r *PgxUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		INSERT INTO users (user_id, username, email, password_hash, auth_provider, provider_user_id, created_at, last_updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.UserID, m.Username, m.Email, m.PasswordHash, m.AuthProvider, m.ProviderUserID, m.CreatedAt, m.LastUpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email %s already registered", apperrors.ErrDuplicate, m.Email)
		}
		return fmt.Errorf("failed to save user: %w", err)
	}
	return nil
}

func (r *PgxUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	m := mapping.ToModelUser(user)
	query := `
		UPDATE users
		SET username = $1, auth_provider = $2, provider_user_id = $3, last_updated_at = $4
		WHERE user_id = $5;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, m.Username, m.AuthProvider, m.ProviderUserID, m.LastUpdatedAt, m.UserID)
	if err != nil {
		return fmt.Errorf("failed to execute update user query: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) UpdateRefreshToken(ctx context.Context, userID string, refreshTokenHash string, expiresAt time.Time) error {
	query := `UPDATE users SET refresh_token_hash = $1, refresh_token_expiry_time = $2 WHERE user_id = $3;`
	cmdTag, err := r.Pool.Exec(ctx, query, refreshTokenHash, expiresAt.UTC(), userID)
	if err != nil {
		return fmt.Errorf("failed to update refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}

func (r *PgxUserRepository) ClearRefreshToken(ctx context.Context, userID string) error {
	query := `UPDATE users SET refresh_token_hash = NULL, refresh_token_expiry_time = NULL WHERE user_id = $1;`
	cmdTag, err := r.Pool.Exec(ctx, query, userID)
	if err != nil {
		return fmt.Errorf("failed to clear refresh token: %w", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return fmt.Errorf("user not found: %w", apperrors.ErrNotFound)
	}
	return nil
}
