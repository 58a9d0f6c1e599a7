package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portsrepo "github.com/SscSPs/fintrack/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/SscSPs/fintrack/internal/utils"
	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/idtoken"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

// tokenService implements the TokenSvcFacade for handling JWT and refresh tokens.
type tokenService struct {
	cfg      *config.Config
	userRepo portsrepo.UserReader
}

// NewTokenService creates a new instance of tokenService.
func NewTokenService(cfg *config.Config, userRepo portsrepo.UserReader) portssvc.TokenSvcFacade {
	return &tokenService{
		cfg:      cfg,
		userRepo: userRepo,
	}
}

// GenerateAccessToken creates a new JWT access token for the given user.
func (s *tokenService) GenerateAccessToken(ctx context.Context, user *domain.User) (string, time.Time, error) {
	accessToken, expiresAt, err := utils.GenerateJWT(user.UserID, s.cfg.JWTSecret, s.cfg.JWTExpiryDuration, s.cfg.JWTIssuer)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to generate access token: %w", err)
	}
	return accessToken, expiresAt, nil
}

// GenerateRefreshToken creates a new refresh token for the given user.
// Only the returned hash is meant to be stored.
func (s *tokenService) GenerateRefreshToken(ctx context.Context, user *domain.User) (string, string, time.Time, error) {
	raw, hash, err := utils.NewRefreshToken()
	if err != nil {
		return "", "", time.Time{}, fmt.Errorf("failed to generate refresh token: %w", err)
	}
	return raw, hash, time.Now().Add(s.cfg.RefreshTokenExpiryDuration), nil
}

// ValidateAndParseRefreshToken validates a refresh token string and returns the associated user.
func (s *tokenService) ValidateAndParseRefreshToken(ctx context.Context, userID string, refreshTokenString string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to retrieve user for refresh token validation: %w", err)
	}

	if user.RefreshTokenHash == "" || user.RefreshTokenExpiryTime == nil {
		return nil, apperrors.ErrUnauthorized
	}
	if time.Now().After(*user.RefreshTokenExpiryTime) {
		return nil, apperrors.ErrRefreshTokenExpired
	}
	if !utils.CompareRefreshTokenHash(refreshTokenString, user.RefreshTokenHash) {
		return nil, apperrors.ErrUnauthorized
	}
	return user, nil
}

// --- GoogleOAuthHandlerSvcFacade Implementation ---

// googleOAuthHandlerService implements the GoogleOAuthHandlerSvcFacade.
type googleOAuthHandlerService struct {
	cfg          *config.Config
	oauth2Config *oauth2.Config
}

// NewGoogleOAuthHandlerService creates a new instance of googleOAuthHandlerService.
func NewGoogleOAuthHandlerService(cfg *config.Config) portssvc.GoogleOAuthHandlerSvcFacade {
	return &googleOAuthHandlerService{
		cfg: cfg,
		oauth2Config: &oauth2.Config{
			ClientID:     cfg.GoogleClientID,
			ClientSecret: cfg.GoogleClientSecret,
			RedirectURL:  cfg.GoogleRedirectURL,
			Scopes:       []string{"openid", "https://www.googleapis.com/auth/userinfo.email", "https://www.googleapis.com/auth/userinfo.profile"},
			Endpoint:     google.Endpoint,
		},
	}
}

// GenerateStateString creates a secure random string to be used as a CSRF token for OAuth flow.
func (s *googleOAuthHandlerService) GenerateStateString(ctx context.Context) (string, error) {
	state, err := utils.RandomHex(16)
	if err != nil {
		return "", fmt.Errorf("failed to generate state string for OAuth: %w", err)
	}
	return state, nil
}

// GetGoogleLoginURL returns the URL to redirect the user to for Google login.
func (s *googleOAuthHandlerService) GetGoogleLoginURL(ctx context.Context, state string) string {
	return s.oauth2Config.AuthCodeURL(state)
}

// ExchangeCodeForToken exchanges an OAuth authorization code for a token.
func (s *googleOAuthHandlerService) ExchangeCodeForToken(ctx context.Context, code string) (*oauth2.Token, error) {
	token, err := s.oauth2Config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("failed to exchange oauth code for token: %w", err)
	}
	return token, nil
}

// GetUserInfo uses the access token to get user information from Google.
func (s *googleOAuthHandlerService) GetUserInfo(ctx context.Context, token *oauth2.Token) (*domain.GoogleUserInfo, error) {
	client := s.oauth2Config.Client(ctx, token)
	resp, err := client.Get(googleUserInfoURL)
	if err != nil {
		return nil, fmt.Errorf("failed to get user info from google: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("google api returned non-200 status for userinfo: %s", resp.Status)
	}

	var userInfo domain.GoogleUserInfo
	if err := json.NewDecoder(resp.Body).Decode(&userInfo); err != nil {
		return nil, fmt.Errorf("failed to decode user info from google: %w", err)
	}
	return &userInfo, nil
}

// ValidateGoogleIDToken validates an ID token received from Google and returns the payload if valid.
func (s *googleOAuthHandlerService) ValidateGoogleIDToken(ctx context.Context, idTokenString string) (*idtoken.Payload, error) {
	if s.cfg.GoogleClientID == "" {
		return nil, errors.New("google client ID is not configured in the application")
	}

	payload, err := idtoken.Validate(ctx, idTokenString, s.cfg.GoogleClientID)
	if err != nil {
		return nil, fmt.Errorf("google ID token validation failed: %w", err)
	}
	return payload, nil
}

// GoogleUserInfoFromPayload reads the profile claims of a validated ID token.
func GoogleUserInfoFromPayload(payload *idtoken.Payload) domain.GoogleUserInfo {
	info := domain.GoogleUserInfo{ID: payload.Subject}
	if v, ok := payload.Claims["email"].(string); ok {
		info.Email = v
	}
	if v, ok := payload.Claims["email_verified"].(bool); ok {
		info.VerifiedEmail = v
	}
	if v, ok := payload.Claims["name"].(string); ok {
		info.Name = v
	}
	if v, ok := payload.Claims["picture"].(string); ok {
		info.Picture = v
	}
	return info
}

// --- AuthSvcFacade Implementation ---

type authService struct {
	BaseService
	userRepo portsrepo.UserRepositoryFacade
	tokens   portssvc.TokenSvcFacade

	mu        sync.RWMutex
	observers map[int]func(domain.AuthEvent)
	nextID    int
}

// NewAuthService creates the identity provider backed by userRepo.
func NewAuthService(userRepo portsrepo.UserRepositoryFacade, tokens portssvc.TokenSvcFacade) portssvc.AuthSvcFacade {
	return &authService{
		userRepo:  userRepo,
		tokens:    tokens,
		observers: make(map[int]func(domain.AuthEvent)),
	}
}

var _ portssvc.AuthSvcFacade = (*authService)(nil)

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*domain.User, error) {
	email := normalizeEmail(req.Email)
	username := strings.TrimSpace(req.Username)
	if email == "" || username == "" {
		return nil, apperrors.NewBadRequestError("username and email are required")
	}
	if err := utils.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	if _, err := s.userRepo.FindUserByEmail(ctx, email); err == nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up email during registration")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := nowUTC()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		AuthProvider: domain.ProviderLocal,
		AuditFields:  domain.NewAuditFields(now),
	}
	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		s.LogError(ctx, err, "Failed to save user")
		return nil, fmt.Errorf("failed to register user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("user_id", user.UserID))
	s.notify(domain.AuthEventRegistered, user.UserID)
	return &user, nil
}

func (s *authService) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewUnauthorizedError("invalid email or password")
		}
		s.LogError(ctx, err, "Failed to look up user during login")
		return nil, fmt.Errorf("failed to sign in: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError("invalid email or password")
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.notify(domain.AuthEventSignedIn, user.UserID)
	return session, nil
}

func (s *authService) Refresh(ctx context.Context, userID, refreshToken string) (*domain.Session, error) {
	user, err := s.tokens.ValidateAndParseRefreshToken(ctx, userID, refreshToken)
	if err != nil {
		return nil, err
	}
	return s.issueSession(ctx, user)
}

func (s *authService) Logout(ctx context.Context, userID string) error {
	if err := s.userRepo.ClearRefreshToken(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		s.LogError(ctx, err, "Failed to clear refresh token", slog.String("user_id", userID))
		return fmt.Errorf("failed to sign out: %w", err)
	}
	s.notify(domain.AuthEventSignedOut, userID)
	return nil
}

func (s *authService) SignInWithGoogle(ctx context.Context, info domain.GoogleUserInfo) (*domain.Session, error) {
	if info.ID == "" || info.Email == "" {
		return nil, apperrors.NewUnauthorizedError("google profile is missing id or email")
	}
	if !info.VerifiedEmail {
		return nil, apperrors.NewUnauthorizedError("google email is not verified")
	}

	user, err := s.findOrCreateGoogleUser(ctx, info)
	if err != nil {
		return nil, err
	}

	session, err := s.issueSession(ctx, user)
	if err != nil {
		return nil, err
	}
	s.notify(domain.AuthEventSignedIn, user.UserID)
	return session, nil
}

func (s *authService) findOrCreateGoogleUser(ctx context.Context, info domain.GoogleUserInfo) (*domain.User, error) {
	user, err := s.userRepo.FindUserByProviderID(ctx, domain.ProviderGoogle, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	email := normalizeEmail(info.Email)
	user, err = s.userRepo.FindUserByEmail(ctx, email)
	switch {
	case err == nil:
		// Link the existing account; its password, if any, keeps working.
		user.AuthProvider = domain.ProviderGoogle
		user.ProviderUserID = info.ID
		user.Touch(nowUTC())
		if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
			return nil, fmt.Errorf("failed to link google account: %w", err)
		}
		s.LogInfo(ctx, "Linked google account", slog.String("user_id", user.UserID))
		return user, nil
	case !errors.Is(err, apperrors.ErrNotFound):
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	username := strings.TrimSpace(info.Name)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}
	now := nowUTC()
	created := domain.User{
		UserID:         uuid.NewString(),
		Username:       username,
		Email:          email,
		AuthProvider:   domain.ProviderGoogle,
		ProviderUserID: info.ID,
		AuditFields:    domain.NewAuditFields(now),
	}
	if err := s.userRepo.SaveUser(ctx, created); err != nil {
		return nil, fmt.Errorf("failed to create google user: %w", err)
	}
	s.LogInfo(ctx, "User registered via google", slog.String("user_id", created.UserID))
	s.notify(domain.AuthEventRegistered, created.UserID)
	return &created, nil
}

// issueSession mints an access token and rotates the stored refresh token.
func (s *authService) issueSession(ctx context.Context, user *domain.User) (*domain.Session, error) {
	accessToken, accessExpiry, err := s.tokens.GenerateAccessToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate access token", slog.String("user_id", user.UserID))
		return nil, err
	}
	refreshToken, refreshHash, refreshExpiry, err := s.tokens.GenerateRefreshToken(ctx, user)
	if err != nil {
		s.LogError(ctx, err, "Failed to generate refresh token", slog.String("user_id", user.UserID))
		return nil, err
	}
	if err := s.userRepo.UpdateRefreshToken(ctx, user.UserID, refreshHash, refreshExpiry); err != nil {
		s.LogError(ctx, err, "Failed to store refresh token", slog.String("user_id", user.UserID))
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}
	user.RefreshTokenHash = refreshHash
	user.RefreshTokenExpiryTime = &refreshExpiry

	return &domain.Session{
		User:                  user,
		AccessToken:           accessToken,
		AccessTokenExpiresAt:  accessExpiry,
		RefreshToken:          refreshToken,
		RefreshTokenExpiresAt: refreshExpiry,
	}, nil
}

func (s *authService) OnAuthChange(observer func(domain.AuthEvent)) func() {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.observers[id] = observer
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.observers, id)
			s.mu.Unlock()
		})
	}
}

// notify calls observers synchronously, outside the lock.
func (s *authService) notify(eventType domain.AuthEventType, userID string) {
	s.mu.RLock()
	observers := make([]func(domain.AuthEvent), 0, len(s.observers))
	for _, o := range s.observers {
		observers = append(observers, o)
	}
	s.mu.RUnlock()

	event := domain.AuthEvent{Type: eventType, UserID: userID, At: nowUTC()}
	for _, o := range observers {
		o(event)
	}
}
