package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/SscSPs/fintrack/internal/platform/config"
	"github.com/gin-gonic/gin"
)

type authHandler struct {
	authService portssvc.AuthSvcFacade
	cfg         *config.Config
}

func newAuthHandler(as portssvc.AuthSvcFacade, cfg *config.Config) *authHandler {
	return &authHandler{authService: as, cfg: cfg}
}

// registerAuthRoutes sets up the public authentication routes. Logout needs a
// valid access token.
func registerAuthRoutes(rg *gin.RouterGroup, cfg *config.Config, services *portssvc.ServiceContainer, loginLimit gin.HandlerFunc) {
	h := newAuthHandler(services.Auth, cfg)

	auth := rg.Group("/auth")
	{
		auth.POST("/register", h.register)
		auth.POST("/login", loginLimit, h.login)
		auth.POST("/refresh", h.refresh)
		auth.POST("/logout", middleware.AuthMiddleware(cfg.JWTSecret), h.logout)
	}
	registerGoogleOAuthRoutes(auth, services)
}

// setRefreshCookie stores the refresh token in an HttpOnly cookie scoped to the auth routes.
func (h *authHandler) setRefreshCookie(c *gin.Context, token string, expiresAt time.Time) {
	maxAge := int(time.Until(expiresAt).Seconds())
	if token == "" {
		maxAge = -1
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.RefreshTokenCookieName, token, maxAge, h.cfg.RefreshTokenCookiePath, "", h.cfg.IsProduction, true)
}

// register godoc
// @Summary Register new user
// @Description Creates a new account with email and password.
// @Tags auth
// @Accept json
// @Produce json
// @Param register body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse "Email already registered"
// @Failure 500 {object} ErrorResponse
// @Router /auth/register [post]
func (h *authHandler) register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	user, err := h.authService.Register(c.Request.Context(), req)
	if err != nil {
		respondError(c, err, "Failed to register user")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User registered", slog.String("user_id", user.UserID))
	c.JSON(http.StatusCreated, dto.ToUserResponse(user))
}

// login godoc
// @Summary User login
// @Description Authenticates with email and password and returns an access token and a refresh token.
// @Tags auth
// @Accept json
// @Produce json
// @Param login body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 429 {object} ErrorResponse
// @Router /auth/login [post]
func (h *authHandler) login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}

	session, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondError(c, err, "Failed to sign in")
		return
	}

	h.setRefreshCookie(c, session.RefreshToken, session.RefreshTokenExpiresAt)
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}

// refresh godoc
// @Summary Refresh the access token
// @Description Exchanges a refresh token, from the body or the refresh cookie, for a new session. The refresh token is rotated.
// @Tags auth
// @Accept json
// @Produce json
// @Param refresh body dto.RefreshTokenRequest true "User and refresh token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/refresh [post]
func (h *authHandler) refresh(c *gin.Context) {
	var req dto.RefreshTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body", err)
		return
	}
	token := req.RefreshToken
	if token == "" {
		token, _ = c.Cookie(h.cfg.RefreshTokenCookieName)
	}
	if token == "" {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Refresh token required"})
		return
	}

	session, err := h.authService.Refresh(c.Request.Context(), req.UserID, token)
	if err != nil {
		respondError(c, err, "Failed to refresh session")
		return
	}

	h.setRefreshCookie(c, session.RefreshToken, session.RefreshTokenExpiresAt)
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}

// logout godoc
// @Summary Sign out
// @Description Revokes the stored refresh token of the current user.
// @Tags auth
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /auth/logout [post]
func (h *authHandler) logout(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	if err := h.authService.Logout(c.Request.Context(), userID); err != nil {
		respondError(c, err, "Failed to sign out")
		return
	}
	h.setRefreshCookie(c, "", time.Time{})
	c.Status(http.StatusNoContent)
}
