package handlers

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/core/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// googleOAuthHandler signs users in with a Google identity. The code flow and
// the ID token flow both end in AuthSvcFacade.SignInWithGoogle.
type googleOAuthHandler struct {
	googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade
	authService        portssvc.AuthSvcFacade
}

func newGoogleOAuthHandler(googleOAuthService portssvc.GoogleOAuthHandlerSvcFacade, authService portssvc.AuthSvcFacade) *googleOAuthHandler {
	return &googleOAuthHandler{
		googleOAuthService: googleOAuthService,
		authService:        authService,
	}
}

func registerGoogleOAuthRoutes(rg *gin.RouterGroup, container *portssvc.ServiceContainer) {
	h := newGoogleOAuthHandler(container.GoogleOAuthHandler, container.Auth)
	googleRoutes := rg.Group("/google")
	{
		googleRoutes.GET("/login-url", h.loginURL)
		googleRoutes.POST("/exchange-code", h.exchangeCode)
		googleRoutes.POST("/id-token", h.idToken)
	}
}

// loginURL godoc
// @Summary Google consent screen URL
// @Description Returns the Google authorization URL and the CSRF state the front end must echo back.
// @Tags oauth
// @Produce json
// @Success 200 {object} dto.GoogleLoginURLResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/google/login-url [get]
func (h *googleOAuthHandler) loginURL(c *gin.Context) {
	ctx := c.Request.Context()
	state, err := h.googleOAuthService.GenerateStateString(ctx)
	if err != nil {
		respondError(c, err, "Failed to start Google sign-in")
		return
	}
	c.JSON(http.StatusOK, dto.GoogleLoginURLResponse{
		URL:   h.googleOAuthService.GetGoogleLoginURL(ctx, state),
		State: state,
	})
}

// exchangeCode godoc
// @Summary Exchange a Google authorization code for a session
// @Tags oauth
// @Accept json
// @Produce json
// @Param code body dto.GoogleExchangeCodeRequest true "Authorization code"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse "Invalid authorization code"
// @Failure 401 {object} ErrorResponse
// @Failure 504 {object} ErrorResponse "Google unreachable"
// @Router /auth/google/exchange-code [post]
func (h *googleOAuthHandler) exchangeCode(c *gin.Context) {
	ctx := c.Request.Context()
	logger := middleware.GetLoggerFromCtx(ctx)

	var req dto.GoogleExchangeCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	oauth2Token, err := h.googleOAuthService.ExchangeCodeForToken(ctx, req.Code)
	if err != nil {
		lower := strings.ToLower(err.Error())
		if strings.Contains(lower, "invalid_grant") || strings.Contains(lower, "bad request") {
			respondError(c, apperrors.NewBadRequestError("Invalid or expired authorization code"), "Failed to exchange authorization code")
			return
		}
		respondError(c, apperrors.NewGatewayTimeoutError("Failed to communicate with Google", err), "Failed to exchange authorization code")
		return
	}

	var info domain.GoogleUserInfo
	if idTokenString, ok := oauth2Token.Extra("id_token").(string); ok && idTokenString != "" {
		payload, err := h.googleOAuthService.ValidateGoogleIDToken(ctx, idTokenString)
		if err != nil {
			respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), "Failed to validate Google ID token")
			return
		}
		info = services.GoogleUserInfoFromPayload(payload)
	} else {
		logger.Info("No ID token in Google response, falling back to userinfo endpoint")
		profile, err := h.googleOAuthService.GetUserInfo(ctx, oauth2Token)
		if err != nil {
			respondError(c, apperrors.NewGatewayTimeoutError("Failed to read Google profile", err), "Failed to read Google profile")
			return
		}
		info = *profile
	}

	h.signIn(c, info)
}

// idToken godoc
// @Summary Sign in with a Google ID token
// @Tags oauth
// @Accept json
// @Produce json
// @Param token body dto.GoogleIDTokenRequest true "Google ID token"
// @Success 200 {object} dto.LoginResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /auth/google/id-token [post]
func (h *googleOAuthHandler) idToken(c *gin.Context) {
	var req dto.GoogleIDTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request payload", err)
		return
	}

	payload, err := h.googleOAuthService.ValidateGoogleIDToken(c.Request.Context(), req.IDToken)
	if err != nil {
		respondError(c, apperrors.NewUnauthorizedError("Invalid Google ID token"), "Failed to validate Google ID token")
		return
	}
	h.signIn(c, services.GoogleUserInfoFromPayload(payload))
}

func (h *googleOAuthHandler) signIn(c *gin.Context, info domain.GoogleUserInfo) {
	session, err := h.authService.SignInWithGoogle(c.Request.Context(), info)
	if err != nil {
		respondError(c, err, "Failed to process Google sign-in")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("User signed in with Google",
		slog.String("user_id", session.User.UserID))
	c.JSON(http.StatusOK, dto.ToLoginResponse(session))
}
