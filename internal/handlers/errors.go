package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError writes err with its mapped status. Server errors are logged and
// replaced by fallback so internals never reach the client.
func respondError(c *gin.Context, err error, fallback string) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	status := apperrors.StatusCode(err)

	if status >= http.StatusInternalServerError {
		logger.Error(fallback, slog.String("error", err.Error()))
		c.JSON(status, ErrorResponse{Error: fallback})
		return
	}

	msg := err.Error()
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Message != "" {
		msg = appErr.Message
	}
	logger.Warn(fallback, slog.Int("status", status), slog.String("error", err.Error()))
	c.JSON(status, ErrorResponse{Error: msg})
}

func badRequest(c *gin.Context, msg string, err error) {
	middleware.GetLoggerFromCtx(c.Request.Context()).Warn(msg, slog.String("error", err.Error()))
	c.JSON(http.StatusBadRequest, ErrorResponse{Error: msg + ": " + err.Error()})
}

// ownerID reads the authenticated user; it aborts with 401 when absent.
func ownerID(c *gin.Context) (string, bool) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		middleware.GetLoggerFromCtx(c.Request.Context()).Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, ErrorResponse{Error: "Unauthorized"})
		return "", false
	}
	return userID, true
}
