package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/gin-gonic/gin"
)

type userHandler struct {
	userService portssvc.UserSvcFacade
}

func registerUserRoutes(rg *gin.RouterGroup, userService portssvc.UserSvcFacade) {
	h := &userHandler{userService: userService}

	users := rg.Group("/users")
	{
		users.GET("/me", h.getMe)
		users.PATCH("/me", h.updateMe)
	}
}

// getMe godoc
// @Summary Current user
// @Tags users
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [get]
func (h *userHandler) getMe(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	user, err := h.userService.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to retrieve user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}

// updateMe godoc
// @Summary Update current user
// @Tags users
// @Accept json
// @Produce json
// @Param profile body dto.UpdateProfileRequest true "New display name"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /users/me [patch]
func (h *userHandler) updateMe(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}
	user, err := h.userService.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to update user")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserResponse(user))
}
