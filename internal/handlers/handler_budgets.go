package handlers

import (
	"net/http"

	"github.com/SscSPs/fintrack/internal/apperrors"
	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/gin-gonic/gin"
)

type budgetHandler struct {
	budgetService portssvc.BudgetSvcFacade
}

func registerBudgetRoutes(rg *gin.RouterGroup, bs portssvc.BudgetSvcFacade) {
	h := &budgetHandler{budgetService: bs}

	budgets := rg.Group("/budgets")
	{
		budgets.GET("", h.listBudgets)
		budgets.PUT("/:month", h.setBudget)
		budgets.DELETE("/:month", h.deleteBudget)
	}
}

func monthParam(c *gin.Context) (domain.MonthKey, bool) {
	month, err := domain.ParseMonthKey(c.Param("month"))
	if err != nil {
		respondError(c, apperrors.NewBadRequestError(err.Error()), "Invalid month")
		return "", false
	}
	return month, true
}

// setBudget godoc
// @Summary Set a monthly budget
// @Description Creates or replaces the spending limit for a month. A zero limit reads back as no budget.
// @Tags budgets
// @Accept json
// @Produce json
// @Param month path string true "Month as YYYY-MM"
// @Param budget body dto.SetBudgetRequest true "Limit"
// @Success 200 {object} dto.BudgetResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{month} [put]
func (h *budgetHandler) setBudget(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}
	var req dto.SetBudgetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	budget, err := h.budgetService.SetBudget(c.Request.Context(), userID, month, *req.Limit)
	if err != nil {
		respondError(c, err, "Failed to set budget")
		return
	}
	c.JSON(http.StatusOK, dto.ToBudgetResponse(budget))
}

// listBudgets godoc
// @Summary List budgets
// @Tags budgets
// @Produce json
// @Success 200 {object} dto.ListBudgetsResponse
// @Security BearerAuth
// @Router /budgets [get]
func (h *budgetHandler) listBudgets(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	budgets, err := h.budgetService.ListBudgets(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list budgets")
		return
	}
	c.JSON(http.StatusOK, dto.ToListBudgetsResponse(budgets))
}

// deleteBudget godoc
// @Summary Remove a monthly budget
// @Tags budgets
// @Param month path string true "Month as YYYY-MM"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /budgets/{month} [delete]
func (h *budgetHandler) deleteBudget(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	month, ok := monthParam(c)
	if !ok {
		return
	}
	if err := h.budgetService.DeleteBudget(c.Request.Context(), userID, month); err != nil {
		respondError(c, err, "Failed to delete budget")
		return
	}
	c.Status(http.StatusNoContent)
}
