package handlers

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/SscSPs/fintrack/internal/core/domain"
	portssvc "github.com/SscSPs/fintrack/internal/core/ports/services"
	"github.com/SscSPs/fintrack/internal/dto"
	"github.com/SscSPs/fintrack/internal/middleware"
	"github.com/gin-gonic/gin"
)

const (
	xlsxContentType   = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	maxImportFileSize = 10 << 20
)

type transactionHandler struct {
	transactionService portssvc.TransactionSvcFacade
	transferService    portssvc.TransferSvc
}

func newTransactionHandler(ts portssvc.TransactionSvcFacade, xs portssvc.TransferSvc) *transactionHandler {
	return &transactionHandler{transactionService: ts, transferService: xs}
}

func registerTransactionRoutes(rg *gin.RouterGroup, ts portssvc.TransactionSvcFacade, xs portssvc.TransferSvc) {
	h := newTransactionHandler(ts, xs)

	txns := rg.Group("/transactions")
	{
		txns.POST("", h.createTransaction)
		txns.GET("", h.listTransactions)
		txns.GET("/export", h.exportTransactions)
		txns.POST("/import", h.importTransactions)
		txns.GET("/:transactionID", h.getTransaction)
		txns.PATCH("/:transactionID", h.updateTransaction)
		txns.DELETE("/:transactionID", h.deleteTransaction)
	}
	rg.GET("/categories", h.listCategories)
}

// createTransaction godoc
// @Summary Record a transaction
// @Tags transactions
// @Accept json
// @Produce json
// @Param transaction body dto.CreateTransactionRequest true "Transaction details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [post]
func (h *transactionHandler) createTransaction(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.CreateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	txn, err := h.transactionService.CreateTransaction(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err, "Failed to create transaction")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transaction created", slog.String("transaction_id", txn.TransactionID))
	c.JSON(http.StatusCreated, dto.ToTransactionResponse(txn))
}

// listTransactions godoc
// @Summary List transactions
// @Description Lists the caller's transactions newest first, one page at a time.
// @Tags transactions
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param nextToken query string false "Cursor from the previous page"
// @Param month query string false "Only transactions dated in this YYYY-MM month"
// @Success 200 {object} dto.ListTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions [get]
func (h *transactionHandler) listTransactions(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		badRequest(c, "Invalid query parameters", err)
		return
	}

	resp, err := h.transactionService.ListTransactions(c.Request.Context(), userID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getTransaction godoc
// @Summary Get a transaction
// @Tags transactions
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Success 200 {object} dto.TransactionResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [get]
func (h *transactionHandler) getTransaction(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	txn, err := h.transactionService.GetTransaction(c.Request.Context(), userID, c.Param("transactionID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// updateTransaction godoc
// @Summary Update a transaction
// @Description Applies the fields present in the body; omitted fields keep their value.
// @Tags transactions
// @Accept json
// @Produce json
// @Param transactionID path string true "Transaction ID"
// @Param transaction body dto.UpdateTransactionRequest true "Fields to change"
// @Success 200 {object} dto.TransactionResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [patch]
func (h *transactionHandler) updateTransaction(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	var req dto.UpdateTransactionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request format", err)
		return
	}

	txn, err := h.transactionService.UpdateTransaction(c.Request.Context(), userID, c.Param("transactionID"), req)
	if err != nil {
		respondError(c, err, "Failed to update transaction")
		return
	}
	c.JSON(http.StatusOK, dto.ToTransactionResponse(txn))
}

// deleteTransaction godoc
// @Summary Delete a transaction
// @Tags transactions
// @Param transactionID path string true "Transaction ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/{transactionID} [delete]
func (h *transactionHandler) deleteTransaction(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	if err := h.transactionService.DeleteTransaction(c.Request.Context(), userID, c.Param("transactionID")); err != nil {
		respondError(c, err, "Failed to delete transaction")
		return
	}
	c.Status(http.StatusNoContent)
}

// exportTransactions godoc
// @Summary Export transactions as XLSX
// @Tags transactions
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param dateFilter query string false "all, YYYY, YYYY-MM or YYYY-MM-DD" default(all)
// @Success 200 {file} file
// @Security BearerAuth
// @Router /transactions/export [get]
func (h *transactionHandler) exportTransactions(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	filter := domain.DateFilter(c.DefaultQuery("dateFilter", string(domain.AllDates)))

	var buf bytes.Buffer
	if err := h.transferService.ExportTransactions(c.Request.Context(), userID, filter, &buf); err != nil {
		respondError(c, err, "Failed to export transactions")
		return
	}

	name := fmt.Sprintf("transactions-%s-%s.xlsx", filter, time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+name+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// importTransactions godoc
// @Summary Import transactions from XLSX
// @Description Reads the first sheet. Valid rows are stored together; rows with a malformed date or amount are reported back.
// @Tags transactions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Workbook"
// @Success 200 {object} dto.ImportTransactionsResponse
// @Failure 400 {object} ErrorResponse
// @Security BearerAuth
// @Router /transactions/import [post]
func (h *transactionHandler) importTransactions(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportFileSize)

	header, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "Workbook upload required", err)
		return
	}
	file, err := header.Open()
	if err != nil {
		badRequest(c, "Could not read upload", err)
		return
	}
	defer file.Close()

	resp, err := h.transferService.ImportTransactions(c.Request.Context(), userID, file)
	if err != nil {
		respondError(c, err, "Failed to import transactions")
		return
	}

	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Transactions imported",
		slog.Int("imported", resp.Imported), slog.Int("rejected", len(resp.Rejected)))
	c.JSON(http.StatusOK, resp)
}

// listCategories godoc
// @Summary Category suggestions
// @Description Default categories followed by the caller's own.
// @Tags transactions
// @Produce json
// @Success 200 {object} dto.CategoriesResponse
// @Security BearerAuth
// @Router /categories [get]
func (h *transactionHandler) listCategories(c *gin.Context) {
	userID, ok := ownerID(c)
	if !ok {
		return
	}
	categories, err := h.transactionService.ListCategories(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err, "Failed to list categories")
		return
	}
	c.JSON(http.StatusOK, dto.CategoriesResponse{Categories: categories})
}
