package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

// receiptHandler handles HTTP requests related to receipts.
type receiptHandler struct {
	receiptService portssvc.ReceiptSvcFacade
	loc            *time.Location
}

// newReceiptHandler creates a new receiptHandler. Defaulted dates are taken
// in the display timezone.
func newReceiptHandler(receiptService portssvc.ReceiptSvcFacade, loc *time.Location) *receiptHandler {
	return &receiptHandler{receiptService: receiptService, loc: loc}
}

// createReceipt godoc
// @Summary Issue a new receipt
// @Description Creates a receipt for a fee item, allocating the next receipt number and rendering the legal-text amount
// @Tags receipts
// @Accept json
// @Produce json
// @Param receipt body dto.CreateReceiptRequest true "Receipt details"
// @Success 201 {object} dto.ReceiptResponse
// @Failure 400 {object} map[string]string "Invalid request"
// @Failure 403 {object} map[string]string "Missing capability"
// @Router /receipts [post]
func (h *receiptHandler) createReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createReceipt", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.receiptService.CreateReceipt(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToReceiptResponse(receipt))
}

// getReceipt godoc
// @Summary Get a receipt by ID
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Router /receipts/{receiptID} [get]
func (h *receiptHandler) getReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipt, err := h.receiptService.GetReceiptByID(c.Request.Context(), c.Param("receiptID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// getReceiptByNo godoc
// @Summary Get a receipt by receipt number
// @Tags receipts
// @Produce json
// @Param receiptNo path string true "Receipt number"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Router /receipts/by-no/{receiptNo} [get]
func (h *receiptHandler) getReceiptByNo(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipt, err := h.receiptService.GetReceiptByNo(c.Request.Context(), c.Param("receiptNo"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// listDailyReceipts godoc
// @Summary List receipts for one day
// @Tags receipts
// @Produce json
// @Param date query string false "Day (2006-01-02), defaults to today"
// @Param operatorID query string false "Filter by operator"
// @Success 200 {array} dto.ReceiptResponse
// @Router /receipts [get]
func (h *receiptHandler) listDailyReceipts(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	day := c.Query("date")
	if day == "" {
		day = time.Now().In(h.loc).Format("2006-01-02")
	}

	receipts, err := h.receiptService.ListDailyReceipts(c.Request.Context(), day, c.Query("operatorID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponses(receipts))
}

// verifyReceipt godoc
// @Summary Verify a receipt
// @Description Marks an active, unverified receipt as cash-verified by the caller
// @Tags receipts
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Success 200 {object} dto.ReceiptResponse
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt not eligible"
// @Router /receipts/{receiptID}/verify [post]
func (h *receiptHandler) verifyReceipt(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	receipt, err := h.receiptService.VerifyReceipt(c.Request.Context(), c.Param("receiptID"), actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponse(receipt))
}

// registerReceiptRoutes wires receipt endpoints into the API group.
func registerReceiptRoutes(rg *gin.RouterGroup, receiptService portssvc.ReceiptSvcFacade, loc *time.Location) {
	h := newReceiptHandler(receiptService, loc)
	receipts := rg.Group("/receipts")
	{
		receipts.POST("", h.createReceipt)
		receipts.GET("", h.listDailyReceipts)
		receipts.GET("/by-no/:receiptNo", h.getReceiptByNo)
		receipts.GET("/:receiptID", h.getReceipt)
		receipts.POST("/:receiptID/verify", h.verifyReceipt)
	}
}
