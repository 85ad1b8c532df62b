package handlers

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

// feeItemHandler handles HTTP requests for the fee item catalog.
type feeItemHandler struct {
	feeItemService portssvc.FeeItemSvcFacade
}

// newFeeItemHandler creates a new feeItemHandler.
func newFeeItemHandler(feeItemService portssvc.FeeItemSvcFacade) *feeItemHandler {
	return &feeItemHandler{feeItemService: feeItemService}
}

// createFeeItem godoc
// @Summary Create a fee item
// @Tags fee-items
// @Accept json
// @Produce json
// @Param item body dto.CreateFeeItemRequest true "Item details"
// @Success 201 {object} dto.FeeItemResponse
// @Failure 403 {object} map[string]string "Missing capability"
// @Failure 409 {object} map[string]string "Item code already taken"
// @Router /fee-items [post]
func (h *feeItemHandler) createFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateFeeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createFeeItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.feeItemService.CreateFeeItem(c.Request.Context(), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToFeeItemResponse(item))
}

// updateFeeItem godoc
// @Summary Update a fee item
// @Description Edits catalog fields; receipts keep the item name captured at issue time
// @Tags fee-items
// @Accept json
// @Produce json
// @Param itemID path string true "Item ID"
// @Param item body dto.UpdateFeeItemRequest true "Fields to update"
// @Success 200 {object} dto.FeeItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Router /fee-items/{itemID} [put]
func (h *feeItemHandler) updateFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.UpdateFeeItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for updateFeeItem", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	item, err := h.feeItemService.UpdateFeeItem(c.Request.Context(), c.Param("itemID"), req, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponse(item))
}

// getFeeItem godoc
// @Summary Get a fee item by ID
// @Tags fee-items
// @Produce json
// @Param itemID path string true "Item ID"
// @Success 200 {object} dto.FeeItemResponse
// @Failure 404 {object} map[string]string "Item not found"
// @Router /fee-items/{itemID} [get]
func (h *feeItemHandler) getFeeItem(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	item, err := h.feeItemService.GetFeeItemByID(c.Request.Context(), c.Param("itemID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponse(item))
}

// listFeeItems godoc
// @Summary List active fee items
// @Tags fee-items
// @Produce json
// @Param category query string false "Filter by category"
// @Success 200 {array} dto.FeeItemResponse
// @Router /fee-items [get]
func (h *feeItemHandler) listFeeItems(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	items, err := h.feeItemService.ListActiveFeeItems(c.Request.Context(), domain.FeeItemCategory(c.Query("category")))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFeeItemResponses(items))
}

// registerFeeItemRoutes wires fee item catalog endpoints into the API group.
func registerFeeItemRoutes(rg *gin.RouterGroup, feeItemService portssvc.FeeItemSvcFacade) {
	h := newFeeItemHandler(feeItemService)
	items := rg.Group("/fee-items")
	{
		items.GET("", h.listFeeItems)
		items.POST("", h.createFeeItem)
		items.GET("/:itemID", h.getFeeItem)
		items.PUT("/:itemID", h.updateFeeItem)
	}
}
