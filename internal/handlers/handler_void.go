package handlers

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

// voidHandler handles HTTP requests for the void-request workflow.
type voidHandler struct {
	voidService portssvc.VoidSvcFacade
}

// newVoidHandler creates a new voidHandler.
func newVoidHandler(voidService portssvc.VoidSvcFacade) *voidHandler {
	return &voidHandler{voidService: voidService}
}

// requestVoid godoc
// @Summary Request voiding of a receipt
// @Description Opens a pending void request against an active, unverified receipt
// @Tags voids
// @Accept json
// @Produce json
// @Param receiptID path string true "Receipt ID"
// @Param request body dto.CreateVoidRequestRequest true "Void reason"
// @Success 201 {object} dto.VoidRequestResponse
// @Failure 400 {object} map[string]string "Missing reason"
// @Failure 404 {object} map[string]string "Receipt not found"
// @Failure 409 {object} map[string]string "Receipt not voidable or request already pending"
// @Router /receipts/{receiptID}/void-requests [post]
func (h *voidHandler) requestVoid(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreateVoidRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for requestVoid", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voidRequest, err := h.voidService.RequestVoid(c.Request.Context(), c.Param("receiptID"), req.Reason, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToVoidRequestResponse(voidRequest))
}

// approveVoid godoc
// @Summary Approve a pending void request
// @Description Approves the request and voids the receipt
// @Tags voids
// @Accept json
// @Produce json
// @Param requestID path string true "Void request ID"
// @Param request body dto.ReviewVoidRequestRequest false "Review note"
// @Success 200 {object} dto.VoidRequestResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already processed"
// @Router /void-requests/{requestID}/approve [post]
func (h *voidHandler) approveVoid(c *gin.Context) {
	h.review(c, h.voidService.ApproveVoid)
}

// rejectVoid godoc
// @Summary Reject a pending void request
// @Description Rejects the request and returns the receipt to active
// @Tags voids
// @Accept json
// @Produce json
// @Param requestID path string true "Void request ID"
// @Param request body dto.ReviewVoidRequestRequest false "Review note"
// @Success 200 {object} dto.VoidRequestResponse
// @Failure 404 {object} map[string]string "Request not found"
// @Failure 409 {object} map[string]string "Request already processed"
// @Router /void-requests/{requestID}/reject [post]
func (h *voidHandler) rejectVoid(c *gin.Context) {
	h.review(c, h.voidService.RejectVoid)
}

// listPendingRequests godoc
// @Summary List pending void requests
// @Tags voids
// @Produce json
// @Success 200 {array} dto.VoidRequestResponse
// @Router /void-requests/pending [get]
func (h *voidHandler) listPendingRequests(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	requests, err := h.voidService.ListPendingRequests(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoidRequestResponses(requests))
}

type reviewFunc func(ctx context.Context, requestID string, note string, actor domain.Actor) (*domain.VoidRequest, error)

func (h *voidHandler) review(c *gin.Context, resolve reviewFunc) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.ReviewVoidRequestRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			logger.Warn("Failed to bind JSON for void review", slog.String("error", err.Error()))
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
			return
		}
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	voidRequest, err := resolve(c.Request.Context(), c.Param("requestID"), req.Note, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVoidRequestResponse(voidRequest))
}

// registerVoidRoutes wires void-request endpoints into the API group.
func registerVoidRoutes(rg *gin.RouterGroup, voidService portssvc.VoidSvcFacade) {
	h := newVoidHandler(voidService)
	rg.POST("/receipts/:receiptID/void-requests", h.requestVoid)
	voids := rg.Group("/void-requests")
	{
		voids.GET("/pending", h.listPendingRequests)
		voids.POST("/:requestID/approve", h.approveVoid)
		voids.POST("/:requestID/reject", h.rejectVoid)
	}
}
