package handlers

import (
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

// reportHandler handles HTTP requests for reports and reconciliation.
type reportHandler struct {
	reportingService portssvc.ReportingSvcFacade
	loc              *time.Location
}

// newReportHandler creates a new reportHandler. Defaulted dates are taken in
// the display timezone.
func newReportHandler(reportingService portssvc.ReportingSvcFacade, loc *time.Location) *reportHandler {
	return &reportHandler{reportingService: reportingService, loc: loc}
}

// batchVerify godoc
// @Summary Verify a batch of receipts
// @Description Verifies each receipt independently; ineligible items are skipped and only the success count is returned
// @Tags verification
// @Accept json
// @Produce json
// @Param request body dto.BatchVerifyRequest true "Receipt IDs"
// @Success 200 {object} dto.BatchVerifyResponse
// @Failure 403 {object} map[string]string "Missing capability"
// @Router /verification/batch [post]
func (h *reportHandler) batchVerify(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.BatchVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for batchVerify", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	count, err := h.reportingService.VerifyBatch(c.Request.Context(), req.ReceiptIDs, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.BatchVerifyResponse{VerifiedCount: count})
}

// verificationSummary godoc
// @Summary Monthly verification summary
// @Description Partitions one month's active receipts into verified and unverified
// @Tags verification
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param operatorID query string false "Filter by operator"
// @Success 200 {object} dto.VerificationSummaryResponse
// @Router /verification/summary [get]
func (h *reportHandler) verificationSummary(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	summary, err := h.reportingService.VerificationSummary(c.Request.Context(), c.Query("operatorID"), year, month)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToVerificationSummaryResponse(summary))
}

// listUnverified godoc
// @Summary List unverified active receipts
// @Tags verification
// @Produce json
// @Param operatorID query string false "Filter by operator"
// @Success 200 {array} dto.ReceiptResponse
// @Router /verification/unverified [get]
func (h *reportHandler) listUnverified(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	receipts, err := h.reportingService.ListUnverifiedReceipts(c.Request.Context(), c.Query("operatorID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToReceiptResponses(receipts))
}

// createPaymentRecord godoc
// @Summary Record a monthly settlement
// @Description Stores the handover of one operator's month: system total, counted amount, and their difference
// @Tags verification
// @Accept json
// @Produce json
// @Param request body dto.CreatePaymentRecordRequest true "Settlement details"
// @Success 201 {object} dto.PaymentRecordResponse
// @Failure 403 {object} map[string]string "Missing capability"
// @Router /payment-records [post]
func (h *reportHandler) createPaymentRecord(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	var req dto.CreatePaymentRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for createPaymentRecord", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	actor, ok := middleware.GetActorFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	record, err := h.reportingService.CreatePaymentRecord(
		c.Request.Context(), req.OperatorID, req.Year, time.Month(req.Month), req.ActualAmount, req.Notes, actor)
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPaymentRecordResponse(record))
}

// listPaymentRecords godoc
// @Summary List settlement records
// @Tags verification
// @Produce json
// @Param year query int true "Year"
// @Param month query int false "Month (1-12), omit for the whole year"
// @Param operatorID query string false "Filter by operator"
// @Success 200 {array} dto.PaymentRecordResponse
// @Router /payment-records [get]
func (h *reportHandler) listPaymentRecords(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return
	}

	// Month zero means the whole year; the service evaluates the window in the
	// display timezone so records match the boundaries they were stored with.
	month := 0
	if monthStr := c.Query("month"); monthStr != "" {
		month, err = strconv.Atoi(monthStr)
		if err != nil || month < 1 || month > 12 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter"})
			return
		}
	}

	records, err := h.reportingService.ListPaymentRecords(c.Request.Context(), c.Query("operatorID"), year, time.Month(month))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPaymentRecordResponses(records))
}

// dailyReport godoc
// @Summary Daily receipt report
// @Tags reports
// @Produce json
// @Param date query string false "Day (2006-01-02), defaults to today"
// @Param operatorID query string false "Filter by operator"
// @Success 200 {object} dto.DailyReportResponse
// @Router /reports/daily [get]
func (h *reportHandler) dailyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	date := time.Now().In(h.loc)
	if dateStr := c.Query("date"); dateStr != "" {
		parsed, err := time.Parse("2006-01-02", dateStr)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date parameter, expected YYYY-MM-DD"})
			return
		}
		date = parsed
	}

	report, err := h.reportingService.DailyReport(c.Request.Context(), date, c.Query("operatorID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToDailyReportResponse(report))
}

// monthlyReport godoc
// @Summary Monthly receipt report
// @Tags reports
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Param operatorID query string false "Filter by operator"
// @Success 200 {object} dto.MonthlyReportResponse
// @Router /reports/monthly [get]
func (h *reportHandler) monthlyReport(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	year, month, ok := yearMonthParams(c)
	if !ok {
		return
	}

	report, err := h.reportingService.MonthlyReport(c.Request.Context(), year, month, c.Query("operatorID"))
	if err != nil {
		respondWithError(c, logger, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMonthlyReportResponse(report))
}

// yearMonthParams reads and validates the year and month query parameters,
// writing the 400 response itself when they are malformed.
func yearMonthParams(c *gin.Context) (int, time.Month, bool) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid year parameter"})
		return 0, 0, false
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid month parameter"})
		return 0, 0, false
	}
	return year, time.Month(month), true
}

// registerReportRoutes wires reporting and reconciliation endpoints into the
// API group.
func registerReportRoutes(rg *gin.RouterGroup, reportingService portssvc.ReportingSvcFacade, loc *time.Location) {
	h := newReportHandler(reportingService, loc)
	verification := rg.Group("/verification")
	{
		verification.POST("/batch", h.batchVerify)
		verification.GET("/summary", h.verificationSummary)
		verification.GET("/unverified", h.listUnverified)
	}
	rg.POST("/payment-records", h.createPaymentRecord)
	rg.GET("/payment-records", h.listPaymentRecords)
	reports := rg.Group("/reports")
	{
		reports.GET("/daily", h.dailyReport)
		reports.GET("/monthly", h.monthlyReport)
	}
}
