package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// BatchVerifyRequest defines the payload for best-effort batch verification.
type BatchVerifyRequest struct {
	ReceiptIDs []string `json:"receiptIDs" binding:"required,min=1"`
}

// BatchVerifyResponse returns only the aggregate success count; failed items
// are skipped silently by contract.
type BatchVerifyResponse struct {
	VerifiedCount int `json:"verifiedCount"`
}

// CreatePaymentRecordRequest defines the payload for recording a settlement.
type CreatePaymentRecordRequest struct {
	OperatorID   string          `json:"operatorID" binding:"required"`
	Year         int             `json:"year" binding:"required"`
	Month        int             `json:"month" binding:"required,min=1,max=12"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Notes        string          `json:"notes" binding:"max=500"`
}

// ReportSummaryResponse mirrors the report contract's summary block.
type ReportSummaryResponse struct {
	ActiveCount int             `json:"active_count"`
	ActiveTotal decimal.Decimal `json:"active_total"`
	VoidedCount int             `json:"voided_count"`
	VoidedTotal decimal.Decimal `json:"voided_total"`
	NetTotal    decimal.Decimal `json:"net_total"`
}

// ItemBreakdownResponse mirrors one entry of the item_breakdown block.
type ItemBreakdownResponse struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"`
}

// DailyReportResponse is the report contract for one day.
type DailyReportResponse struct {
	Date     string                `json:"period"`
	Receipts []ReceiptResponse     `json:"receipts"`
	Summary  ReportSummaryResponse `json:"summary"`
}

// MonthlyReportResponse is the report contract for one calendar month.
type MonthlyReportResponse struct {
	Year          int                              `json:"year"`
	Month         int                              `json:"month"`
	PeriodStart   time.Time                        `json:"period_start"`
	PeriodEnd     time.Time                        `json:"period_end"`
	Receipts      []ReceiptResponse                `json:"receipts"`
	Summary       ReportSummaryResponse            `json:"summary"`
	ItemBreakdown map[string]ItemBreakdownResponse `json:"item_breakdown"`
}

// VerificationSummaryResponse is the cashier reconciliation view of a period.
type VerificationSummaryResponse struct {
	PeriodStart        time.Time         `json:"period_start"`
	PeriodEnd          time.Time         `json:"period_end"`
	TotalCount         int               `json:"total_count"`
	TotalAmount        decimal.Decimal   `json:"total_amount"`
	VerifiedCount      int               `json:"verified_count"`
	VerifiedAmount     decimal.Decimal   `json:"verified_amount"`
	UnverifiedCount    int               `json:"unverified_count"`
	UnverifiedAmount   decimal.Decimal   `json:"unverified_amount"`
	UnverifiedReceipts []ReceiptResponse `json:"unverified_receipts"`
}

// PaymentRecordResponse defines the data returned for a payment record.
type PaymentRecordResponse struct {
	RecordID     string          `json:"recordID"`
	OperatorID   string          `json:"operatorID"`
	PeriodStart  time.Time       `json:"periodStart"`
	PeriodEnd    time.Time       `json:"periodEnd"`
	SystemAmount decimal.Decimal `json:"systemAmount"`
	ActualAmount decimal.Decimal `json:"actualAmount"`
	Difference   decimal.Decimal `json:"difference"`
	ReceivedBy   string          `json:"receivedBy"`
	ReceivedAt   time.Time       `json:"receivedAt"`
	Notes        string          `json:"notes,omitempty"`
}

func toSummaryResponse(s domain.ReportSummary) ReportSummaryResponse {
	return ReportSummaryResponse{
		ActiveCount: s.ActiveCount,
		ActiveTotal: s.ActiveTotal,
		VoidedCount: s.VoidedCount,
		VoidedTotal: s.VoidedTotal,
		NetTotal:    s.NetTotal,
	}
}

// ToDailyReportResponse converts a domain.DailyReport to its DTO.
func ToDailyReportResponse(r *domain.DailyReport) DailyReportResponse {
	return DailyReportResponse{
		Date:     r.Date.Format("2006-01-02"),
		Receipts: ToReceiptResponses(r.Receipts),
		Summary:  toSummaryResponse(r.Summary),
	}
}

// ToMonthlyReportResponse converts a domain.MonthlyReport to its DTO.
func ToMonthlyReportResponse(r *domain.MonthlyReport) MonthlyReportResponse {
	breakdown := make(map[string]ItemBreakdownResponse, len(r.ItemBreakdown))
	for name, entry := range r.ItemBreakdown {
		breakdown[name] = ItemBreakdownResponse{
			Count:      entry.Count,
			Total:      entry.Total,
			Percentage: entry.Percentage,
		}
	}
	return MonthlyReportResponse{
		Year:          r.Year,
		Month:         int(r.Month),
		PeriodStart:   r.PeriodStart,
		PeriodEnd:     r.PeriodEnd,
		Receipts:      ToReceiptResponses(r.Receipts),
		Summary:       toSummaryResponse(r.Summary),
		ItemBreakdown: breakdown,
	}
}

// ToVerificationSummaryResponse converts a domain.VerificationSummary to its DTO.
func ToVerificationSummaryResponse(s *domain.VerificationSummary) VerificationSummaryResponse {
	return VerificationSummaryResponse{
		PeriodStart:        s.PeriodStart,
		PeriodEnd:          s.PeriodEnd,
		TotalCount:         s.TotalCount,
		TotalAmount:        s.TotalAmount,
		VerifiedCount:      s.VerifiedCount,
		VerifiedAmount:     s.VerifiedAmount,
		UnverifiedCount:    s.UnverifiedCount,
		UnverifiedAmount:   s.UnverifiedAmount,
		UnverifiedReceipts: ToReceiptResponses(s.UnverifiedReceipts),
	}
}

// ToPaymentRecordResponse converts a domain.PaymentRecord to its DTO.
func ToPaymentRecordResponse(p *domain.PaymentRecord) PaymentRecordResponse {
	return PaymentRecordResponse{
		RecordID:     p.RecordID,
		OperatorID:   p.OperatorID,
		PeriodStart:  p.PeriodStart,
		PeriodEnd:    p.PeriodEnd,
		SystemAmount: p.SystemAmount,
		ActualAmount: p.ActualAmount,
		Difference:   p.Difference,
		ReceivedBy:   p.ReceivedBy,
		ReceivedAt:   p.ReceivedAt,
		Notes:        p.Notes,
	}
}

// ToPaymentRecordResponses converts a slice of domain.PaymentRecord to DTOs.
func ToPaymentRecordResponses(records []domain.PaymentRecord) []PaymentRecordResponse {
	responses := make([]PaymentRecordResponse, len(records))
	for i := range records {
		responses[i] = ToPaymentRecordResponse(&records[i])
	}
	return responses
}
