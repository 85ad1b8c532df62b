package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReportSummary aggregates a set of receipts by status. Receipts still in
// VOID_PENDING are counted in neither bucket; they appear only in the raw
// receipt list of the report that carries this summary.
type ReportSummary struct {
	ActiveCount int             `json:"activeCount"`
	ActiveTotal decimal.Decimal `json:"activeTotal"`
	VoidedCount int             `json:"voidedCount"`
	VoidedTotal decimal.Decimal `json:"voidedTotal"`
	NetTotal    decimal.Decimal `json:"netTotal"` // Equals ActiveTotal
}

// ItemBreakdown aggregates active receipts sharing one denormalized item name.
type ItemBreakdown struct {
	Count      int             `json:"count"`
	Total      decimal.Decimal `json:"total"`
	Percentage float64         `json:"percentage"` // Share of active total; 0 when active total is 0
}

// DailyReport lists one day's receipts with status totals.
type DailyReport struct {
	Date     time.Time     `json:"date"`
	Receipts []Receipt     `json:"receipts"`
	Summary  ReportSummary `json:"summary"`
}

// MonthlyReport lists one calendar month's receipts with status totals and a
// per-item breakdown of the active receipts.
type MonthlyReport struct {
	Year          int                      `json:"year"`
	Month         time.Month               `json:"month"`
	PeriodStart   time.Time                `json:"periodStart"`
	PeriodEnd     time.Time                `json:"periodEnd"`
	Receipts      []Receipt                `json:"receipts"`
	Summary       ReportSummary            `json:"summary"`
	ItemBreakdown map[string]ItemBreakdown `json:"itemBreakdown"`
}

// VerificationSummary partitions one period's active receipts into verified
// and unverified, for the cashier reconciliation screen.
type VerificationSummary struct {
	PeriodStart        time.Time       `json:"periodStart"`
	PeriodEnd          time.Time       `json:"periodEnd"`
	TotalCount         int             `json:"totalCount"`
	TotalAmount        decimal.Decimal `json:"totalAmount"`
	VerifiedCount      int             `json:"verifiedCount"`
	VerifiedAmount     decimal.Decimal `json:"verifiedAmount"`
	UnverifiedCount    int             `json:"unverifiedCount"`
	UnverifiedAmount   decimal.Decimal `json:"unverifiedAmount"`
	UnverifiedReceipts []Receipt       `json:"unverifiedReceipts"`
}
