package services

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// ReportingSvcFacade defines verification and reconciliation operations.
type ReportingSvcFacade interface {
	// VerifyBatch verifies each receipt independently, silently skipping items
	// that are missing, already verified, or not ACTIVE. Returns the number of
	// receipts actually transitioned. Callers needing per-item diagnostics use
	// ReceiptSvcFacade.VerifyReceipt instead.
	VerifyBatch(ctx context.Context, receiptIDs []string, actor domain.Actor) (int, error)

	// VerificationSummary partitions one calendar month's ACTIVE receipts into
	// verified and unverified, optionally for a single operator.
	VerificationSummary(ctx context.Context, operatorID string, year int, month time.Month) (*domain.VerificationSummary, error)

	// CreatePaymentRecord settles one operator's month: systemAmount is the
	// verification summary total, difference = actual - system. The record is
	// immutable once stored.
	CreatePaymentRecord(ctx context.Context, operatorID string, year int, month time.Month, actualAmount decimal.Decimal, notes string, actor domain.Actor) (*domain.PaymentRecord, error)

	// ListPaymentRecords lists stored settlements for an operator (empty = all)
	// within one display-timezone month, or the whole year when month is zero.
	ListPaymentRecords(ctx context.Context, operatorID string, year int, month time.Month) ([]domain.PaymentRecord, error)

	// DailyReport aggregates one day's receipts in the display timezone.
	DailyReport(ctx context.Context, date time.Time, operatorID string) (*domain.DailyReport, error)

	// MonthlyReport aggregates one calendar month's receipts with a per-item
	// breakdown of the active ones.
	MonthlyReport(ctx context.Context, year int, month time.Month, operatorID string) (*domain.MonthlyReport, error)

	// ListUnverifiedReceipts lists unverified ACTIVE receipts, newest first.
	ListUnverifiedReceipts(ctx context.Context, operatorID string) ([]domain.Receipt, error)
}
