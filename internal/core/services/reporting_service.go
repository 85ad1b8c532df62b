package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

// reportingService aggregates receipts into reports, verification summaries
// and payment settlement records. All reads run against whatever committed
// state the store shows at query time; nothing here takes locks.
type reportingService struct {
	receiptRepo portsrepo.ReceiptReader
	receiptSvc  portssvc.ReceiptSvcFacade
	paymentRepo portsrepo.PaymentRecordRepositoryFacade
	loc         *time.Location
}

// NewReportingService creates a new ReportingService. Report day and month
// boundaries are evaluated in the display timezone.
func NewReportingService(receiptRepo portsrepo.ReceiptReader, receiptSvc portssvc.ReceiptSvcFacade, paymentRepo portsrepo.PaymentRecordRepositoryFacade, loc *time.Location) portssvc.ReportingSvcFacade {
	return &reportingService{
		receiptRepo: receiptRepo,
		receiptSvc:  receiptSvc,
		paymentRepo: paymentRepo,
		loc:         loc,
	}
}

var _ portssvc.ReportingSvcFacade = (*reportingService)(nil)

// VerifyBatch verifies each receipt independently and returns only the count
// of successful transitions. Per-item failures (missing, wrong state, already
// verified) are skipped without rolling back earlier successes; that contract
// is deliberate, and callers needing diagnostics verify one at a time.
func (s *reportingService) VerifyBatch(ctx context.Context, receiptIDs []string, actor domain.Actor) (int, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapVerifyReceipt) {
		return 0, apperrors.ErrForbidden
	}

	count := 0
	for _, id := range receiptIDs {
		if _, err := s.receiptSvc.VerifyReceipt(ctx, id, actor); err != nil {
			logger.Debug("Batch verify skipped receipt", slog.String("receipt_id", id), slog.String("error", err.Error()))
			continue
		}
		count++
	}

	logger.Info("Batch verification finished", slog.Int("requested", len(receiptIDs)), slog.Int("verified", count))
	return count, nil
}

// VerificationSummary partitions one calendar month's ACTIVE receipts into
// verified and unverified buckets, optionally for a single operator.
func (s *reportingService) VerificationSummary(ctx context.Context, operatorID string, year int, month time.Month) (*domain.VerificationSummary, error) {
	from, to, periodStart, periodEnd := s.monthBounds(year, month)

	receipts, err := s.receiptRepo.ListReceiptsByDateRange(ctx, from, to, operatorID)
	if err != nil {
		return nil, err
	}

	summary := &domain.VerificationSummary{
		PeriodStart:        periodStart,
		PeriodEnd:          periodEnd,
		TotalAmount:        decimal.Zero,
		VerifiedAmount:     decimal.Zero,
		UnverifiedAmount:   decimal.Zero,
		UnverifiedReceipts: []domain.Receipt{},
	}
	for _, r := range receipts {
		if r.Status != domain.ReceiptActive {
			continue
		}
		summary.TotalCount++
		summary.TotalAmount = summary.TotalAmount.Add(r.Amount)
		if r.IsVerified {
			summary.VerifiedCount++
			summary.VerifiedAmount = summary.VerifiedAmount.Add(r.Amount)
		} else {
			summary.UnverifiedCount++
			summary.UnverifiedAmount = summary.UnverifiedAmount.Add(r.Amount)
			summary.UnverifiedReceipts = append(summary.UnverifiedReceipts, r)
		}
	}
	return summary, nil
}

// CreatePaymentRecord settles one operator's month against the cash actually
// received. The actual amount is accepted as reported, zero or negative
// included, so real-world shortfalls and overages land in the record as-is.
func (s *reportingService) CreatePaymentRecord(ctx context.Context, operatorID string, year int, month time.Month, actualAmount decimal.Decimal, notes string, actor domain.Actor) (*domain.PaymentRecord, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapVerifyReceipt) {
		return nil, apperrors.ErrForbidden
	}

	summary, err := s.VerificationSummary(ctx, operatorID, year, month)
	if err != nil {
		return nil, err
	}

	record := domain.PaymentRecord{
		RecordID:     uuid.NewString(),
		OperatorID:   operatorID,
		PeriodStart:  summary.PeriodStart,
		PeriodEnd:    summary.PeriodEnd,
		SystemAmount: summary.TotalAmount,
		ActualAmount: actualAmount,
		Difference:   actualAmount.Sub(summary.TotalAmount),
		ReceivedBy:   actor.OperatorID,
		ReceivedAt:   time.Now().UTC(),
		Notes:        notes,
	}

	if err := s.paymentRepo.SavePaymentRecord(ctx, record); err != nil {
		logger.Error("Failed to save payment record", slog.String("operator_id", operatorID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Payment record created",
		slog.String("record_id", record.RecordID),
		slog.String("operator_id", operatorID),
		slog.String("system_amount", record.SystemAmount.String()),
		slog.String("difference", record.Difference.String()),
	)
	return &record, nil
}

// ListPaymentRecords lists stored settlements, newest first. The query window
// is evaluated in the display timezone, the same boundary CreatePaymentRecord
// used to stamp period_start, so every record lands in its own month.
func (s *reportingService) ListPaymentRecords(ctx context.Context, operatorID string, year int, month time.Month) ([]domain.PaymentRecord, error) {
	var from, to time.Time
	if month == 0 {
		yearStart := time.Date(year, time.January, 1, 0, 0, 0, 0, s.loc)
		from, to = yearStart.UTC(), yearStart.AddDate(1, 0, 0).UTC()
	} else {
		from, to, _, _ = s.monthBounds(year, month)
	}
	return s.paymentRepo.ListPaymentRecords(ctx, operatorID, from, to)
}

// DailyReport aggregates one display-timezone day of receipts.
func (s *reportingService) DailyReport(ctx context.Context, date time.Time, operatorID string) (*domain.DailyReport, error) {
	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, s.loc)
	from := dayStart.UTC()
	to := dayStart.AddDate(0, 0, 1).UTC()

	receipts, err := s.receiptRepo.ListReceiptsByDateRange(ctx, from, to, operatorID)
	if err != nil {
		return nil, err
	}

	return &domain.DailyReport{
		Date:     dayStart,
		Receipts: receipts,
		Summary:  summarize(receipts),
	}, nil
}

// MonthlyReport aggregates one calendar month of receipts with a per-item
// breakdown of the active ones.
func (s *reportingService) MonthlyReport(ctx context.Context, year int, month time.Month, operatorID string) (*domain.MonthlyReport, error) {
	from, to, periodStart, periodEnd := s.monthBounds(year, month)

	receipts, err := s.receiptRepo.ListReceiptsByDateRange(ctx, from, to, operatorID)
	if err != nil {
		return nil, err
	}

	summary := summarize(receipts)

	breakdown := make(map[string]domain.ItemBreakdown)
	for _, r := range receipts {
		if r.Status != domain.ReceiptActive {
			continue
		}
		entry := breakdown[r.ItemName]
		entry.Count++
		entry.Total = entry.Total.Add(r.Amount)
		breakdown[r.ItemName] = entry
	}
	for name, entry := range breakdown {
		if summary.ActiveTotal.IsPositive() {
			ratio, _ := entry.Total.Div(summary.ActiveTotal).Float64()
			entry.Percentage = ratio * 100
		}
		breakdown[name] = entry
	}

	return &domain.MonthlyReport{
		Year:          year,
		Month:         month,
		PeriodStart:   periodStart,
		PeriodEnd:     periodEnd,
		Receipts:      receipts,
		Summary:       summary,
		ItemBreakdown: breakdown,
	}, nil
}

// ListUnverifiedReceipts lists unverified ACTIVE receipts, newest first.
func (s *reportingService) ListUnverifiedReceipts(ctx context.Context, operatorID string) ([]domain.Receipt, error) {
	return s.receiptRepo.ListUnverifiedActive(ctx, operatorID)
}

// summarize partitions receipts into ACTIVE and VOIDED totals. VOID_PENDING
// receipts count in neither bucket; they remain visible in the raw list only.
func summarize(receipts []domain.Receipt) domain.ReportSummary {
	summary := domain.ReportSummary{
		ActiveTotal: decimal.Zero,
		VoidedTotal: decimal.Zero,
		NetTotal:    decimal.Zero,
	}
	for _, r := range receipts {
		switch r.Status {
		case domain.ReceiptActive:
			summary.ActiveCount++
			summary.ActiveTotal = summary.ActiveTotal.Add(r.Amount)
		case domain.ReceiptVoided:
			summary.VoidedCount++
			summary.VoidedTotal = summary.VoidedTotal.Add(r.Amount)
		case domain.ReceiptVoidPending:
			// Excluded from both buckets while the review is open.
		}
	}
	summary.NetTotal = summary.ActiveTotal
	return summary
}

// monthBounds returns the UTC query range [from, to) for a calendar month in
// the display timezone, plus the month's first and last day for presentation.
func (s *reportingService) monthBounds(year int, month time.Month) (from, to, periodStart, periodEnd time.Time) {
	periodStart = time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	next := periodStart.AddDate(0, 1, 0)
	periodEnd = next.AddDate(0, 0, -1)
	return periodStart.UTC(), next.UTC(), periodStart, periodEnd
}
