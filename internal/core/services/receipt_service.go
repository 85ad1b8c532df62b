package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/dto"
	"github.com/swimhall/receipt_management_app/internal/middleware"
	"github.com/swimhall/receipt_management_app/internal/utils/numerals"
)

var (
	ErrFeeItemUnknown  = fmt.Errorf("%w: unknown fee item", apperrors.ErrValidation)
	ErrFeeItemInactive = fmt.Errorf("%w: fee item is not active", apperrors.ErrValidation)
	ErrAmountNegative  = fmt.Errorf("%w: amount must not be negative", apperrors.ErrValidation)
	ErrAmountTooLarge  = fmt.Errorf("%w: amount exceeds the supported magnitude", apperrors.ErrValidation)
	ErrAlreadyVerified = fmt.Errorf("%w: receipt is already verified", apperrors.ErrInvalidState)
	ErrNotActive       = fmt.Errorf("%w: only active receipts can be verified", apperrors.ErrInvalidState)
)

// maxReceiptAmount is the exclusive upper bound on receipt amounts. It matches
// the NUMERIC(12,2) amount column (ten integer digits) and stays far below the
// largest magnitude the legal-text renderer can express.
var maxReceiptAmount = decimal.New(1, 10)

// receiptService provides receipt issuance, lookup and verification.
type receiptService struct {
	receiptRepo portsrepo.ReceiptRepositoryWithTx
	feeItemRepo portsrepo.FeeItemReader
	prefix      string
	loc         *time.Location
}

// NewReceiptService creates a new ReceiptService. The prefix and location
// control receipt numbering: numbers embed the creation date rendered in the
// display timezone, while stored instants stay UTC.
func NewReceiptService(receiptRepo portsrepo.ReceiptRepositoryWithTx, feeItemRepo portsrepo.FeeItemReader, prefix string, loc *time.Location) portssvc.ReceiptSvcFacade {
	return &receiptService{
		receiptRepo: receiptRepo,
		feeItemRepo: feeItemRepo,
		prefix:      prefix,
		loc:         loc,
	}
}

var _ portssvc.ReceiptSvcFacade = (*receiptService)(nil)

// CreateReceipt issues a new receipt. Number allocation, legal-text rendering
// and the insert happen as one unit: the repository allocates the sequence
// inside the insert transaction and retries on number collisions.
func (s *receiptService) CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, actor domain.Actor) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapCreateReceipt) {
		return nil, apperrors.ErrForbidden
	}

	if req.Amount.LessThan(decimal.Zero) {
		return nil, ErrAmountNegative
	}
	if req.Amount.GreaterThanOrEqual(maxReceiptAmount) {
		return nil, ErrAmountTooLarge
	}

	item, err := s.feeItemRepo.FindFeeItemByID(ctx, req.ItemID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrFeeItemUnknown, req.ItemID)
		}
		logger.Error("Failed to fetch fee item for receipt creation", slog.String("item_id", req.ItemID), slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to fetch fee item: %w", err)
	}
	if !item.IsActive {
		return nil, fmt.Errorf("%w: %s", ErrFeeItemInactive, item.ItemCode)
	}

	now := time.Now().UTC()
	receipt := domain.Receipt{
		ReceiptID:       uuid.NewString(),
		ItemID:          item.ItemID,
		ItemName:        item.ItemName,
		Amount:          req.Amount,
		AmountLegalText: numerals.ToLegalText(req.Amount),
		Remark:          strings.TrimSpace(req.Remark),
		OperatorID:      actor.OperatorID,
		OperatorName:    actor.DisplayName,
		CreatedAt:       now,
		Status:          domain.ReceiptActive,
	}

	day := now.In(s.loc).Format("20060102")
	saved, err := s.receiptRepo.SaveNewReceipt(ctx, receipt, s.prefix, day)
	if err != nil {
		logger.Error("Failed to save receipt", slog.String("receipt_id", receipt.ReceiptID), slog.String("error", err.Error()))
		return nil, err
	}

	logger.Info("Receipt created", slog.String("receipt_no", saved.ReceiptNo), slog.String("operator_id", actor.OperatorID))
	return saved, nil
}

// GetReceiptByID retrieves a receipt by its unique identifier.
func (s *receiptService) GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	return s.receiptRepo.FindReceiptByID(ctx, receiptID)
}

// GetReceiptByNo retrieves a receipt by its receipt number.
func (s *receiptService) GetReceiptByNo(ctx context.Context, receiptNo string) (*domain.Receipt, error) {
	return s.receiptRepo.FindReceiptByNo(ctx, receiptNo)
}

// ListDailyReceipts lists receipts created on one display-timezone day
// (format 2006-01-02), newest first.
func (s *receiptService) ListDailyReceipts(ctx context.Context, day string, operatorID string) ([]domain.Receipt, error) {
	date, err := time.ParseInLocation("2006-01-02", day, s.loc)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid date %q", apperrors.ErrValidation, day)
	}
	from := date.UTC()
	to := date.AddDate(0, 0, 1).UTC()
	return s.receiptRepo.ListReceiptsByDateRange(ctx, from, to, operatorID)
}

// VerifyReceipt marks a receipt as cash-verified. The transition is a guarded
// update in the repository; a failed guard is re-read here and classified so
// the caller sees which rule actually blocked it.
func (s *receiptService) VerifyReceipt(ctx context.Context, receiptID string, actor domain.Actor) (*domain.Receipt, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapVerifyReceipt) {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	err := s.receiptRepo.MarkVerified(ctx, receiptID, actor.OperatorID, now)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, s.classifyVerifyFailure(ctx, receiptID)
		}
		return nil, err
	}

	logger.Info("Receipt verified", slog.String("receipt_id", receiptID), slog.String("verifier_id", actor.OperatorID))
	return s.receiptRepo.FindReceiptByID(ctx, receiptID)
}

// classifyVerifyFailure re-reads a receipt whose guarded verification update
// matched no row and maps the current state to a specific error.
func (s *receiptService) classifyVerifyFailure(ctx context.Context, receiptID string) error {
	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return err
	}
	if receipt.IsVerified {
		return ErrAlreadyVerified
	}
	if receipt.Status != domain.ReceiptActive {
		return ErrNotActive
	}
	// The guard failed but the re-read looks eligible: a concurrent writer won
	// and has already moved on. Report the conflict as such.
	return apperrors.ErrConflict
}
