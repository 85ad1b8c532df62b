package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
	portssvc "github.com/swimhall/receipt_management_app/internal/core/ports/services"
	"github.com/swimhall/receipt_management_app/internal/middleware"
)

var (
	ErrVoidReasonRequired = fmt.Errorf("%w: void reason is required", apperrors.ErrValidation)
	ErrCannotVoidVerified = fmt.Errorf("%w: verified receipts cannot be voided", apperrors.ErrInvalidState)
	ErrReceiptNotVoidable = fmt.Errorf("%w: receipt is not active", apperrors.ErrInvalidState)
	ErrDuplicatePending   = fmt.Errorf("%w: a void request is already pending for this receipt", apperrors.ErrInvalidState)
	ErrAlreadyProcessed   = fmt.Errorf("%w: void request has already been processed", apperrors.ErrInvalidState)
)

// voidService coordinates the void request approval workflow. The receipt and
// request rows always change together inside one repository transaction; this
// service owns the workflow rules and error classification.
type voidService struct {
	voidRepo    portsrepo.VoidRequestRepositoryFacade
	receiptRepo portsrepo.ReceiptReader
}

// NewVoidService creates a new VoidService.
func NewVoidService(voidRepo portsrepo.VoidRequestRepositoryFacade, receiptRepo portsrepo.ReceiptReader) portssvc.VoidSvcFacade {
	return &voidService{
		voidRepo:    voidRepo,
		receiptRepo: receiptRepo,
	}
}

var _ portssvc.VoidSvcFacade = (*voidService)(nil)

// RequestVoid opens a void request against an ACTIVE, unverified receipt.
// The pre-check picks the right message; the repository guard makes the
// decision authoritative under concurrency.
func (s *voidService) RequestVoid(ctx context.Context, receiptID string, reason string, actor domain.Actor) (*domain.VoidRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapRequestVoid) {
		return nil, apperrors.ErrForbidden
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, ErrVoidReasonRequired
	}

	receipt, err := s.receiptRepo.FindReceiptByID(ctx, receiptID)
	if err != nil {
		return nil, err
	}
	if !receipt.CanVoid() {
		return nil, s.classifyNotVoidable(receipt)
	}

	request := domain.VoidRequest{
		RequestID:   uuid.NewString(),
		ReceiptID:   receiptID,
		Reason:      reason,
		RequestedBy: actor.OperatorID,
		RequestedAt: time.Now().UTC(),
		Status:      domain.VoidPending,
	}

	if err := s.voidRepo.CreateVoidRequest(ctx, request); err != nil {
		switch {
		case errors.Is(err, apperrors.ErrDuplicate):
			return nil, ErrDuplicatePending
		case errors.Is(err, apperrors.ErrConflict):
			// Lost a race on the receipt guard; re-read for the real reason.
			current, rerr := s.receiptRepo.FindReceiptByID(ctx, receiptID)
			if rerr != nil {
				return nil, rerr
			}
			return nil, s.classifyNotVoidable(current)
		default:
			logger.Error("Failed to create void request", slog.String("receipt_id", receiptID), slog.String("error", err.Error()))
			return nil, err
		}
	}

	logger.Info("Void request created", slog.String("request_id", request.RequestID), slog.String("receipt_id", receiptID), slog.String("requester_id", actor.OperatorID))
	return &request, nil
}

// classifyNotVoidable distinguishes the two CanVoid failure modes so callers
// get a precise message even though the guard is a single predicate.
func (s *voidService) classifyNotVoidable(receipt *domain.Receipt) error {
	if receipt.IsVerified {
		return ErrCannotVoidVerified
	}
	if receipt.Status != domain.ReceiptActive {
		return fmt.Errorf("%w (status %s)", ErrReceiptNotVoidable, receipt.Status)
	}
	return apperrors.ErrConflict
}

// ApproveVoid approves a PENDING request and voids its receipt.
func (s *voidService) ApproveVoid(ctx context.Context, requestID string, note string, actor domain.Actor) (*domain.VoidRequest, error) {
	return s.resolve(ctx, requestID, true, note, actor)
}

// RejectVoid rejects a PENDING request and restores its receipt to ACTIVE.
// Verification state is untouched; a receipt cannot have been verified while
// VOID_PENDING, by construction.
func (s *voidService) RejectVoid(ctx context.Context, requestID string, note string, actor domain.Actor) (*domain.VoidRequest, error) {
	return s.resolve(ctx, requestID, false, note, actor)
}

func (s *voidService) resolve(ctx context.Context, requestID string, approve bool, note string, actor domain.Actor) (*domain.VoidRequest, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if !actor.Can(domain.CapApproveVoid) {
		return nil, apperrors.ErrForbidden
	}

	now := time.Now().UTC()
	request, err := s.voidRepo.ResolveVoidRequest(ctx, requestID, approve, actor.OperatorID, strings.TrimSpace(note), now)
	if err != nil {
		if errors.Is(err, apperrors.ErrInvalidState) {
			return nil, ErrAlreadyProcessed
		}
		logger.Error("Failed to resolve void request", slog.String("request_id", requestID), slog.String("error", err.Error()))
		return nil, err
	}

	outcome := "rejected"
	if approve {
		outcome = "approved"
	}
	logger.Info("Void request resolved", slog.String("request_id", requestID), slog.String("outcome", outcome), slog.String("reviewer_id", actor.OperatorID))
	return request, nil
}

// ListPendingRequests lists all PENDING void requests, newest first.
func (s *voidService) ListPendingRequests(ctx context.Context) ([]domain.VoidRequest, error) {
	return s.voidRepo.ListPendingVoidRequests(ctx)
}
