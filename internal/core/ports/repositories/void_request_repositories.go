package repositories

import (
	"context"
	"time"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// VoidRequestReader defines read operations for void request data.
type VoidRequestReader interface {
	// FindVoidRequestByID retrieves a void request by its unique identifier.
	FindVoidRequestByID(ctx context.Context, requestID string) (*domain.VoidRequest, error)

	// ListPendingVoidRequests retrieves all PENDING requests, newest first.
	ListPendingVoidRequests(ctx context.Context) ([]domain.VoidRequest, error)
}

// VoidRequestWriter defines write operations for void request data. Both
// writes pair the request mutation with the matching receipt status change in
// one database transaction.
type VoidRequestWriter interface {
	// CreateVoidRequest inserts a PENDING request and moves its receipt from
	// ACTIVE (unverified) to VOID_PENDING atomically. Returns
	// apperrors.ErrDuplicate if a PENDING request already exists for the
	// receipt, apperrors.ErrNotFound if the receipt is absent, and
	// apperrors.ErrConflict if the receipt guard matched no row.
	CreateVoidRequest(ctx context.Context, request domain.VoidRequest) error

	// ResolveVoidRequest moves a PENDING request to APPROVED or REJECTED and
	// applies the matching receipt transition (VOIDED with void metadata, or
	// back to ACTIVE) atomically. Returns apperrors.ErrNotFound if the request
	// is absent and apperrors.ErrInvalidState if it is no longer PENDING.
	ResolveVoidRequest(ctx context.Context, requestID string, approve bool, reviewerID string, note string, at time.Time) (*domain.VoidRequest, error)
}

// VoidRequestRepositoryFacade combines all void-request repository interfaces.
type VoidRequestRepositoryFacade interface {
	VoidRequestReader
	VoidRequestWriter
}
