package services

import (
	"context"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// VoidSvcFacade defines the void request approval workflow.
type VoidSvcFacade interface {
	// RequestVoid opens a PENDING void request against an ACTIVE, unverified
	// receipt and moves the receipt to VOID_PENDING.
	RequestVoid(ctx context.Context, receiptID string, reason string, actor domain.Actor) (*domain.VoidRequest, error)

	// ApproveVoid approves a PENDING request; the receipt becomes VOIDED with
	// its void metadata populated from the request.
	ApproveVoid(ctx context.Context, requestID string, note string, actor domain.Actor) (*domain.VoidRequest, error)

	// RejectVoid rejects a PENDING request; the receipt returns to ACTIVE.
	RejectVoid(ctx context.Context, requestID string, note string, actor domain.Actor) (*domain.VoidRequest, error)

	// ListPendingRequests lists all PENDING void requests, newest first.
	ListPendingRequests(ctx context.Context) ([]domain.VoidRequest, error)
}
