package services

import (
	"context"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
	"github.com/swimhall/receipt_management_app/internal/dto"
)

// ReceiptSvcFacade defines operations on individual receipts.
type ReceiptSvcFacade interface {
	// CreateReceipt issues a new receipt for a catalog item, allocating the
	// next receipt number and rendering the legal-text numeral string.
	CreateReceipt(ctx context.Context, req dto.CreateReceiptRequest, actor domain.Actor) (*domain.Receipt, error)

	// GetReceiptByID retrieves a receipt by its unique identifier.
	GetReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// GetReceiptByNo retrieves a receipt by its receipt number.
	GetReceiptByNo(ctx context.Context, receiptNo string) (*domain.Receipt, error)

	// ListDailyReceipts lists receipts created on one day in the display
	// timezone, newest first, optionally filtered to one operator.
	ListDailyReceipts(ctx context.Context, day string, operatorID string) ([]domain.Receipt, error)

	// VerifyReceipt marks an ACTIVE, unverified receipt as cash-verified.
	VerifyReceipt(ctx context.Context, receiptID string, actor domain.Actor) (*domain.Receipt, error)
}
