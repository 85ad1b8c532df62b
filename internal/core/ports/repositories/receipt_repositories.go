package repositories

import (
	"context"
	"time"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// ReceiptReader defines read operations for receipt data.
type ReceiptReader interface {
	// FindReceiptByID retrieves a receipt by its unique identifier.
	FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error)

	// FindReceiptByNo retrieves a receipt by its receipt number.
	FindReceiptByNo(ctx context.Context, receiptNo string) (*domain.Receipt, error)

	// ListReceiptsByDateRange retrieves receipts created within [from, to),
	// newest first, optionally filtered to one operator (empty = all).
	ListReceiptsByDateRange(ctx context.Context, from, to time.Time, operatorID string) ([]domain.Receipt, error)

	// ListUnverifiedActive retrieves unverified ACTIVE receipts, newest first,
	// optionally filtered to one operator.
	ListUnverifiedActive(ctx context.Context, operatorID string) ([]domain.Receipt, error)
}

// ReceiptWriter defines write operations for receipt data.
type ReceiptWriter interface {
	// SaveNewReceipt persists a new receipt, allocating the next receipt
	// number for (prefix, day) inside the same transaction. The day string is
	// the YYYYMMDD rendering of the creation instant in the display timezone.
	// Returns the stored receipt including its allocated number.
	SaveNewReceipt(ctx context.Context, receipt domain.Receipt, prefix string, day string) (*domain.Receipt, error)

	// MarkVerified flips the verification flag of an ACTIVE, unverified
	// receipt. Returns apperrors.ErrNotFound if the receipt does not exist and
	// apperrors.ErrConflict if it exists but the guarded update matched no row
	// (wrong status or already verified); callers re-read to classify.
	MarkVerified(ctx context.Context, receiptID string, verifierID string, at time.Time) error
}

// ReceiptRepositoryFacade combines all receipt-related repository interfaces.
type ReceiptRepositoryFacade interface {
	ReceiptReader
	ReceiptWriter
}

// ReceiptRepositoryWithTx extends ReceiptRepositoryFacade with transaction capabilities.
type ReceiptRepositoryWithTx interface {
	ReceiptRepositoryFacade
	TransactionManager
}
