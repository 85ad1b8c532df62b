package repositories

import (
	"context"
	"time"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// PaymentRecordReader defines read operations for payment records.
type PaymentRecordReader interface {
	// ListPaymentRecords retrieves records for an operator (empty = all) whose
	// period starts within [from, to), newest first.
	ListPaymentRecords(ctx context.Context, operatorID string, from, to time.Time) ([]domain.PaymentRecord, error)
}

// PaymentRecordWriter defines write operations for payment records. Records
// are insert-only; there is no update or delete.
type PaymentRecordWriter interface {
	// SavePaymentRecord persists a new settlement record.
	SavePaymentRecord(ctx context.Context, record domain.PaymentRecord) error
}

// PaymentRecordRepositoryFacade combines all payment record repository interfaces.
type PaymentRecordRepositoryFacade interface {
	PaymentRecordReader
	PaymentRecordWriter
}
