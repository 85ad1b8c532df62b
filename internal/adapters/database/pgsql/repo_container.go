package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	receiptRepo := newPgxReceiptRepository(dbPool)
	voidRequestRepo := newPgxVoidRequestRepository(dbPool)
	feeItemRepo := newPgxFeeItemRepository(dbPool)
	paymentRecordRepo := newPgxPaymentRecordRepository(dbPool)

	return portsrepo.RepositoryProvider{
		ReceiptRepo:       receiptRepo,
		VoidRequestRepo:   voidRequestRepo,
		FeeItemRepo:       feeItemRepo,
		PaymentRecordRepo: paymentRecordRepo,
	}
}
