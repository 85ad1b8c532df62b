package pgsql

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
)

type PgxPaymentRecordRepository struct {
	BaseRepository
}

// newPgxPaymentRecordRepository creates a new repository for payment records.
func newPgxPaymentRecordRepository(pool *pgxpool.Pool) portsrepo.PaymentRecordRepositoryFacade {
	return &PgxPaymentRecordRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.PaymentRecordRepositoryFacade = (*PgxPaymentRecordRepository)(nil)

// SavePaymentRecord persists a new settlement record. Records are insert-only;
// there is deliberately no update statement in this repository.
func (r *PgxPaymentRecordRepository) SavePaymentRecord(ctx context.Context, record domain.PaymentRecord) error {
	query := `
		INSERT INTO payment_records (
			record_id, operator_id, period_start, period_end,
			system_amount, actual_amount, difference,
			received_by, received_at, notes
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := r.Pool.Exec(ctx, query,
		record.RecordID,
		record.OperatorID,
		record.PeriodStart,
		record.PeriodEnd,
		record.SystemAmount,
		record.ActualAmount,
		record.Difference,
		record.ReceivedBy,
		record.ReceivedAt,
		nullableString(record.Notes),
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment record "+record.RecordID, err)
	}
	return nil
}

// ListPaymentRecords retrieves records for an operator (empty = all) whose
// period starts within [from, to), newest first.
func (r *PgxPaymentRecordRepository) ListPaymentRecords(ctx context.Context, operatorID string, from, to time.Time) ([]domain.PaymentRecord, error) {
	query := `
		SELECT record_id, operator_id, period_start, period_end,
		       system_amount, actual_amount, difference,
		       received_by, received_at, notes
		FROM payment_records
		WHERE period_start >= $1 AND period_start < $2
		  AND ($3 = '' OR operator_id = $3)
		ORDER BY received_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, operatorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list payment records", err)
	}
	defer rows.Close()

	records := []domain.PaymentRecord{}
	for rows.Next() {
		var (
			record domain.PaymentRecord
			notes  *string
		)
		err := rows.Scan(
			&record.RecordID,
			&record.OperatorID,
			&record.PeriodStart,
			&record.PeriodEnd,
			&record.SystemAmount,
			&record.ActualAmount,
			&record.Difference,
			&record.ReceivedBy,
			&record.ReceivedAt,
			&notes,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan payment record row", err)
		}
		record.Notes = derefString(notes)
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating payment record rows", err)
	}
	return records, nil
}
