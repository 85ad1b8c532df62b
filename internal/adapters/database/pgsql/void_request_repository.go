package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
)

type PgxVoidRequestRepository struct {
	BaseRepository
}

// newPgxVoidRequestRepository creates a new repository for void request data.
func newPgxVoidRequestRepository(pool *pgxpool.Pool) portsrepo.VoidRequestRepositoryFacade {
	return &PgxVoidRequestRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.VoidRequestRepositoryFacade = (*PgxVoidRequestRepository)(nil)

const voidRequestColumns = `
	request_id, receipt_id, reason, requested_by, requested_at,
	status, reviewed_by, reviewed_at, review_note
`

// CreateVoidRequest inserts a PENDING request and moves its receipt to
// VOID_PENDING in one transaction. The receipt update carries the CanVoid
// predicate in its WHERE clause and the partial unique index on pending
// requests backs up the one-pending-per-receipt rule.
func (r *PgxVoidRequestRepository) CreateVoidRequest(ctx context.Context, request domain.VoidRequest) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	receiptQuery := `
		UPDATE receipts
		SET status = $2
		WHERE receipt_id = $1 AND status = $3 AND is_verified = FALSE;
	`
	tag, err := tx.Exec(ctx, receiptQuery, request.ReceiptID, domain.ReceiptVoidPending, domain.ReceiptActive)
	if err != nil {
		return apperrors.NewAppError(500, "failed to move receipt to void pending", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receipts WHERE receipt_id = $1);`, request.ReceiptID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check receipt existence", err)
		}
		if !exists {
			return fmt.Errorf("%w: receipt %s", apperrors.ErrNotFound, request.ReceiptID)
		}
		return fmt.Errorf("%w: receipt %s not eligible for voiding", apperrors.ErrConflict, request.ReceiptID)
	}

	insertQuery := `
		INSERT INTO void_requests (` + voidRequestColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9);
	`
	_, err = tx.Exec(ctx, insertQuery,
		request.RequestID,
		request.ReceiptID,
		request.Reason,
		request.RequestedBy,
		request.RequestedAt,
		request.Status,
		nullableString(request.ReviewedBy),
		request.ReviewedAt,
		nullableString(request.ReviewNote),
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation on the pending index
			return fmt.Errorf("%w: pending void request for receipt %s", apperrors.ErrDuplicate, request.ReceiptID)
		}
		return apperrors.NewAppError(500, "failed to insert void request "+request.RequestID, err)
	}

	return r.Commit(ctx, tx)
}

// ResolveVoidRequest moves a PENDING request to APPROVED or REJECTED and
// applies the matching receipt transition in the same transaction. The
// request update is the serialization point: only one reviewer can flip a
// PENDING row, so double approvals lose cleanly.
func (r *PgxVoidRequestRepository) ResolveVoidRequest(ctx context.Context, requestID string, approve bool, reviewerID string, note string, at time.Time) (*domain.VoidRequest, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	newStatus := domain.VoidRejected
	if approve {
		newStatus = domain.VoidApproved
	}

	updateQuery := `
		UPDATE void_requests
		SET status = $2, reviewed_by = $3, reviewed_at = $4, review_note = $5
		WHERE request_id = $1 AND status = $6
		RETURNING ` + voidRequestColumns + `;
	`
	request, err := scanVoidRequest(tx.QueryRow(ctx, updateQuery, requestID, newStatus, reviewerID, at, nullableString(note), domain.VoidPending))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			var exists bool
			if err := tx.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM void_requests WHERE request_id = $1);`, requestID).Scan(&exists); err != nil {
				return nil, apperrors.NewAppError(500, "failed to check void request existence", err)
			}
			if !exists {
				return nil, fmt.Errorf("%w: void request %s", apperrors.ErrNotFound, requestID)
			}
			return nil, fmt.Errorf("%w: void request %s is not pending", apperrors.ErrInvalidState, requestID)
		}
		return nil, apperrors.NewAppError(500, "failed to resolve void request "+requestID, err)
	}

	var tag pgconn.CommandTag
	if approve {
		receiptQuery := `
			UPDATE receipts
			SET status = $2, void_reason = $3, voided_by = $4, voided_at = $5
			WHERE receipt_id = $1 AND status = $6;
		`
		tag, err = tx.Exec(ctx, receiptQuery, request.ReceiptID, domain.ReceiptVoided, request.Reason, reviewerID, at, domain.ReceiptVoidPending)
	} else {
		receiptQuery := `
			UPDATE receipts
			SET status = $2
			WHERE receipt_id = $1 AND status = $3;
		`
		tag, err = tx.Exec(ctx, receiptQuery, request.ReceiptID, domain.ReceiptActive, domain.ReceiptVoidPending)
	}
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to update receipt for void request "+requestID, err)
	}
	if err := receiptTransitionApplied(tag, request.ReceiptID); err != nil {
		return nil, err
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}
	return request, nil
}

// FindVoidRequestByID retrieves a void request by its unique identifier.
func (r *PgxVoidRequestRepository) FindVoidRequestByID(ctx context.Context, requestID string) (*domain.VoidRequest, error) {
	query := `SELECT ` + voidRequestColumns + ` FROM void_requests WHERE request_id = $1;`
	request, err := scanVoidRequest(r.Pool.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: void request %s", apperrors.ErrNotFound, requestID)
		}
		return nil, apperrors.NewAppError(500, "failed to find void request", err)
	}
	return request, nil
}

// ListPendingVoidRequests retrieves all PENDING requests, newest first.
func (r *PgxVoidRequestRepository) ListPendingVoidRequests(ctx context.Context) ([]domain.VoidRequest, error) {
	query := `
		SELECT ` + voidRequestColumns + `
		FROM void_requests
		WHERE status = $1
		ORDER BY requested_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, domain.VoidPending)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list pending void requests", err)
	}
	defer rows.Close()

	requests := []domain.VoidRequest{}
	for rows.Next() {
		request, err := scanVoidRequest(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan void request row", err)
		}
		requests = append(requests, *request)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating void request rows", err)
	}
	return requests, nil
}

// receiptTransitionApplied guards the paired receipt update inside a void
// resolution. The request row just flipped from PENDING, so exactly one
// VOID_PENDING receipt row must follow; zero rows means the receipt and its
// request disagree, and the transaction must not commit that way.
func receiptTransitionApplied(tag pgconn.CommandTag, receiptID string) error {
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: receipt %s is not void pending", apperrors.ErrConflict, receiptID)
	}
	return nil
}

func scanVoidRequest(row rowScanner) (*domain.VoidRequest, error) {
	var (
		request    domain.VoidRequest
		reviewedBy *string
		reviewNote *string
	)
	err := row.Scan(
		&request.RequestID,
		&request.ReceiptID,
		&request.Reason,
		&request.RequestedBy,
		&request.RequestedAt,
		&request.Status,
		&reviewedBy,
		&request.ReviewedAt,
		&reviewNote,
	)
	if err != nil {
		return nil, err
	}
	request.ReviewedBy = derefString(reviewedBy)
	request.ReviewNote = derefString(reviewNote)
	return &request, nil
}
