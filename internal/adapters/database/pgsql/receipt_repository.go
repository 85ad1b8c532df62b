package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
)

// maxNumberAttempts bounds the retry loop when two creators race for the same
// receipt number. The unique constraint on receipt_no is the authority; a
// loser simply re-reads the max and tries the next number.
const maxNumberAttempts = 5

type PgxReceiptRepository struct {
	BaseRepository
}

// newPgxReceiptRepository creates a new repository for receipt data.
func newPgxReceiptRepository(pool *pgxpool.Pool) portsrepo.ReceiptRepositoryWithTx {
	return &PgxReceiptRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.ReceiptRepositoryWithTx = (*PgxReceiptRepository)(nil)

const receiptColumns = `
	receipt_id, receipt_no, item_id, item_name, amount, amount_legal_text, remark,
	operator_id, operator_name, created_at, status,
	is_verified, verified_by, verified_at,
	void_reason, voided_by, voided_at
`

// SaveNewReceipt persists a new receipt, allocating the next sequence number
// for (prefix, day) inside the same transaction. The read-then-insert is not
// atomic on its own, so the unique constraint plus a bounded retry makes the
// allocation safe against concurrent creators.
func (r *PgxReceiptRepository) SaveNewReceipt(ctx context.Context, receipt domain.Receipt, prefix string, day string) (*domain.Receipt, error) {
	numberPrefix := fmt.Sprintf("%s-%s-", prefix, day)

	var lastErr error
	for attempt := 0; attempt < maxNumberAttempts; attempt++ {
		receiptNo, err := r.tryInsertWithNextNumber(ctx, receipt, numberPrefix)
		if err == nil {
			receipt.ReceiptNo = receiptNo
			return &receipt, nil
		}
		if !errors.Is(err, apperrors.ErrDuplicate) {
			return nil, err
		}
		lastErr = err
	}
	return nil, fmt.Errorf("%w: receipt number allocation kept colliding: %v", apperrors.ErrConflict, lastErr)
}

// tryInsertWithNextNumber runs one allocation attempt in its own transaction.
// Ordering by length first keeps the max correct after the sequence widens
// past 9999, where plain lexicographic order would go backwards.
func (r *PgxReceiptRepository) tryInsertWithNextNumber(ctx context.Context, receipt domain.Receipt, numberPrefix string) (string, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return "", err
	}
	defer r.Rollback(ctx, tx)

	var lastNo *string
	maxQuery := `
		SELECT receipt_no FROM receipts
		WHERE receipt_no LIKE $1
		ORDER BY length(receipt_no) DESC, receipt_no DESC
		LIMIT 1;
	`
	err = tx.QueryRow(ctx, maxQuery, numberPrefix+"%").Scan(&lastNo)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return "", apperrors.NewAppError(500, "failed to read last receipt number", err)
	}

	receiptNo, err := nextReceiptNo(numberPrefix, lastNo)
	if err != nil {
		return "", apperrors.NewAppError(500, "failed to compute next receipt number", err)
	}

	insertQuery := `
		INSERT INTO receipts (` + receiptColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17);
	`
	_, err = tx.Exec(ctx, insertQuery,
		receipt.ReceiptID,
		receiptNo,
		receipt.ItemID,
		receipt.ItemName,
		receipt.Amount,
		receipt.AmountLegalText,
		nullableString(receipt.Remark),
		receipt.OperatorID,
		receipt.OperatorName,
		receipt.CreatedAt,
		receipt.Status,
		receipt.IsVerified,
		nullableString(receipt.VerifiedBy),
		receipt.VerifiedAt,
		nullableString(receipt.VoidReason),
		nullableString(receipt.VoidedBy),
		receipt.VoidedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return "", fmt.Errorf("%w: receipt number %s", apperrors.ErrDuplicate, receiptNo)
		}
		return "", apperrors.NewAppError(500, "failed to insert receipt "+receipt.ReceiptID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return "", err
	}
	return receiptNo, nil
}

// nextReceiptNo computes the successor of the last allocated number in one
// (prefix, day) sequence. A nil last number starts the sequence at 0001. The
// suffix is zero-padded to four digits and widens naturally once the sequence
// passes 9999, so 10000 follows 9999.
func nextReceiptNo(numberPrefix string, lastNo *string) (string, error) {
	seq := 1
	if lastNo != nil {
		suffix := strings.TrimPrefix(*lastNo, numberPrefix)
		parsed, err := strconv.Atoi(suffix)
		if err != nil {
			return "", fmt.Errorf("malformed receipt number %s: %w", *lastNo, err)
		}
		seq = parsed + 1
	}
	return fmt.Sprintf("%s%04d", numberPrefix, seq), nil
}

// FindReceiptByID retrieves a receipt by its unique identifier.
func (r *PgxReceiptRepository) FindReceiptByID(ctx context.Context, receiptID string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_id = $1;`
	return r.scanReceiptRow(r.Pool.QueryRow(ctx, query, receiptID))
}

// FindReceiptByNo retrieves a receipt by its receipt number.
func (r *PgxReceiptRepository) FindReceiptByNo(ctx context.Context, receiptNo string) (*domain.Receipt, error) {
	query := `SELECT ` + receiptColumns + ` FROM receipts WHERE receipt_no = $1;`
	return r.scanReceiptRow(r.Pool.QueryRow(ctx, query, receiptNo))
}

// ListReceiptsByDateRange retrieves receipts created within [from, to),
// newest first, optionally filtered to one operator.
func (r *PgxReceiptRepository) ListReceiptsByDateRange(ctx context.Context, from, to time.Time, operatorID string) ([]domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE created_at >= $1 AND created_at < $2
		  AND ($3 = '' OR operator_id = $3)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, from, to, operatorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list receipts by date range", err)
	}
	defer rows.Close()
	return scanReceipts(rows)
}

// ListUnverifiedActive retrieves unverified ACTIVE receipts, newest first.
func (r *PgxReceiptRepository) ListUnverifiedActive(ctx context.Context, operatorID string) ([]domain.Receipt, error) {
	query := `
		SELECT ` + receiptColumns + `
		FROM receipts
		WHERE status = $1 AND is_verified = FALSE
		  AND ($2 = '' OR operator_id = $2)
		ORDER BY created_at DESC;
	`
	rows, err := r.Pool.Query(ctx, query, domain.ReceiptActive, operatorID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list unverified receipts", err)
	}
	defer rows.Close()
	return scanReceipts(rows)
}

// MarkVerified flips the verification flag of an ACTIVE, unverified receipt.
// The expected prior state travels in the WHERE clause, so a concurrent
// verify or void request on the same receipt cannot both win.
func (r *PgxReceiptRepository) MarkVerified(ctx context.Context, receiptID string, verifierID string, at time.Time) error {
	query := `
		UPDATE receipts
		SET is_verified = TRUE, verified_by = $2, verified_at = $3
		WHERE receipt_id = $1 AND status = $4 AND is_verified = FALSE;
	`
	tag, err := r.Pool.Exec(ctx, query, receiptID, verifierID, at, domain.ReceiptActive)
	if err != nil {
		return apperrors.NewAppError(500, "failed to mark receipt verified", err)
	}
	if tag.RowsAffected() == 0 {
		var exists bool
		if err := r.Pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM receipts WHERE receipt_id = $1);`, receiptID).Scan(&exists); err != nil {
			return apperrors.NewAppError(500, "failed to check receipt existence", err)
		}
		if !exists {
			return fmt.Errorf("%w: receipt %s", apperrors.ErrNotFound, receiptID)
		}
		return fmt.Errorf("%w: receipt %s not eligible for verification", apperrors.ErrConflict, receiptID)
	}
	return nil
}

// rowScanner covers both pgx.Row and pgx.Rows for the shared scan helper.
type rowScanner interface {
	Scan(dest ...any) error
}

func (r *PgxReceiptRepository) scanReceiptRow(row pgx.Row) (*domain.Receipt, error) {
	receipt, err := scanReceipt(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: receipt", apperrors.ErrNotFound)
		}
		return nil, apperrors.NewAppError(500, "failed to scan receipt", err)
	}
	return receipt, nil
}

func scanReceipt(row rowScanner) (*domain.Receipt, error) {
	var (
		receipt    domain.Receipt
		remark     *string
		verifiedBy *string
		voidReason *string
		voidedBy   *string
	)
	err := row.Scan(
		&receipt.ReceiptID,
		&receipt.ReceiptNo,
		&receipt.ItemID,
		&receipt.ItemName,
		&receipt.Amount,
		&receipt.AmountLegalText,
		&remark,
		&receipt.OperatorID,
		&receipt.OperatorName,
		&receipt.CreatedAt,
		&receipt.Status,
		&receipt.IsVerified,
		&verifiedBy,
		&receipt.VerifiedAt,
		&voidReason,
		&voidedBy,
		&receipt.VoidedAt,
	)
	if err != nil {
		return nil, err
	}
	receipt.Remark = derefString(remark)
	receipt.VerifiedBy = derefString(verifiedBy)
	receipt.VoidReason = derefString(voidReason)
	receipt.VoidedBy = derefString(voidedBy)
	return &receipt, nil
}

func scanReceipts(rows pgx.Rows) ([]domain.Receipt, error) {
	receipts := []domain.Receipt{}
	for rows.Next() {
		receipt, err := scanReceipt(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan receipt row", err)
		}
		receipts = append(receipts, *receipt)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating receipt rows", err)
	}
	return receipts, nil
}

func nullableString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
