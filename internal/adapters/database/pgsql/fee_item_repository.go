package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/swimhall/receipt_management_app/internal/apperrors"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
	portsrepo "github.com/swimhall/receipt_management_app/internal/core/ports/repositories"
)

type PgxFeeItemRepository struct {
	BaseRepository
}

// newPgxFeeItemRepository creates a new repository for fee item catalog data.
func newPgxFeeItemRepository(pool *pgxpool.Pool) portsrepo.FeeItemRepositoryFacade {
	return &PgxFeeItemRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.FeeItemRepositoryFacade = (*PgxFeeItemRepository)(nil)

const feeItemColumns = `
	item_id, item_code, item_name, category, identity_tier, default_price,
	description, is_active, sort_order,
	created_at, created_by, last_updated_at, last_updated_by
`

// SaveFeeItem persists a new fee item.
func (r *PgxFeeItemRepository) SaveFeeItem(ctx context.Context, item domain.FeeItem) error {
	query := `
		INSERT INTO fee_items (` + feeItemColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.ItemCode,
		item.ItemName,
		item.Category,
		nullableString(string(item.IdentityTier)),
		item.DefaultPrice,
		nullableString(item.Description),
		item.IsActive,
		item.SortOrder,
		item.CreatedAt,
		item.CreatedBy,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: fee item code %s", apperrors.ErrDuplicate, item.ItemCode)
		}
		return apperrors.NewAppError(500, "failed to insert fee item "+item.ItemID, err)
	}
	return nil
}

// UpdateFeeItem updates an existing fee item's editable fields.
func (r *PgxFeeItemRepository) UpdateFeeItem(ctx context.Context, item domain.FeeItem) error {
	query := `
		UPDATE fee_items
		SET item_name = $2, category = $3, identity_tier = $4, default_price = $5,
		    description = $6, is_active = $7, sort_order = $8,
		    last_updated_at = $9, last_updated_by = $10
		WHERE item_id = $1;
	`
	tag, err := r.Pool.Exec(ctx, query,
		item.ItemID,
		item.ItemName,
		item.Category,
		nullableString(string(item.IdentityTier)),
		item.DefaultPrice,
		nullableString(item.Description),
		item.IsActive,
		item.SortOrder,
		item.LastUpdatedAt,
		item.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update fee item "+item.ItemID, err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: fee item %s", apperrors.ErrNotFound, item.ItemID)
	}
	return nil
}

// FindFeeItemByID retrieves a fee item by its unique identifier.
func (r *PgxFeeItemRepository) FindFeeItemByID(ctx context.Context, itemID string) (*domain.FeeItem, error) {
	query := `SELECT ` + feeItemColumns + ` FROM fee_items WHERE item_id = $1;`
	return r.scanFeeItemRow(r.Pool.QueryRow(ctx, query, itemID), itemID)
}

// FindFeeItemByCode retrieves a fee item by its business code.
func (r *PgxFeeItemRepository) FindFeeItemByCode(ctx context.Context, itemCode string) (*domain.FeeItem, error) {
	query := `SELECT ` + feeItemColumns + ` FROM fee_items WHERE item_code = $1;`
	return r.scanFeeItemRow(r.Pool.QueryRow(ctx, query, itemCode), itemCode)
}

// ListActiveFeeItems retrieves active items ordered for display.
func (r *PgxFeeItemRepository) ListActiveFeeItems(ctx context.Context, category domain.FeeItemCategory) ([]domain.FeeItem, error) {
	query := `
		SELECT ` + feeItemColumns + `
		FROM fee_items
		WHERE is_active = TRUE
		  AND ($1 = '' OR category = $1)
		ORDER BY category, sort_order, item_name;
	`
	rows, err := r.Pool.Query(ctx, query, string(category))
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list fee items", err)
	}
	defer rows.Close()

	items := []domain.FeeItem{}
	for rows.Next() {
		item, err := scanFeeItem(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan fee item row", err)
		}
		items = append(items, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "failed iterating fee item rows", err)
	}
	return items, nil
}

func (r *PgxFeeItemRepository) scanFeeItemRow(row pgx.Row, key string) (*domain.FeeItem, error) {
	item, err := scanFeeItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: fee item %s", apperrors.ErrNotFound, key)
		}
		return nil, apperrors.NewAppError(500, "failed to scan fee item", err)
	}
	return item, nil
}

func scanFeeItem(row rowScanner) (*domain.FeeItem, error) {
	var (
		item         domain.FeeItem
		identityTier *string
		description  *string
	)
	err := row.Scan(
		&item.ItemID,
		&item.ItemCode,
		&item.ItemName,
		&item.Category,
		&identityTier,
		&item.DefaultPrice,
		&description,
		&item.IsActive,
		&item.SortOrder,
		&item.CreatedAt,
		&item.CreatedBy,
		&item.LastUpdatedAt,
		&item.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	item.IdentityTier = domain.IdentityTier(derefString(identityTier))
	item.Description = derefString(description)
	return &item, nil
}
