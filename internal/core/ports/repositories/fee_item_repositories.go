package repositories

import (
	"context"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// FeeItemReader defines read operations for the fee item catalog.
type FeeItemReader interface {
	// FindFeeItemByID retrieves a fee item by its unique identifier.
	FindFeeItemByID(ctx context.Context, itemID string) (*domain.FeeItem, error)

	// FindFeeItemByCode retrieves a fee item by its business code.
	FindFeeItemByCode(ctx context.Context, itemCode string) (*domain.FeeItem, error)

	// ListActiveFeeItems retrieves active items ordered by category, sort
	// order, then name, optionally filtered to one category (empty = all).
	ListActiveFeeItems(ctx context.Context, category domain.FeeItemCategory) ([]domain.FeeItem, error)
}

// FeeItemWriter defines write operations for the fee item catalog.
type FeeItemWriter interface {
	// SaveFeeItem persists a new fee item. Returns apperrors.ErrDuplicate if
	// the item code is already taken.
	SaveFeeItem(ctx context.Context, item domain.FeeItem) error

	// UpdateFeeItem updates an existing fee item's editable fields.
	UpdateFeeItem(ctx context.Context, item domain.FeeItem) error
}

// FeeItemRepositoryFacade combines all fee item repository interfaces.
type FeeItemRepositoryFacade interface {
	FeeItemReader
	FeeItemWriter
}
