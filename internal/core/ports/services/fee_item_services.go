package services

import (
	"context"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
	"github.com/swimhall/receipt_management_app/internal/dto"
)

// FeeItemSvcFacade defines catalog management operations.
type FeeItemSvcFacade interface {
	// CreateFeeItem adds a new catalog entry.
	CreateFeeItem(ctx context.Context, req dto.CreateFeeItemRequest, actor domain.Actor) (*domain.FeeItem, error)

	// UpdateFeeItem edits an existing catalog entry. Receipts keep the item
	// name they captured at creation.
	UpdateFeeItem(ctx context.Context, itemID string, req dto.UpdateFeeItemRequest, actor domain.Actor) (*domain.FeeItem, error)

	// GetFeeItemByID retrieves one catalog entry.
	GetFeeItemByID(ctx context.Context, itemID string) (*domain.FeeItem, error)

	// ListActiveFeeItems lists active entries ordered for display, optionally
	// filtered to one category.
	ListActiveFeeItems(ctx context.Context, category domain.FeeItemCategory) ([]domain.FeeItem, error)
}
