package dto

import (
	"github.com/shopspring/decimal"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// CreateFeeItemRequest defines the payload for adding a catalog entry.
type CreateFeeItemRequest struct {
	ItemCode     string          `json:"itemCode" binding:"required,max=20"`
	ItemName     string          `json:"itemName" binding:"required,max=100"`
	Category     string          `json:"category" binding:"required,feecategory"`
	IdentityTier string          `json:"identityTier"`
	DefaultPrice decimal.Decimal `json:"defaultPrice" binding:"required"`
	Description  string          `json:"description" binding:"max=200"`
	SortOrder    int             `json:"sortOrder"`
}

// UpdateFeeItemRequest defines the payload for editing a catalog entry.
// Nil pointers leave the corresponding field unchanged.
type UpdateFeeItemRequest struct {
	ItemName     *string          `json:"itemName,omitempty" binding:"omitempty,max=100"`
	Category     *string          `json:"category,omitempty" binding:"omitempty,feecategory"`
	IdentityTier *string          `json:"identityTier,omitempty"`
	DefaultPrice *decimal.Decimal `json:"defaultPrice,omitempty"`
	Description  *string          `json:"description,omitempty" binding:"omitempty,max=200"`
	IsActive     *bool            `json:"isActive,omitempty"`
	SortOrder    *int             `json:"sortOrder,omitempty"`
}

// FeeItemResponse is the fee-item lookup contract consumed by the
// presentation layer.
type FeeItemResponse struct {
	ItemID       string          `json:"id"`
	ItemCode     string          `json:"item_code"`
	ItemName     string          `json:"item_name"`
	Category     string          `json:"category"`
	IdentityTier string          `json:"identity_tier,omitempty"`
	DefaultPrice decimal.Decimal `json:"default_price"`
	Description  string          `json:"description,omitempty"`
	IsActive     bool            `json:"is_active"`
	SortOrder    int             `json:"sort_order"`
}

// ToFeeItemResponse converts a domain.FeeItem to FeeItemResponse DTO.
func ToFeeItemResponse(item *domain.FeeItem) FeeItemResponse {
	return FeeItemResponse{
		ItemID:       item.ItemID,
		ItemCode:     item.ItemCode,
		ItemName:     item.ItemName,
		Category:     string(item.Category),
		IdentityTier: string(item.IdentityTier),
		DefaultPrice: item.DefaultPrice,
		Description:  item.Description,
		IsActive:     item.IsActive,
		SortOrder:    item.SortOrder,
	}
}

// ToFeeItemResponses converts a slice of domain.FeeItem to []FeeItemResponse.
func ToFeeItemResponses(items []domain.FeeItem) []FeeItemResponse {
	responses := make([]FeeItemResponse, len(items))
	for i := range items {
		responses[i] = ToFeeItemResponse(&items[i])
	}
	return responses
}
