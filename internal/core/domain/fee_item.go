package domain

import "github.com/shopspring/decimal"

// FeeItemCategory groups catalog entries for display.
type FeeItemCategory string

const (
	CategoryAdmission FeeItemCategory = "ADMISSION"
	CategoryPass      FeeItemCategory = "PASS"
	CategoryCourse    FeeItemCategory = "COURSE"
	CategoryRental    FeeItemCategory = "RENTAL"
	CategoryOther     FeeItemCategory = "OTHER"
)

// IdentityTier distinguishes pricing tiers by who is being charged.
type IdentityTier string

const (
	TierStudent  IdentityTier = "STUDENT"
	TierStaff    IdentityTier = "STAFF"
	TierExternal IdentityTier = "EXTERNAL"
	TierDiscount IdentityTier = "DISCOUNT"
)

// FeeItem is a priced catalog entry a receipt charges against. Receipts
// denormalize the item name at creation, so edits here never rewrite history.
type FeeItem struct {
	ItemID       string          `json:"itemID"`   // Primary key (UUID)
	ItemCode     string          `json:"itemCode"` // Unique business code
	ItemName     string          `json:"itemName"`
	Category     FeeItemCategory `json:"category"`
	IdentityTier IdentityTier    `json:"identityTier"`
	DefaultPrice decimal.Decimal `json:"defaultPrice"`
	Description  string          `json:"description"`
	IsActive     bool            `json:"isActive"`
	SortOrder    int             `json:"sortOrder"`
	AuditFields
}
