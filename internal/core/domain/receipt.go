package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus indicates the lifecycle state of a receipt.
type ReceiptStatus string

const (
	ReceiptActive      ReceiptStatus = "ACTIVE"
	ReceiptVoidPending ReceiptStatus = "VOID_PENDING"
	ReceiptVoided      ReceiptStatus = "VOIDED"
)

// Receipt represents a single fee charge. Receipts are never deleted; the
// status field carries the full lifecycle so the table stays an audit log.
// ItemName and OperatorName are denormalized at creation time so later
// catalog or account edits do not rewrite history.
type Receipt struct {
	ReceiptID       string          `json:"receiptID"` // Primary key (UUID)
	ReceiptNo       string          `json:"receiptNo"` // Unique, PREFIX-YYYYMMDD-NNNN
	ItemID          string          `json:"itemID"`    // FK -> FeeItem.ItemID
	ItemName        string          `json:"itemName"`
	Amount          decimal.Decimal `json:"amount"`          // Non-negative, immutable once set
	AmountLegalText string          `json:"amountLegalText"` // Rendered capital-numeral text
	Remark          string          `json:"remark"`          // Nullable
	OperatorID      string          `json:"operatorID"`
	OperatorName    string          `json:"operatorName"`
	CreatedAt       time.Time       `json:"createdAt"` // UTC instant
	Status          ReceiptStatus   `json:"status"`

	IsVerified bool       `json:"isVerified"`
	VerifiedBy string     `json:"verifiedBy,omitempty"`
	VerifiedAt *time.Time `json:"verifiedAt,omitempty"`

	VoidReason string     `json:"voidReason,omitempty"`
	VoidedBy   string     `json:"voidedBy,omitempty"`
	VoidedAt   *time.Time `json:"voidedAt,omitempty"`
}

// CanVoid reports whether a void request may be opened against the receipt.
// Verified receipts can never enter the void workflow.
func (r Receipt) CanVoid() bool {
	return r.Status == ReceiptActive && !r.IsVerified
}
