package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// CreateReceiptRequest defines the payload for issuing a new receipt.
type CreateReceiptRequest struct {
	ItemID string          `json:"itemID" binding:"required"`
	Amount decimal.Decimal `json:"amount" binding:"required"`
	Remark string          `json:"remark" binding:"max=200"`
}

// ReceiptResponse defines the data returned for a receipt.
type ReceiptResponse struct {
	ReceiptID       string          `json:"receiptID"`
	ReceiptNo       string          `json:"receiptNo"`
	ItemID          string          `json:"itemID"`
	ItemName        string          `json:"itemName"`
	Amount          decimal.Decimal `json:"amount"`
	AmountLegalText string          `json:"amountLegalText"`
	Remark          string          `json:"remark,omitempty"`
	OperatorID      string          `json:"operatorID"`
	OperatorName    string          `json:"operatorName"`
	CreatedAt       time.Time       `json:"createdAt"`
	Status          string          `json:"status"`
	IsVerified      bool            `json:"isVerified"`
	VerifiedBy      string          `json:"verifiedBy,omitempty"`
	VerifiedAt      *time.Time      `json:"verifiedAt,omitempty"`
	VoidReason      string          `json:"voidReason,omitempty"`
	VoidedBy        string          `json:"voidedBy,omitempty"`
	VoidedAt        *time.Time      `json:"voidedAt,omitempty"`
}

// ToReceiptResponse converts a domain.Receipt to ReceiptResponse DTO.
func ToReceiptResponse(r *domain.Receipt) ReceiptResponse {
	return ReceiptResponse{
		ReceiptID:       r.ReceiptID,
		ReceiptNo:       r.ReceiptNo,
		ItemID:          r.ItemID,
		ItemName:        r.ItemName,
		Amount:          r.Amount,
		AmountLegalText: r.AmountLegalText,
		Remark:          r.Remark,
		OperatorID:      r.OperatorID,
		OperatorName:    r.OperatorName,
		CreatedAt:       r.CreatedAt,
		Status:          string(r.Status),
		IsVerified:      r.IsVerified,
		VerifiedBy:      r.VerifiedBy,
		VerifiedAt:      r.VerifiedAt,
		VoidReason:      r.VoidReason,
		VoidedBy:        r.VoidedBy,
		VoidedAt:        r.VoidedAt,
	}
}

// ToReceiptResponses converts a slice of domain.Receipt to []ReceiptResponse.
func ToReceiptResponses(receipts []domain.Receipt) []ReceiptResponse {
	responses := make([]ReceiptResponse, len(receipts))
	for i := range receipts {
		responses[i] = ToReceiptResponse(&receipts[i])
	}
	return responses
}
