package dto

import (
	"time"

	"github.com/swimhall/receipt_management_app/internal/core/domain"
)

// CreateVoidRequestRequest defines the payload for opening a void request.
type CreateVoidRequestRequest struct {
	Reason string `json:"reason" binding:"required,max=500"`
}

// ReviewVoidRequestRequest defines the payload for approving or rejecting.
type ReviewVoidRequestRequest struct {
	Note string `json:"note" binding:"max=200"`
}

// VoidRequestResponse defines the data returned for a void request.
type VoidRequestResponse struct {
	RequestID   string     `json:"requestID"`
	ReceiptID   string     `json:"receiptID"`
	Reason      string     `json:"reason"`
	RequestedBy string     `json:"requestedBy"`
	RequestedAt time.Time  `json:"requestedAt"`
	Status      string     `json:"status"`
	ReviewedBy  string     `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time `json:"reviewedAt,omitempty"`
	ReviewNote  string     `json:"reviewNote,omitempty"`
}

// ToVoidRequestResponse converts a domain.VoidRequest to VoidRequestResponse DTO.
func ToVoidRequestResponse(v *domain.VoidRequest) VoidRequestResponse {
	return VoidRequestResponse{
		RequestID:   v.RequestID,
		ReceiptID:   v.ReceiptID,
		Reason:      v.Reason,
		RequestedBy: v.RequestedBy,
		RequestedAt: v.RequestedAt,
		Status:      string(v.Status),
		ReviewedBy:  v.ReviewedBy,
		ReviewedAt:  v.ReviewedAt,
		ReviewNote:  v.ReviewNote,
	}
}

// ToVoidRequestResponses converts a slice of domain.VoidRequest to []VoidRequestResponse.
func ToVoidRequestResponses(requests []domain.VoidRequest) []VoidRequestResponse {
	responses := make([]VoidRequestResponse, len(requests))
	for i := range requests {
		responses[i] = ToVoidRequestResponse(&requests[i])
	}
	return responses
}
