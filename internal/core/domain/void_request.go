package domain

import "time"

// VoidRequestStatus indicates the review state of a void request.
type VoidRequestStatus string

const (
	VoidPending  VoidRequestStatus = "PENDING"
	VoidApproved VoidRequestStatus = "APPROVED"
	VoidRejected VoidRequestStatus = "REJECTED"
)

// VoidRequest is a pending cancellation of one receipt, requiring independent
// approval. At most one PENDING request may exist per receipt. Once resolved
// the request is immutable.
type VoidRequest struct {
	RequestID   string            `json:"requestID"` // Primary key (UUID)
	ReceiptID   string            `json:"receiptID"` // FK -> Receipt.ReceiptID
	Reason      string            `json:"reason"`    // Required, non-empty
	RequestedBy string            `json:"requestedBy"`
	RequestedAt time.Time         `json:"requestedAt"`
	Status      VoidRequestStatus `json:"status"`
	ReviewedBy  string            `json:"reviewedBy,omitempty"`
	ReviewedAt  *time.Time        `json:"reviewedAt,omitempty"`
	ReviewNote  string            `json:"reviewNote,omitempty"`
}
