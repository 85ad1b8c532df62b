package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentRecord is a periodic settlement comparing the system-computed total
// for one operator against the cash actually handed over. Records are
// immutable once created; corrections are new records.
type PaymentRecord struct {
	RecordID     string          `json:"recordID"` // Primary key (UUID)
	OperatorID   string          `json:"operatorID"`
	PeriodStart  time.Time       `json:"periodStart"` // Calendar-month boundaries
	PeriodEnd    time.Time       `json:"periodEnd"`
	SystemAmount decimal.Decimal `json:"systemAmount"` // Sum of active receipts in the period
	ActualAmount decimal.Decimal `json:"actualAmount"` // Reported by the reconciler; may be zero or negative
	Difference   decimal.Decimal `json:"difference"`   // actual - system
	ReceivedBy   string          `json:"receivedBy"`
	ReceivedAt   time.Time       `json:"receivedAt"`
	Notes        string          `json:"notes,omitempty"`
}
