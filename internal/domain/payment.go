package domain

import "time"

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusRefunded  PaymentStatus = "REFUNDED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentStatusPending:   {PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled},
	PaymentStatusCompleted: {PaymentStatusRefunded},
}

func (s PaymentStatus) Valid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusRefunded, PaymentStatusCancelled:
		return true
	}
	return false
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	for _, allowed := range paymentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Payment belongs to one booking; a booking may accumulate several payment
// attempts but at most one of them ends up COMPLETED.
type Payment struct {
	ID        int64         `gorm:"primaryKey" json:"id"`
	BookingID string        `gorm:"type:varchar(36);index;not null" json:"booking_id"`
	Amount    float64       `gorm:"type:decimal(10,2);not null" json:"amount"`
	Status    PaymentStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Method    string        `gorm:"type:varchar(20)" json:"method,omitempty"`
	Reference string        `gorm:"type:varchar(100)" json:"reference,omitempty"`
	PaidAt    *time.Time    `json:"paid_at"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

func (Payment) TableName() string { return "payments" }
