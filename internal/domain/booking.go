package domain

import "time"

type BookingStatus string

const (
	BookingPending    BookingStatus = "PENDING"
	BookingConfirmed  BookingStatus = "CONFIRMED"
	BookingCheckedIn  BookingStatus = "CHECKED_IN"
	BookingCheckedOut BookingStatus = "CHECKED_OUT"
	BookingCancelled  BookingStatus = "CANCELLED"
	BookingNoShow     BookingStatus = "NO_SHOW"
)

var bookingTransitions = map[BookingStatus][]BookingStatus{
	BookingPending:   {BookingConfirmed, BookingCancelled},
	BookingConfirmed: {BookingCheckedIn, BookingCancelled, BookingNoShow},
	BookingCheckedIn: {BookingCheckedOut},
}

// BlockingStatuses reserve a room against overlapping stays.
var BlockingStatuses = []BookingStatus{BookingPending, BookingConfirmed, BookingCheckedIn}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled, BookingNoShow:
		return true
	}
	return false
}

func (s BookingStatus) IsBlocking() bool {
	for _, b := range BlockingStatuses {
		if s == b {
			return true
		}
	}
	return false
}

func (s BookingStatus) IsTerminal() bool {
	return s.Valid() && len(bookingTransitions[s]) == 0
}

func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	for _, allowed := range bookingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type PaymentState string

const (
	PaymentUnpaid   PaymentState = "unpaid"
	PaymentPaid     PaymentState = "paid"
	PaymentRefunded PaymentState = "refunded"
)

type Booking struct {
	ID                 string        `json:"id"`
	RoomID             int64         `json:"room_id"`
	UserID             int64         `json:"user_id"`
	CustomerID         *int64        `json:"customer_id,omitempty"`
	CreatedByStaffID   *int64        `json:"created_by_staff_id,omitempty"`
	FullName           string        `json:"full_name"`
	Email              string        `json:"email"`
	Phone              string        `json:"phone,omitempty"`
	Stay               DateRange     `json:"stay"`
	Adults             int           `json:"adults"`
	Children           int           `json:"children"`
	Status             BookingStatus `json:"status"`
	PaymentStatus      PaymentState  `json:"payment_status"`
	TotalAmount        float64       `json:"total_amount"`
	CancellationReason string        `json:"cancellation_reason,omitempty"`
	CancelledAt        *time.Time    `json:"cancelled_at,omitempty"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}

func (b *Booking) Guests() int { return b.Adults + b.Children }

func (b *Booking) IsPaid() bool { return b.PaymentStatus == PaymentPaid }
