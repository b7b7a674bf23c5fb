package payment

import (
	"context"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/booking"
)

// BookingLifecycle is the part of the booking service payments drive.
type BookingLifecycle interface {
	RecordPaymentCompletion(ctx context.Context, actor domain.Actor, bookingID string, paymentID int64) (*domain.Booking, error)
	Policy() booking.Policy
}
