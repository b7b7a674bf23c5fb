package customer

import (
	"context"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/repository"
)

// BookingLister exposes booking history without pulling in the booking
// module's write path.
type BookingLister interface {
	List(ctx context.Context, actor domain.Actor, f repository.BookingFilters) ([]domain.Booking, int64, error)
}
