package availability

import (
	"context"

	"hotelreservation/internal/domain"
)

// RoomFinder supplies bookable inventory.
type RoomFinder interface {
	FindCandidates(ctx context.Context, minCapacity int, hotelID *int64) ([]domain.Room, error)
}

// ConflictIndex reports rooms blocked by existing bookings.
type ConflictIndex interface {
	BlockedRoomIDs(ctx context.Context, stay domain.DateRange, statuses []domain.BookingStatus, hotelID *int64) (map[int64]struct{}, error)
}
