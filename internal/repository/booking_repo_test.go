package repository

import (
	"context"
	"testing"
	"time"

	"hotelreservation/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingRepository_RoundTrip(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	room := seedRoom(t, s, "101", 2, 150, nil)

	b := seedBooking(t, s, room.ID, mustRange(t, "2024-03-01", "2024-03-04"), domain.BookingPending)

	got, err := s.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, b.ID, got.ID)
	assert.Equal(t, "2024-03-01", got.Stay.CheckIn.Format(domain.DateLayout))
	assert.Equal(t, "2024-03-04", got.Stay.CheckOut.Format(domain.DateLayout))
	assert.Equal(t, 3, got.Stay.Nights())
	assert.Equal(t, domain.BookingPending, got.Status)
	assert.Equal(t, domain.PaymentUnpaid, got.PaymentStatus)
}

func TestBookingRepository_HasConflict(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	room := seedRoom(t, s, "101", 2, 150, nil)
	other := seedRoom(t, s, "102", 2, 150, nil)

	seedBooking(t, s, room.ID, mustRange(t, "2024-01-01", "2024-01-05"), domain.BookingConfirmed)

	cases := []struct {
		name     string
		roomID   int64
		in, out  string
		conflict bool
	}{
		{"identical", room.ID, "2024-01-01", "2024-01-05", true},
		{"inside", room.ID, "2024-01-02", "2024-01-03", true},
		{"overlaps start", room.ID, "2023-12-30", "2024-01-02", true},
		{"overlaps end", room.ID, "2024-01-04", "2024-01-08", true},
		{"covers", room.ID, "2023-12-01", "2024-02-01", true},
		{"back to back after", room.ID, "2024-01-05", "2024-01-08", false},
		{"back to back before", room.ID, "2023-12-28", "2024-01-01", false},
		{"other room", other.ID, "2024-01-01", "2024-01-05", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := s.Bookings.HasConflict(ctx, tc.roomID, mustRange(t, tc.in, tc.out), nil)
			require.NoError(t, err)
			assert.Equal(t, tc.conflict, got)
		})
	}
}

func TestBookingRepository_NonBlockingStatusesIgnored(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	room := seedRoom(t, s, "101", 2, 150, nil)
	stay := mustRange(t, "2024-01-01", "2024-01-05")

	for _, st := range []domain.BookingStatus{domain.BookingCancelled, domain.BookingCheckedOut, domain.BookingNoShow} {
		seedBooking(t, s, room.ID, stay, st)
	}

	conflict, err := s.Bookings.HasConflict(ctx, room.ID, stay, domain.BlockingStatuses)
	require.NoError(t, err)
	assert.False(t, conflict)

	conflict, err = s.Bookings.HasConflict(ctx, room.ID, stay, []domain.BookingStatus{domain.BookingCancelled})
	require.NoError(t, err)
	assert.True(t, conflict)
}

func TestBookingRepository_BlockedRoomIDs(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	hotel := &domain.Hotel{Name: "Seaside"}
	require.NoError(t, s.Hotels.Create(ctx, hotel))

	r1 := seedRoom(t, s, "101", 2, 100, &hotel.ID)
	r2 := seedRoom(t, s, "102", 2, 150, &hotel.ID)
	r3 := seedRoom(t, s, "201", 4, 300, nil)

	seedBooking(t, s, r1.ID, mustRange(t, "2024-01-01", "2024-01-05"), domain.BookingPending)
	seedBooking(t, s, r1.ID, mustRange(t, "2024-01-03", "2024-01-04"), domain.BookingCheckedIn)
	seedBooking(t, s, r2.ID, mustRange(t, "2024-01-01", "2024-01-05"), domain.BookingCancelled)
	seedBooking(t, s, r3.ID, mustRange(t, "2024-01-02", "2024-01-06"), domain.BookingConfirmed)

	query := mustRange(t, "2024-01-03", "2024-01-05")

	blocked, err := s.Bookings.BlockedRoomIDs(ctx, query, nil, nil)
	require.NoError(t, err)
	assert.Len(t, blocked, 2)
	assert.Contains(t, blocked, r1.ID)
	assert.Contains(t, blocked, r3.ID)

	blocked, err = s.Bookings.BlockedRoomIDs(ctx, query, nil, &hotel.ID)
	require.NoError(t, err)
	assert.Len(t, blocked, 1)
	assert.Contains(t, blocked, r1.ID)
}

func TestBookingRepository_CancelKeepsRow(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	room := seedRoom(t, s, "101", 2, 150, nil)
	b := seedBooking(t, s, room.ID, mustRange(t, "2024-01-01", "2024-01-05"), domain.BookingConfirmed)

	at := time.Date(2023, 12, 20, 10, 0, 0, 0, time.UTC)
	require.NoError(t, s.Bookings.UpdateStatus(ctx, b.ID, domain.BookingCancelled, "guest request", at))

	got, err := s.Bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, got.Status)
	assert.Equal(t, "guest request", got.CancellationReason)
	require.NotNil(t, got.CancelledAt)
	assert.True(t, got.CancelledAt.Equal(at))
}

func TestBookingRepository_ListAndBusyRanges(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()
	room := seedRoom(t, s, "101", 2, 150, nil)

	seedBooking(t, s, room.ID, mustRange(t, "2024-01-10", "2024-01-12"), domain.BookingConfirmed)
	seedBooking(t, s, room.ID, mustRange(t, "2024-01-01", "2024-01-03"), domain.BookingPending)
	seedBooking(t, s, room.ID, mustRange(t, "2024-01-05", "2024-01-07"), domain.BookingCancelled)

	confirmed, total, err := s.Bookings.List(ctx, BookingFilters{RoomID: &room.ID, Status: domain.BookingConfirmed})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Len(t, confirmed, 1)

	busy, err := s.Bookings.BusyRanges(ctx, room.ID,
		time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, busy, 2)
	assert.Equal(t, "[2024-01-01, 2024-01-03)", busy[0].String())
	assert.Equal(t, "[2024-01-10, 2024-01-12)", busy[1].String())
}
