package booking

import (
	"context"
	"sync"
	"testing"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/pkg/roomlock"
	"hotelreservation/internal/repository"
	"hotelreservation/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	customer      = domain.Actor{UserID: 10, Role: domain.RoleCustomer}
	otherCustomer = domain.Actor{UserID: 11, Role: domain.RoleCustomer}
	staff         = domain.Actor{UserID: 2, Role: domain.RoleStaff}
)

func newTestService(t *testing.T, opts Options) (*Service, *repository.Store) {
	t.Helper()
	store := testutil.NewStore(t)
	opts.Stay = domain.StayPolicy{
		MinimumNights: 1,
		NoPastCheckIn: true,
		Now:           func() time.Time { return time.Date(2023, 12, 1, 9, 0, 0, 0, time.UTC) },
	}
	svc := NewService(store, nil, RolePolicy{}, opts, testutil.Logger())
	svc.now = func() time.Time { return time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC) }
	return svc, store
}

func input(t *testing.T, roomID int64, in, out string, adults, children int) CreateInput {
	return CreateInput{
		RoomID:   roomID,
		Stay:     testutil.Range(t, in, out),
		Adults:   adults,
		Children: children,
		FullName: "Ada Guest",
		Email:    "ada@example.com",
	}
}

func newPayment(t *testing.T, store *repository.Store, b *domain.Booking, status domain.PaymentStatus) *domain.Payment {
	t.Helper()
	p := &domain.Payment{BookingID: b.ID, Amount: b.TotalAmount, Status: status, Method: "card"}
	require.NoError(t, store.Payments.Create(context.Background(), p))
	return p
}

func TestCreate_ConfirmThenDuplicatePayment(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 120)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-03-01", "2024-03-04", 2, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingPending, b.Status)
	assert.Equal(t, 360.0, b.TotalAmount)
	assert.Equal(t, domain.PaymentUnpaid, b.PaymentStatus)
	assert.Equal(t, customer.UserID, b.UserID)

	b, err = svc.Confirm(ctx, staff, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	first := newPayment(t, store, b, domain.PaymentStatusPending)
	b, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, first.ID)
	require.NoError(t, err)
	assert.True(t, b.IsPaid())
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	second := newPayment(t, store, b, domain.PaymentStatusCompleted)
	_, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, second.ID)
	assert.ErrorIs(t, err, domain.ErrAlreadyPaid)
}

func TestRecordPaymentCompletion_ConfirmsPendingAndIsIdempotent(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-10", "2024-01-12", 1, 0))
	require.NoError(t, err)
	p := newPayment(t, store, b, domain.PaymentStatusPending)

	firstAt := time.Date(2023, 12, 1, 10, 0, 0, 0, time.UTC)
	_, err = svc.RecordPaymentCompletion(ctx, customer, b.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrPermission)

	b, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.True(t, b.IsPaid())

	svc.now = func() time.Time { return firstAt.Add(3 * time.Hour) }
	b, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)

	got, err := store.Payments.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentStatusCompleted, got.Status)
	require.NotNil(t, got.PaidAt)
	assert.True(t, got.PaidAt.Equal(firstAt), "paid_at moved to %s", got.PaidAt)
}

func TestRecordPaymentCompletion_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-10", "2024-01-12", 1, 0))
	require.NoError(t, err)
	other, err := svc.Create(ctx, otherCustomer, input(t, room.ID, "2024-02-10", "2024-02-12", 1, 0))
	require.NoError(t, err)

	foreign := newPayment(t, store, other, domain.PaymentStatusPending)
	_, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, foreign.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.RecordPaymentCompletion(ctx, customer, other.ID, foreign.ID)
	assert.ErrorIs(t, err, domain.ErrPermission)

	failed := newPayment(t, store, b, domain.PaymentStatusFailed)
	_, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, failed.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Cancel(ctx, customer, b.ID, "plans changed")
	require.NoError(t, err)
	p := newPayment(t, store, b, domain.PaymentStatusPending)
	_, err = svc.RecordPaymentCompletion(ctx, staff, b.ID, p.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestCancel_TerminalBookingFailsAndStaysQueryable(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-03", 1, 0))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, staff, b.ID)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, staff, b.ID)
	require.NoError(t, err)
	_, err = svc.CheckOut(ctx, staff, b.ID)
	require.NoError(t, err)

	review := &domain.Review{BookingID: b.ID, RoomID: room.ID, UserID: customer.UserID, Rating: 5, Comment: "quiet room"}
	require.NoError(t, store.Reviews.Create(ctx, review))

	_, err = svc.Cancel(ctx, customer, b.ID, "too late")
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	got, err := svc.Get(ctx, customer, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCheckedOut, got.Status)

	rv, err := store.Reviews.GetByBookingID(ctx, b.ID)
	require.NoError(t, err)
	assert.Equal(t, 5, rv.Rating)
}

func TestCancel_KeepsRowAndFreesRoom(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-05", 1, 0))
	require.NoError(t, err)

	cancelled, err := svc.Cancel(ctx, customer, b.ID, "flight cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.BookingCancelled, cancelled.Status)
	assert.Equal(t, "flight cancelled", cancelled.CancellationReason)
	assert.NotNil(t, cancelled.CancelledAt)

	_, err = svc.Create(ctx, otherCustomer, input(t, room.ID, "2024-01-02", "2024-01-04", 1, 0))
	assert.NoError(t, err)
}

func TestCreate_BackToBackStays(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	_, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-05", 1, 0))
	require.NoError(t, err)
	_, err = svc.Create(ctx, otherCustomer, input(t, room.ID, "2024-01-05", "2024-01-08", 1, 0))
	assert.NoError(t, err)
}

func TestCreate_OverlapRejected(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	_, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-05", 1, 0))
	require.NoError(t, err)

	for _, r := range [][2]string{
		{"2024-01-04", "2024-01-06"},
		{"2023-12-30", "2024-01-02"},
		{"2024-01-02", "2024-01-03"},
	} {
		_, err = svc.Create(ctx, otherCustomer, input(t, room.ID, r[0], r[1], 1, 0))
		assert.ErrorIs(t, err, domain.ErrRoomUnavailable, r)
	}
}

func TestCreate_CapacityAndInventoryChecks(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	_, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 2, 1))
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	require.NoError(t, store.Rooms.UpdateStatus(ctx, room.ID, domain.RoomMaintenance))
	_, err = svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	assert.ErrorIs(t, err, domain.ErrRoomUnavailable)

	_, err = svc.Create(ctx, customer, input(t, 9999, "2024-01-01", "2024-01-02", 1, 0))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreate_InputValidation(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	_, err := svc.Create(ctx, customer, input(t, room.ID, "2023-11-01", "2023-11-03", 1, 0))
	assert.ErrorIs(t, err, domain.ErrPastDate)

	_, err = svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 0, 1))
	assert.ErrorIs(t, err, domain.ErrInvalidPartySize)

	_, err = svc.Create(ctx, domain.Actor{}, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	assert.ErrorIs(t, err, domain.ErrPermission)
}

func TestCreate_AutoConfirmPolicy(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{AutoConfirm: true})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	require.NoError(t, err)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
}

func TestTransitions_PermissionsAndTable(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	require.NoError(t, err)

	_, err = svc.Confirm(ctx, customer, b.ID)
	assert.ErrorIs(t, err, domain.ErrPermission)
	_, err = svc.Get(ctx, otherCustomer, b.ID)
	assert.ErrorIs(t, err, domain.ErrPermission)
	_, err = svc.Cancel(ctx, otherCustomer, b.ID, "")
	assert.ErrorIs(t, err, domain.ErrPermission)

	_, err = svc.CheckIn(ctx, staff, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	_, err = svc.MarkNoShow(ctx, staff, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = svc.Confirm(ctx, staff, b.ID)
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, staff, b.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	noShow, err := svc.MarkNoShow(ctx, staff, b.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.BookingNoShow, noShow.Status)

	_, err = svc.Confirm(ctx, staff, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTrackRoomStatus(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{TrackRoomStatus: true})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, staff, b.ID)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, staff, b.ID)
	require.NoError(t, err)
	got, err := store.Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomOccupied, got.Status)

	_, err = svc.CheckOut(ctx, staff, b.ID)
	require.NoError(t, err)
	got, err = store.Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomCleaning, got.Status)
}

func TestRoomStatusUntouchedByDefault(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	b, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	require.NoError(t, err)
	_, err = svc.Confirm(ctx, staff, b.ID)
	require.NoError(t, err)
	_, err = svc.CheckIn(ctx, staff, b.ID)
	require.NoError(t, err)

	got, err := store.Rooms.GetByID(ctx, room.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.RoomAvailable, got.Status)
}

func TestList_CustomersSeeOwnBookings(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	_, err := svc.Create(ctx, customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	require.NoError(t, err)
	_, err = svc.Create(ctx, otherCustomer, input(t, room.ID, "2024-01-03", "2024-01-04", 1, 0))
	require.NoError(t, err)

	mine, total, err := svc.List(ctx, customer, repository.BookingFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	assert.Equal(t, customer.UserID, mine[0].UserID)

	_, total, err = svc.List(ctx, staff, repository.BookingFilters{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)

	window := testutil.Range(t, "2024-01-01", "2024-02-01")
	busy, err := svc.BusyRanges(ctx, staff, room.ID, window)
	require.NoError(t, err)
	assert.Len(t, busy, 2)
	_, err = svc.BusyRanges(ctx, customer, room.ID, window)
	assert.ErrorIs(t, err, domain.ErrPermission)
}

type busyLocker struct{}

func (busyLocker) Acquire(context.Context, int64) (func(), error) { return nil, roomlock.ErrLocked }

func TestCreate_RoomLockContended(t *testing.T) {
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)
	svc.locker = busyLocker{}

	_, err := svc.Create(context.Background(), customer, input(t, room.ID, "2024-01-01", "2024-01-02", 1, 0))
	assert.ErrorIs(t, err, ErrRoomBusy)
}

func TestCreate_ConcurrentOverlapAdmitsOne(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 100)

	const workers = 8
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			actor := domain.Actor{UserID: int64(100 + i), Role: domain.RoleCustomer}
			_, err := svc.Create(ctx, actor, input(t, room.ID, "2024-01-01", "2024-01-05", 1, 0))
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)

	var ok, unavailable int
	for err := range errs {
		switch {
		case err == nil:
			ok++
		case assert.ErrorIs(t, err, domain.ErrRoomUnavailable):
			unavailable++
		}
	}
	assert.Equal(t, 1, ok)
	assert.Equal(t, workers-1, unavailable)
}
