package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/pkg/roomlock"
	"hotelreservation/internal/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

type Options struct {
	Stay         domain.StayPolicy
	MaxPartySize int
	// AutoConfirm creates bookings as CONFIRMED instead of PENDING.
	AutoConfirm bool
	// TrackRoomStatus mirrors check-in/check-out onto the room's
	// inventory status. Availability never reads that flag.
	TrackRoomStatus bool
}

type Service struct {
	store  *repository.Store
	locker roomlock.Locker
	policy Policy
	opts   Options
	log    logrus.FieldLogger
	now    func() time.Time
}

func NewService(store *repository.Store, locker roomlock.Locker, policy Policy, opts Options, log logrus.FieldLogger) *Service {
	if locker == nil {
		locker = roomlock.NopLocker{}
	}
	if policy == nil {
		policy = RolePolicy{}
	}
	if opts.MaxPartySize <= 0 {
		opts.MaxPartySize = domain.DefaultMaxPartySize
	}
	return &Service{
		store:  store,
		locker: locker,
		policy: policy,
		opts:   opts,
		log:    log.WithField("component", "booking"),
		now:    time.Now,
	}
}

func (s *Service) Policy() Policy { return s.policy }

// Create reserves a room for a stay. The conflict re-check and the insert
// share one transaction that holds the room row lock, so two overlapping
// requests for the same room can never both succeed.
func (s *Service) Create(ctx context.Context, actor domain.Actor, in CreateInput) (*domain.Booking, error) {
	if !s.policy.CanPerform(actor, ActionCreate, nil) {
		return nil, fmt.Errorf("%w: cannot create bookings", domain.ErrPermission)
	}
	if err := s.opts.Stay.Validate(in.Stay); err != nil {
		return nil, err
	}
	guests, err := domain.ValidateParty(in.Adults, in.Children, s.opts.MaxPartySize)
	if err != nil {
		return nil, err
	}
	if !actor.Role.IsElevated() {
		in.CustomerID = nil
	}

	release, err := s.locker.Acquire(ctx, in.RoomID)
	switch {
	case errors.Is(err, roomlock.ErrLocked):
		return nil, ErrRoomBusy
	case err != nil:
		// The transaction below is still authoritative; the lock only reduces contention.
		s.log.WithError(err).WithField("room_id", in.RoomID).Warn("room lock unavailable, continuing without it")
	default:
		defer release()
	}

	var created *domain.Booking
	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		room, err := tx.Rooms.GetForUpdate(ctx, in.RoomID)
		if err != nil {
			return fmt.Errorf("room %d: %w", in.RoomID, err)
		}
		if !room.IsBookable() {
			return fmt.Errorf("%w: room %s is not accepting bookings", domain.ErrRoomUnavailable, room.RoomNumber)
		}
		if room.Capacity < guests {
			return fmt.Errorf("%w: room %s holds %d guests, %d requested",
				domain.ErrRoomUnavailable, room.RoomNumber, room.Capacity, guests)
		}

		conflict, err := tx.Bookings.HasConflict(ctx, room.ID, in.Stay, domain.BlockingStatuses)
		if err != nil {
			return err
		}
		if conflict {
			return fmt.Errorf("%w: room %s is booked during %s", domain.ErrRoomUnavailable, room.RoomNumber, in.Stay)
		}

		b := &domain.Booking{
			ID:            uuid.NewString(),
			RoomID:        room.ID,
			UserID:        actor.UserID,
			CustomerID:    in.CustomerID,
			FullName:      in.FullName,
			Email:         in.Email,
			Phone:         in.Phone,
			Stay:          in.Stay,
			Adults:        in.Adults,
			Children:      in.Children,
			Status:        domain.BookingPending,
			PaymentStatus: domain.PaymentUnpaid,
			TotalAmount:   domain.StayPrice(in.Stay.Nights(), room.PricePerNight),
		}
		if s.opts.AutoConfirm {
			b.Status = domain.BookingConfirmed
		}
		if in.CustomerID != nil {
			if _, err := tx.Customers.GetByID(ctx, *in.CustomerID); err != nil {
				return fmt.Errorf("customer %d: %w", *in.CustomerID, err)
			}
		}
		if actor.Role.IsElevated() {
			if staff, err := tx.Staff.GetByUserID(ctx, actor.UserID); err == nil {
				b.CreatedByStaffID = &staff.ID
			} else if !errors.Is(err, domain.ErrNotFound) {
				return err
			}
		}

		if err := tx.Bookings.Create(ctx, b); err != nil {
			if repository.IsOverlapViolation(err) {
				return fmt.Errorf("%w: room %s is booked during %s", domain.ErrRoomUnavailable, room.RoomNumber, in.Stay)
			}
			return err
		}
		created = b
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": created.ID,
		"room_id":    created.RoomID,
		"user_id":    actor.UserID,
		"stay":       created.Stay.String(),
		"status":     created.Status,
	}).Info("booking created")

	return s.store.Bookings.GetByID(ctx, created.ID)
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	b, err := s.store.Bookings.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", id, err)
	}
	if !s.policy.CanPerform(actor, ActionView, b) {
		return nil, fmt.Errorf("%w: booking %s", domain.ErrPermission, id)
	}
	return b, nil
}

// List returns every booking for staff; customers only see their own.
func (s *Service) List(ctx context.Context, actor domain.Actor, f repository.BookingFilters) ([]domain.Booking, int64, error) {
	if !s.policy.CanPerform(actor, ActionListAll, nil) {
		uid := actor.UserID
		f.UserID = &uid
		f.CustomerID = nil
	}
	return s.store.Bookings.List(ctx, f)
}

// BusyRanges lists the blocking stays of a room within [from, to).
func (s *Service) BusyRanges(ctx context.Context, actor domain.Actor, roomID int64, window domain.DateRange) ([]domain.DateRange, error) {
	if !s.policy.CanPerform(actor, ActionListAll, nil) {
		return nil, fmt.Errorf("%w: room schedule is staff only", domain.ErrPermission)
	}
	if _, err := s.store.Rooms.GetByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("room %d: %w", roomID, err)
	}
	return s.store.Bookings.BusyRanges(ctx, roomID, window.CheckIn, window.CheckOut)
}

func (s *Service) Confirm(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, ActionConfirm, domain.BookingConfirmed, "")
}

// Cancel moves the booking to CANCELLED. Bookings are never deleted so
// payments and reviews keep a valid reference.
func (s *Service) Cancel(ctx context.Context, actor domain.Actor, id, reason string) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, ActionCancel, domain.BookingCancelled, reason)
}

func (s *Service) CheckIn(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, ActionCheckIn, domain.BookingCheckedIn, "")
}

func (s *Service) CheckOut(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, ActionCheckOut, domain.BookingCheckedOut, "")
}

func (s *Service) MarkNoShow(ctx context.Context, actor domain.Actor, id string) (*domain.Booking, error) {
	return s.transition(ctx, actor, id, ActionNoShow, domain.BookingNoShow, "")
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id string, action Action, next domain.BookingStatus, reason string) (*domain.Booking, error) {
	var from domain.BookingStatus
	var roomID int64
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("booking %s: %w", id, err)
		}
		if !s.policy.CanPerform(actor, action, b) {
			return fmt.Errorf("%w: %s on booking %s", domain.ErrPermission, action, id)
		}
		if !b.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, b.Status, next)
		}
		from, roomID = b.Status, b.RoomID

		if err := tx.Bookings.UpdateStatus(ctx, id, next, reason, s.now().UTC()); err != nil {
			return err
		}
		return s.applyRoomSideEffects(ctx, tx, b.RoomID, next)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"booking_id": id,
		"room_id":    roomID,
		"from":       from,
		"to":         next,
		"user_id":    actor.UserID,
		"role":       actor.Role,
	}).Info("booking status changed")

	return s.store.Bookings.GetByID(ctx, id)
}

func (s *Service) applyRoomSideEffects(ctx context.Context, tx *repository.Store, roomID int64, next domain.BookingStatus) error {
	if !s.opts.TrackRoomStatus {
		return nil
	}
	switch next {
	case domain.BookingCheckedIn:
		return tx.Rooms.UpdateStatus(ctx, roomID, domain.RoomOccupied)
	case domain.BookingCheckedOut:
		return tx.Rooms.UpdateStatus(ctx, roomID, domain.RoomCleaning)
	}
	return nil
}

// RecordPaymentCompletion applies a completed payment to its booking.
func (s *Service) RecordPaymentCompletion(ctx context.Context, actor domain.Actor, bookingID string, paymentID int64) (*domain.Booking, error) {
	var changed bool
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetForUpdate(ctx, bookingID)
		if err != nil {
			return fmt.Errorf("booking %s: %w", bookingID, err)
		}
		if !s.policy.CanPerform(actor, ActionSettle, b) {
			return fmt.Errorf("%w: settle booking %s", domain.ErrPermission, bookingID)
		}
		p, err := tx.Payments.GetForUpdate(ctx, paymentID)
		if err != nil {
			return fmt.Errorf("payment %d: %w", paymentID, err)
		}
		if p.BookingID != b.ID {
			return fmt.Errorf("payment %d for booking %s: %w", paymentID, bookingID, domain.ErrNotFound)
		}
		changed, err = ApplyPaymentCompletion(ctx, tx, b, p, s.now().UTC())
		return err
	})
	if err != nil {
		return nil, err
	}
	if changed {
		s.log.WithFields(logrus.Fields{
			"booking_id": bookingID,
			"payment_id": paymentID,
		}).Info("payment applied to booking")
	}
	return s.store.Bookings.GetByID(ctx, bookingID)
}

// ApplyPaymentCompletion marks p COMPLETED and b paid, confirming b when it
// is still PENDING. It must run inside tx with both rows locked. Repeating it
// for a payment that already completed b is a no-op and reports false.
func ApplyPaymentCompletion(ctx context.Context, tx *repository.Store, b *domain.Booking, p *domain.Payment, now time.Time) (bool, error) {
	if p.Status == domain.PaymentStatusCompleted && p.PaidAt != nil && b.IsPaid() {
		return false, nil
	}
	if b.Status.IsTerminal() {
		return false, fmt.Errorf("%w: booking %s is %s", domain.ErrInvalidTransition, b.ID, b.Status)
	}
	if b.IsPaid() && b.Status != domain.BookingPending {
		return false, fmt.Errorf("%w: booking %s", domain.ErrAlreadyPaid, b.ID)
	}
	if p.Status != domain.PaymentStatusCompleted && !p.Status.CanTransitionTo(domain.PaymentStatusCompleted) {
		return false, fmt.Errorf("%w: payment %s -> %s", domain.ErrInvalidTransition, p.Status, domain.PaymentStatusCompleted)
	}

	if err := tx.Payments.UpdateStatus(ctx, p.ID, domain.PaymentStatusCompleted, &now); err != nil {
		return false, err
	}
	if err := tx.Bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentPaid); err != nil {
		return false, err
	}
	if b.Status == domain.BookingPending {
		if err := tx.Bookings.UpdateStatus(ctx, b.ID, domain.BookingConfirmed, "", now); err != nil {
			return false, err
		}
	}
	return true, nil
}
