package payment

import (
	"context"
	"fmt"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/booking"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
)

// Service records payments against bookings. Payments are one-to-many per
// booking; at most one of them is ever COMPLETED.
type Service struct {
	store    *repository.Store
	bookings BookingLifecycle
	log      logrus.FieldLogger
	now      func() time.Time
}

func NewService(store *repository.Store, bookings BookingLifecycle, log logrus.FieldLogger) *Service {
	return &Service{
		store:    store,
		bookings: bookings,
		log:      log.WithField("component", "payment"),
		now:      time.Now,
	}
}

func (s *Service) authorize(actor domain.Actor, action booking.Action, b *domain.Booking) error {
	if !s.bookings.Policy().CanPerform(actor, action, b) {
		return fmt.Errorf("%w: %s on booking %s", domain.ErrPermission, action, b.ID)
	}
	return nil
}

// Create stores a payment for a booking. The amount must equal the booking
// total. A COMPLETED payment is applied to the booking in the same
// transaction.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreatePaymentRequest) (*domain.Payment, error) {
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}
	status := req.Status
	if status == "" {
		status = domain.PaymentStatusPending
	}
	if status != domain.PaymentStatusPending && status != domain.PaymentStatusCompleted {
		return nil, fmt.Errorf("%w: payments start as PENDING or COMPLETED", domain.ErrInvalidTransition)
	}

	var created *domain.Payment
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		b, err := tx.Bookings.GetForUpdate(ctx, req.BookingID)
		if err != nil {
			return fmt.Errorf("booking %s: %w", req.BookingID, err)
		}
		if err := s.authorize(actor, booking.ActionPay, b); err != nil {
			return err
		}
		if status == domain.PaymentStatusCompleted {
			if err := s.authorize(actor, booking.ActionSettle, b); err != nil {
				return err
			}
		}
		if b.Status.IsTerminal() {
			return fmt.Errorf("%w: booking %s is %s", domain.ErrInvalidTransition, b.ID, b.Status)
		}
		if b.IsPaid() && b.Status != domain.BookingPending {
			return fmt.Errorf("%w: booking %s", domain.ErrAlreadyPaid, b.ID)
		}
		if !domain.AmountsEqual(req.Amount, b.TotalAmount) {
			return fmt.Errorf("%w: got %.2f, booking total is %.2f", domain.ErrAmountMismatch, req.Amount, b.TotalAmount)
		}

		p := &domain.Payment{
			BookingID: b.ID,
			Amount:    b.TotalAmount,
			Status:    domain.PaymentStatusPending,
			Method:    req.Method,
			Reference: req.Reference,
		}
		if err := tx.Payments.Create(ctx, p); err != nil {
			return err
		}
		if status == domain.PaymentStatusCompleted {
			if _, err := booking.ApplyPaymentCompletion(ctx, tx, b, p, s.now().UTC()); err != nil {
				return err
			}
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{
		"payment_id": created.ID,
		"booking_id": created.BookingID,
		"status":     status,
	}).Info("payment recorded")

	return s.store.Payments.GetByID(ctx, created.ID)
}

// Complete marks a pending payment COMPLETED and confirms its booking. Staff
// only. Completing an already completed payment again is a no-op.
func (s *Service) Complete(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error) {
	p, err := s.store.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", id, err)
	}
	if _, err := s.bookings.RecordPaymentCompletion(ctx, actor, p.BookingID, p.ID); err != nil {
		return nil, err
	}
	return s.store.Payments.GetByID(ctx, id)
}

func (s *Service) Fail(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error) {
	return s.transition(ctx, actor, id, domain.PaymentStatusFailed, booking.ActionPay)
}

// Refund reverses a completed payment. Staff only.
func (s *Service) Refund(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error) {
	return s.transition(ctx, actor, id, domain.PaymentStatusRefunded, booking.ActionRefund)
}

func (s *Service) transition(ctx context.Context, actor domain.Actor, id int64, next domain.PaymentStatus, action booking.Action) (*domain.Payment, error) {
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		p, err := tx.Payments.GetForUpdate(ctx, id)
		if err != nil {
			return fmt.Errorf("payment %d: %w", id, err)
		}
		b, err := tx.Bookings.GetForUpdate(ctx, p.BookingID)
		if err != nil {
			return fmt.Errorf("booking %s: %w", p.BookingID, err)
		}
		if err := s.authorize(actor, action, b); err != nil {
			return err
		}
		if !p.Status.CanTransitionTo(next) {
			return fmt.Errorf("%w: payment %s -> %s", domain.ErrInvalidTransition, p.Status, next)
		}
		if err := tx.Payments.UpdateStatus(ctx, p.ID, next, nil); err != nil {
			return err
		}
		if next == domain.PaymentStatusRefunded {
			return tx.Bookings.UpdatePaymentStatus(ctx, b.ID, domain.PaymentRefunded)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"payment_id": id, "status": next}).Info("payment status changed")
	return s.store.Payments.GetByID(ctx, id)
}

func (s *Service) Get(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error) {
	p, err := s.store.Payments.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("payment %d: %w", id, err)
	}
	b, err := s.store.Bookings.GetByID(ctx, p.BookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", p.BookingID, err)
	}
	if err := s.authorize(actor, booking.ActionView, b); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) ListByBooking(ctx context.Context, actor domain.Actor, bookingID string) ([]domain.Payment, error) {
	b, err := s.store.Bookings.GetByID(ctx, bookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", bookingID, err)
	}
	if err := s.authorize(actor, booking.ActionView, b); err != nil {
		return nil, err
	}
	return s.store.Payments.ListByBooking(ctx, bookingID)
}
