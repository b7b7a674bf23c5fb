package review

import (
	"context"
	"errors"
	"fmt"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/booking"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
)

type BookingGate interface {
	GetByID(ctx context.Context, id string) (*domain.Booking, error)
}

type RoomGate interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

type Service struct {
	reviews  *repository.ReviewRepository
	bookings BookingGate
	rooms    RoomGate
	policy   booking.Policy
	log      logrus.FieldLogger
}

func NewService(reviews *repository.ReviewRepository, bookings BookingGate, rooms RoomGate, policy booking.Policy, log logrus.FieldLogger) *Service {
	return &Service{reviews: reviews, bookings: bookings, rooms: rooms, policy: policy, log: log}
}

// Create records the guest's review of a finished stay. A booking gets at
// most one review.
func (s *Service) Create(ctx context.Context, actor domain.Actor, req CreateReviewRequest) (*domain.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, ErrInvalidRequest
	}

	b, err := s.bookings.GetByID(ctx, req.BookingID)
	if err != nil {
		return nil, fmt.Errorf("booking %s: %w", req.BookingID, err)
	}
	if !s.policy.CanPerform(actor, booking.ActionReview, b) {
		return nil, fmt.Errorf("%w: not your booking", domain.ErrPermission)
	}
	if b.Status != domain.BookingCheckedOut {
		return nil, ErrReviewNotAllowed
	}
	// The unique index on booking_id still settles concurrent submissions.
	if _, err := s.reviews.GetByBookingID(ctx, b.ID); err == nil {
		return nil, ErrConflict
	} else if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	rv := &domain.Review{
		BookingID: b.ID,
		RoomID:    b.RoomID,
		UserID:    b.UserID,
		Rating:    req.Rating,
		Comment:   req.Comment,
	}
	if err := s.reviews.Create(ctx, rv); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrConflict
		}
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"booking_id": b.ID, "room_id": b.RoomID, "rating": rv.Rating}).Info("review created")
	return rv, nil
}

func (s *Service) GetByRoom(ctx context.Context, roomID int64, limit, offset int) (*RoomReviews, error) {
	if roomID <= 0 {
		return nil, ErrInvalidRequest
	}
	if _, err := s.rooms.GetByID(ctx, roomID); err != nil {
		return nil, fmt.Errorf("room %d: %w", roomID, err)
	}

	items, err := s.reviews.ListByRoom(ctx, roomID, limit, offset)
	if err != nil {
		return nil, err
	}
	avg, count, err := s.reviews.AverageRating(ctx, roomID)
	if err != nil {
		return nil, err
	}
	return &RoomReviews{RoomID: roomID, AverageRating: avg, Count: count, Reviews: items}, nil
}
