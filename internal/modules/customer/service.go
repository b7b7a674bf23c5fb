package customer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrDuplicateContact = errors.New("phone number or email already registered")
	ErrInvalidDate      = errors.New("invalid date")
)

type Service struct {
	store    *repository.Store
	bookings BookingLister
	log      logrus.FieldLogger
}

func NewService(store *repository.Store, bookings BookingLister, log logrus.FieldLogger) *Service {
	return &Service{store: store, bookings: bookings, log: log}
}

func (s *Service) Create(ctx context.Context, req CustomerRequest) (*domain.Customer, error) {
	c := &domain.Customer{IsActive: true}
	if err := apply(c, req); err != nil {
		return nil, err
	}
	if err := s.store.Customers.Create(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateContact
		}
		return nil, err
	}
	s.log.WithField("customer_id", c.ID).Info("customer created")
	return c, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Customer, error) {
	c, err := s.store.Customers.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("customer %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) Search(ctx context.Context, q SearchQuery) ([]domain.Customer, int64, error) {
	return s.store.Customers.Search(ctx, q.Q, !q.IncludeInactive, q.Limit, q.Offset)
}

func (s *Service) Update(ctx context.Context, id int64, req CustomerRequest) (*domain.Customer, error) {
	c, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := apply(c, req); err != nil {
		return nil, err
	}
	if err := s.store.Customers.Update(ctx, c); err != nil {
		if repository.IsUniqueViolation(err) {
			return nil, ErrDuplicateContact
		}
		return nil, err
	}
	return s.Get(ctx, id)
}

func (s *Service) Deactivate(ctx context.Context, id int64) error {
	if err := s.store.Customers.SetActive(ctx, id, false); err != nil {
		return fmt.Errorf("customer %d: %w", id, err)
	}
	return nil
}

// Bookings returns the customer's booking history, newest first.
func (s *Service) Bookings(ctx context.Context, actor domain.Actor, id int64, limit, offset int) ([]domain.Booking, int64, error) {
	if _, err := s.Get(ctx, id); err != nil {
		return nil, 0, err
	}
	return s.bookings.List(ctx, actor, repository.BookingFilters{CustomerID: &id, Limit: limit, Offset: offset})
}

func apply(c *domain.Customer, req CustomerRequest) error {
	var dob *time.Time
	if req.DateOfBirth != "" {
		t, err := time.Parse("2006-01-02", req.DateOfBirth)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidDate, req.DateOfBirth)
		}
		dob = &t
	}
	c.FullName = strings.TrimSpace(req.FullName)
	c.Gender = req.Gender
	c.DateOfBirth = dob
	c.Nationality = req.Nationality
	c.PhoneNumber = strings.TrimSpace(req.PhoneNumber)
	c.Email = req.Email
	c.HomeAddress = req.HomeAddress
	return nil
}
