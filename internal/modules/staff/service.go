package staff

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/auth"
	"hotelreservation/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmailTaken  = errors.New("email already registered")
	ErrInvalidDate = errors.New("invalid date")
)

type Service struct {
	store *repository.Store
	log   logrus.FieldLogger
}

func NewService(store *repository.Store, log logrus.FieldLogger) *Service {
	return &Service{store: store, log: log}
}

// Create provisions a login with role staff and its employee profile in one
// transaction.
func (s *Service) Create(ctx context.Context, req CreateStaffRequest) (*domain.Staff, error) {
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	employed, err := parseDate(req.DateOfEmployment)
	if err != nil {
		return nil, err
	}
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	profile := &domain.Staff{
		FullName:         strings.TrimSpace(req.FullName),
		Gender:           req.Gender,
		DateOfBirth:      dob,
		ContactDetails:   req.ContactDetails,
		Address:          req.Address,
		EmergencyContact: req.EmergencyContact,
		Role:             domain.StaffRole(req.Role),
		DateOfEmployment: employed,
		EmploymentStatus: domain.EmploymentActive,
		IsActive:         true,
	}

	err = s.store.WithTx(ctx, func(tx *repository.Store) error {
		user := &domain.User{
			Email:        req.Email,
			PasswordHash: hash,
			Role:         domain.RoleStaff,
			Name:         profile.FullName,
		}
		if err := tx.Users.Create(ctx, user); err != nil {
			if repository.IsUniqueViolation(err) {
				return ErrEmailTaken
			}
			return err
		}
		profile.UserID = user.ID
		return tx.Staff.Create(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	s.log.WithFields(logrus.Fields{"staff_id": profile.ID, "role": profile.Role}).Info("staff member created")
	return profile, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*domain.Staff, error) {
	st, err := s.store.Staff.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("staff %d: %w", id, err)
	}
	return st, nil
}

func (s *Service) List(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	return s.store.Staff.List(ctx, activeOnly)
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateStaffRequest) (*domain.Staff, error) {
	st, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	dob, err := parseDate(req.DateOfBirth)
	if err != nil {
		return nil, err
	}
	employed, err := parseDate(req.DateOfEmployment)
	if err != nil {
		return nil, err
	}

	st.FullName = strings.TrimSpace(req.FullName)
	st.Gender = req.Gender
	st.DateOfBirth = dob
	st.ContactDetails = req.ContactDetails
	st.Address = req.Address
	st.EmergencyContact = req.EmergencyContact
	st.Role = domain.StaffRole(req.Role)
	st.DateOfEmployment = employed
	st.EmploymentStatus = domain.EmploymentStatus(req.EmploymentStatus)

	if err := s.store.Staff.Update(ctx, st); err != nil {
		return nil, err
	}
	return s.Get(ctx, id)
}

// Deactivate keeps the record because bookings point at it through
// created_by_staff_id. The linked login is disabled in the same transaction.
func (s *Service) Deactivate(ctx context.Context, id int64) error {
	err := s.store.WithTx(ctx, func(tx *repository.Store) error {
		st, err := tx.Staff.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("staff %d: %w", id, err)
		}
		if err := tx.Staff.SetActive(ctx, id, false); err != nil {
			return fmt.Errorf("staff %d: %w", id, err)
		}
		if err := tx.Users.SetDisabled(ctx, st.UserID, true); err != nil {
			return fmt.Errorf("staff %d user %d: %w", id, st.UserID, err)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.log.WithField("staff_id", id).Info("staff member deactivated")
	return nil
}

func parseDate(v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse(dateLayout, v)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return &t, nil
}
