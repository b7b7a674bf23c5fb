package repository

import (
	"context"
	"errors"
	"strings"

	"hotelreservation/internal/domain"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// Store groups the repositories that share one *gorm.DB. A Store built inside
// WithTx runs every query in that transaction.
type Store struct {
	db *gorm.DB

	Rooms     *RoomRepository
	Hotels    *HotelRepository
	Bookings  *BookingRepository
	Payments  *PaymentRepository
	Reviews   *ReviewRepository
	Users     *UserRepository
	Staff     *StaffRepository
	Customers *CustomerRepository
}

func NewStore(db *gorm.DB) *Store {
	return &Store{
		db:        db,
		Rooms:     NewRoomRepository(db),
		Hotels:    NewHotelRepository(db),
		Bookings:  NewBookingRepository(db),
		Payments:  NewPaymentRepository(db),
		Reviews:   NewReviewRepository(db),
		Users:     NewUserRepository(db),
		Staff:     NewStaffRepository(db),
		Customers: NewCustomerRepository(db),
	}
}

func (s *Store) DB() *gorm.DB { return s.db }

// WithTx runs fn in a single transaction. Returning an error (or a cancelled
// ctx) rolls everything back.
func (s *Store) WithTx(ctx context.Context, fn func(tx *Store) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(NewStore(tx))
	})
}

func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func notFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.ErrNotFound
	}
	return err
}

// IsUniqueViolation recognises duplicate-key errors from Postgres and SQLite.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "duplicate") || strings.Contains(msg, "unique constraint") || strings.Contains(msg, "unique failed")
}

// IsOverlapViolation recognises the Postgres exclusion constraint that keeps
// blocking bookings of one room from overlapping.
func IsOverlapViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23P01" || (pgErr.Code == "23505" && pgErr.ConstraintName == OverlapConstraint)
	}
	return false
}

func statusStrings[T ~string](in []T) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		out = append(out, string(s))
	}
	return out
}

func NormalizePage(limit, offset int) (int, int) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
