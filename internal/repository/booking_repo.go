package repository

import (
	"context"
	"time"

	"hotelreservation/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// OverlapConstraint is the Postgres exclusion constraint installed by
// database.Migrate.
const OverlapConstraint = "bookings_no_overlap"

type BookingRepository struct {
	db *gorm.DB
}

func NewBookingRepository(db *gorm.DB) *BookingRepository {
	return &BookingRepository{db: db}
}

type BookingModel struct {
	ID                 string     `gorm:"column:id;type:varchar(36);primaryKey"`
	RoomID             int64      `gorm:"column:room_id;not null;index:idx_bookings_room_stay"`
	UserID             int64      `gorm:"column:user_id;not null;index"`
	CustomerID         *int64     `gorm:"column:customer_id;index"`
	CreatedByStaffID   *int64     `gorm:"column:created_by_staff_id"`
	FullName           string     `gorm:"column:full_name;type:varchar(200)"`
	Email              string     `gorm:"column:email;type:varchar(254)"`
	Phone              *string    `gorm:"column:phone;type:varchar(20)"`
	CheckIn            time.Time  `gorm:"column:check_in;type:date;not null;index:idx_bookings_room_stay"`
	CheckOut           time.Time  `gorm:"column:check_out;type:date;not null;index:idx_bookings_room_stay"`
	Adults             int        `gorm:"column:adults;not null"`
	Children           int        `gorm:"column:children;not null"`
	Status             string     `gorm:"column:status;type:varchar(20);not null;index"`
	PaymentStatus      string     `gorm:"column:payment_status;type:varchar(20);not null"`
	TotalAmount        float64    `gorm:"column:total_amount;type:decimal(10,2);not null"`
	CancellationReason *string    `gorm:"column:cancellation_reason;type:text"`
	CancelledAt        *time.Time `gorm:"column:cancelled_at"`
	CreatedAt          time.Time  `gorm:"column:created_at"`
	UpdatedAt          time.Time  `gorm:"column:updated_at"`
}

func (BookingModel) TableName() string { return "bookings" }

func toDomainBooking(m BookingModel) *domain.Booking {
	var phone, reason string
	if m.Phone != nil {
		phone = *m.Phone
	}
	if m.CancellationReason != nil {
		reason = *m.CancellationReason
	}

	return &domain.Booking{
		ID:                 m.ID,
		RoomID:             m.RoomID,
		UserID:             m.UserID,
		CustomerID:         m.CustomerID,
		CreatedByStaffID:   m.CreatedByStaffID,
		FullName:           m.FullName,
		Email:              m.Email,
		Phone:              phone,
		Stay:               domain.DateRange{CheckIn: domain.Date(m.CheckIn), CheckOut: domain.Date(m.CheckOut)},
		Adults:             m.Adults,
		Children:           m.Children,
		Status:             domain.BookingStatus(m.Status),
		PaymentStatus:      domain.PaymentState(m.PaymentStatus),
		TotalAmount:        m.TotalAmount,
		CancellationReason: reason,
		CancelledAt:        m.CancelledAt,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

func toBookingModel(b *domain.Booking) BookingModel {
	var phone, reason *string
	if b.Phone != "" {
		v := b.Phone
		phone = &v
	}
	if b.CancellationReason != "" {
		v := b.CancellationReason
		reason = &v
	}

	return BookingModel{
		ID:                 b.ID,
		RoomID:             b.RoomID,
		UserID:             b.UserID,
		CustomerID:         b.CustomerID,
		CreatedByStaffID:   b.CreatedByStaffID,
		FullName:           b.FullName,
		Email:              b.Email,
		Phone:              phone,
		CheckIn:            b.Stay.CheckIn,
		CheckOut:           b.Stay.CheckOut,
		Adults:             b.Adults,
		Children:           b.Children,
		Status:             string(b.Status),
		PaymentStatus:      string(b.PaymentStatus),
		TotalAmount:        b.TotalAmount,
		CancellationReason: reason,
		CancelledAt:        b.CancelledAt,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	m := toBookingModel(b)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		return err
	}
	*b = *toDomainBooking(m)
	return nil
}

func (r *BookingRepository) GetByID(ctx context.Context, id string) (*domain.Booking, error) {
	var m BookingModel
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error; err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

// GetForUpdate locks the booking row until the surrounding transaction ends.
func (r *BookingRepository) GetForUpdate(ctx context.Context, id string) (*domain.Booking, error) {
	var m BookingModel
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&m).Error
	if err != nil {
		return nil, notFound(err)
	}
	return toDomainBooking(m), nil
}

// HasConflict reports whether a booking of roomID with one of statuses
// overlaps stay. Ranges are half-open: [a_in, a_out) and [b_in, b_out)
// overlap iff a_in < b_out AND b_in < a_out.
func (r *BookingRepository) HasConflict(ctx context.Context, roomID int64, stay domain.DateRange, statuses []domain.BookingStatus) (bool, error) {
	if len(statuses) == 0 {
		statuses = domain.BlockingStatuses
	}
	var cnt int64
	err := r.db.WithContext(ctx).
		Model(&BookingModel{}).
		Where("room_id = ?", roomID).
		Where("status IN ?", statusStrings(statuses)).
		Where("check_in < ? AND check_out > ?", stay.CheckOut, stay.CheckIn).
		Count(&cnt).Error
	if err != nil {
		return false, err
	}
	return cnt > 0, nil
}

// BlockedRoomIDs returns every room with a booking in statuses overlapping
// stay, optionally limited to one hotel.
func (r *BookingRepository) BlockedRoomIDs(ctx context.Context, stay domain.DateRange, statuses []domain.BookingStatus, hotelID *int64) (map[int64]struct{}, error) {
	if len(statuses) == 0 {
		statuses = domain.BlockingStatuses
	}
	q := r.db.WithContext(ctx).
		Table("bookings AS b").
		Where("b.status IN ?", statusStrings(statuses)).
		Where("b.check_in < ? AND b.check_out > ?", stay.CheckOut, stay.CheckIn)
	if hotelID != nil {
		q = q.Joins("JOIN rooms rm ON rm.id = b.room_id").Where("rm.hotel_id = ?", *hotelID)
	}

	var ids []int64
	if err := q.Distinct().Pluck("b.room_id", &ids).Error; err != nil {
		return nil, err
	}
	out := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		out[id] = struct{}{}
	}
	return out, nil
}

// UpdateStatus writes the new status plus the cancellation details when the
// booking is being cancelled.
func (r *BookingRepository) UpdateStatus(ctx context.Context, id string, status domain.BookingStatus, reason string, at time.Time) error {
	updates := map[string]interface{}{
		"status":     string(status),
		"updated_at": at,
	}
	if status == domain.BookingCancelled {
		updates["cancelled_at"] = at
		if reason != "" {
			updates["cancellation_reason"] = reason
		}
	}
	res := r.db.WithContext(ctx).Model(&BookingModel{}).Where("id = ?", id).Updates(updates)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *BookingRepository) UpdatePaymentStatus(ctx context.Context, id string, status domain.PaymentState) error {
	res := r.db.WithContext(ctx).Model(&BookingModel{}).Where("id = ?", id).Update("payment_status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

type BookingFilters struct {
	UserID     *int64
	CustomerID *int64
	RoomID     *int64
	Status     domain.BookingStatus
	Limit      int
	Offset     int
}

func (r *BookingRepository) List(ctx context.Context, f BookingFilters) ([]domain.Booking, int64, error) {
	q := r.db.WithContext(ctx).Model(&BookingModel{})
	if f.UserID != nil {
		q = q.Where("user_id = ?", *f.UserID)
	}
	if f.CustomerID != nil {
		q = q.Where("customer_id = ?", *f.CustomerID)
	}
	if f.RoomID != nil {
		q = q.Where("room_id = ?", *f.RoomID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := NormalizePage(f.Limit, f.Offset)
	var rows []BookingModel
	if err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&rows).Error; err != nil {
		return nil, 0, err
	}

	out := make([]domain.Booking, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBooking(m))
	}
	return out, total, nil
}

// BusyRanges lists the blocking stays of a room that overlap [from, to).
func (r *BookingRepository) BusyRanges(ctx context.Context, roomID int64, from, to time.Time) ([]domain.DateRange, error) {
	var rows []BookingModel
	err := r.db.WithContext(ctx).
		Select("check_in", "check_out").
		Where("room_id = ?", roomID).
		Where("status IN ?", statusStrings(domain.BlockingStatuses)).
		Where("check_in < ? AND check_out > ?", to, from).
		Order("check_in").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.DateRange, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.DateRange{CheckIn: domain.Date(m.CheckIn), CheckOut: domain.Date(m.CheckOut)})
	}
	return out, nil
}
