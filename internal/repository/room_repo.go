package repository

import (
	"context"

	"hotelreservation/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type RoomRepository struct {
	db *gorm.DB
}

func NewRoomRepository(db *gorm.DB) *RoomRepository {
	return &RoomRepository{db: db}
}

type RoomFilters struct {
	HotelID    *int64
	RoomType   domain.RoomType
	Status     domain.RoomStatus
	ActiveOnly bool
	Limit      int
	Offset     int
}

func (r *RoomRepository) Create(ctx context.Context, room *domain.Room) error {
	return r.db.WithContext(ctx).Create(room).Error
}

func (r *RoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	if err := r.db.WithContext(ctx).First(&room, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

// GetForUpdate locks the room row. Booking creation takes this lock first so
// that concurrent bookings for one room are serialised on Postgres.
func (r *RoomRepository) GetForUpdate(ctx context.Context, id int64) (*domain.Room, error) {
	var room domain.Room
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&room, id).Error
	if err != nil {
		return nil, notFound(err)
	}
	return &room, nil
}

func (r *RoomRepository) List(ctx context.Context, f RoomFilters) ([]domain.Room, int64, error) {
	q := r.db.WithContext(ctx).Model(&domain.Room{})
	if f.HotelID != nil {
		q = q.Where("hotel_id = ?", *f.HotelID)
	}
	if f.RoomType != "" {
		q = q.Where("room_type = ?", string(f.RoomType))
	}
	if f.Status != "" {
		q = q.Where("status = ?", string(f.Status))
	}
	if f.ActiveOnly {
		q = q.Where("is_active = ?", true)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	limit, offset := NormalizePage(f.Limit, f.Offset)
	var rooms []domain.Room
	if err := q.Order("room_number").Limit(limit).Offset(offset).Find(&rooms).Error; err != nil {
		return nil, 0, err
	}
	return rooms, total, nil
}

// FindCandidates returns active AVAILABLE rooms that fit the party.
func (r *RoomRepository) FindCandidates(ctx context.Context, minCapacity int, hotelID *int64) ([]domain.Room, error) {
	q := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Where("status = ?", string(domain.RoomAvailable)).
		Where("capacity >= ?", minCapacity)
	if hotelID != nil {
		q = q.Where("hotel_id = ?", *hotelID)
	}

	var rooms []domain.Room
	if err := q.Find(&rooms).Error; err != nil {
		return nil, err
	}
	return rooms, nil
}

func (r *RoomRepository) Update(ctx context.Context, room *domain.Room) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Room{}).
		Where("id = ?", room.ID).
		Select("hotel_id", "room_number", "room_type", "price_per_night", "capacity", "description", "is_active").
		Updates(room)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) UpdateStatus(ctx context.Context, id int64, status domain.RoomStatus) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", id).Update("status", string(status))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *RoomRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Room{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
