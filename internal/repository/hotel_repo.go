package repository

import (
	"context"

	"hotelreservation/internal/domain"

	"gorm.io/gorm"
)

type HotelRepository struct {
	db *gorm.DB
}

func NewHotelRepository(db *gorm.DB) *HotelRepository {
	return &HotelRepository{db: db}
}

func (r *HotelRepository) Create(ctx context.Context, h *domain.Hotel) error {
	return r.db.WithContext(ctx).Create(h).Error
}

func (r *HotelRepository) GetByID(ctx context.Context, id int64) (*domain.Hotel, error) {
	var h domain.Hotel
	if err := r.db.WithContext(ctx).First(&h, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &h, nil
}

func (r *HotelRepository) List(ctx context.Context, city string) ([]domain.Hotel, error) {
	q := r.db.WithContext(ctx).Model(&domain.Hotel{})
	if city != "" {
		q = q.Where("LOWER(city) = LOWER(?)", city)
	}
	var hotels []domain.Hotel
	if err := q.Order("name").Find(&hotels).Error; err != nil {
		return nil, err
	}
	return hotels, nil
}
