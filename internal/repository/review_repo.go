package repository

import (
	"context"

	"hotelreservation/internal/domain"

	"gorm.io/gorm"
)

type ReviewRepository struct {
	db *gorm.DB
}

func NewReviewRepository(db *gorm.DB) *ReviewRepository {
	return &ReviewRepository{db: db}
}

func (r *ReviewRepository) Create(ctx context.Context, rv *domain.Review) error {
	return r.db.WithContext(ctx).Create(rv).Error
}

func (r *ReviewRepository) GetByBookingID(ctx context.Context, bookingID string) (*domain.Review, error) {
	var rv domain.Review
	if err := r.db.WithContext(ctx).Where("booking_id = ?", bookingID).First(&rv).Error; err != nil {
		return nil, notFound(err)
	}
	return &rv, nil
}

func (r *ReviewRepository) ListByRoom(ctx context.Context, roomID int64, limit, offset int) ([]domain.Review, error) {
	limit, offset = NormalizePage(limit, offset)
	var out []domain.Review
	err := r.db.WithContext(ctx).
		Where("room_id = ?", roomID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}

// AverageRating returns the mean rating of a room and the number of reviews.
func (r *ReviewRepository) AverageRating(ctx context.Context, roomID int64) (float64, int64, error) {
	var row struct {
		Avg   float64
		Count int64
	}
	err := r.db.WithContext(ctx).
		Model(&domain.Review{}).
		Select("COALESCE(AVG(rating), 0) AS avg, COUNT(*) AS count").
		Where("room_id = ?", roomID).
		Scan(&row).Error
	if err != nil {
		return 0, 0, err
	}
	return row.Avg, row.Count, nil
}
