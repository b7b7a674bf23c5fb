package repository

import (
	"context"

	"hotelreservation/internal/domain"

	"gorm.io/gorm"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.Staff) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.Staff, error) {
	var s domain.Staff
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *StaffRepository) GetByUserID(ctx context.Context, userID int64) (*domain.Staff, error) {
	var s domain.Staff
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&s).Error; err != nil {
		return nil, notFound(err)
	}
	return &s, nil
}

func (r *StaffRepository) List(ctx context.Context, activeOnly bool) ([]domain.Staff, error) {
	q := r.db.WithContext(ctx).Model(&domain.Staff{})
	if activeOnly {
		q = q.Where("is_active = ?", true)
	}
	var out []domain.Staff
	if err := q.Order("full_name").Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (r *StaffRepository) Update(ctx context.Context, s *domain.Staff) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Staff{}).
		Where("id = ?", s.ID).
		Select("full_name", "gender", "date_of_birth", "contact_details", "address",
			"emergency_contact", "role", "date_of_employment", "employment_status").
		Updates(s)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *StaffRepository) SetActive(ctx context.Context, id int64, active bool) error {
	res := r.db.WithContext(ctx).Model(&domain.Staff{}).Where("id = ?", id).Update("is_active", active)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}
