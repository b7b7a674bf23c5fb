package domain

import "time"

type Review struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	BookingID string    `gorm:"type:varchar(36);uniqueIndex;not null" json:"booking_id"`
	RoomID    int64     `gorm:"index;not null" json:"room_id"`
	UserID    int64     `gorm:"index;not null" json:"user_id"`
	Rating    int       `gorm:"not null" json:"rating"`
	Comment   string    `gorm:"type:text" json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Review) TableName() string { return "reviews" }
