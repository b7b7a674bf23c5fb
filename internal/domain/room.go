package domain

import "time"

type RoomType string

const (
	RoomSingle RoomType = "SINGLE"
	RoomDouble RoomType = "DOUBLE"
	RoomSuite  RoomType = "SUITE"
	RoomDeluxe RoomType = "DELUXE"
)

func (t RoomType) Valid() bool {
	switch t {
	case RoomSingle, RoomDouble, RoomSuite, RoomDeluxe:
		return true
	}
	return false
}

type RoomStatus string

const (
	RoomAvailable   RoomStatus = "AVAILABLE"
	RoomOccupied    RoomStatus = "OCCUPIED"
	RoomMaintenance RoomStatus = "MAINTENANCE"
	RoomCleaning    RoomStatus = "CLEANING"
)

func (s RoomStatus) Valid() bool {
	switch s {
	case RoomAvailable, RoomOccupied, RoomMaintenance, RoomCleaning:
		return true
	}
	return false
}

// Room is the inventory record. Status is an operational flag; whether a
// room is free for a date range is decided by its bookings, never by Status.
type Room struct {
	ID            int64      `gorm:"primaryKey" json:"id"`
	HotelID       *int64     `gorm:"index" json:"hotel_id,omitempty"`
	RoomNumber    string     `gorm:"type:varchar(10);uniqueIndex;not null" json:"room_number" validate:"required,max=10"`
	RoomType      RoomType   `gorm:"type:varchar(20);not null" json:"room_type" validate:"required"`
	Status        RoomStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	PricePerNight float64    `gorm:"type:decimal(10,2);not null" json:"price_per_night" validate:"gte=0"`
	Capacity      int        `gorm:"not null" json:"capacity" validate:"required,gte=1"`
	Description   string     `gorm:"type:text" json:"description,omitempty"`
	IsActive      bool       `gorm:"not null;index" json:"is_active"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

func (Room) TableName() string { return "rooms" }

// IsBookable reports whether the room may be offered for new stays at all.
func (r *Room) IsBookable() bool {
	return r.IsActive && r.Status == RoomAvailable
}

type Hotel struct {
	ID        int64     `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(150);not null" json:"name" validate:"required,max=150"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	City      string    `gorm:"type:varchar(100);index" json:"city,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Hotel) TableName() string { return "hotels" }
