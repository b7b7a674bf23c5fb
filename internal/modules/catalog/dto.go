package catalog

// ---------- HOTELS ----------

type CreateHotelRequest struct {
	Name    string `json:"name" validate:"required,max=150"`
	Address string `json:"address" validate:"max=255"`
	City    string `json:"city" validate:"max=100"`
}

// ---------- ROOMS ----------

type CreateRoomRequest struct {
	HotelID       *int64  `json:"hotel_id"`
	RoomNumber    string  `json:"room_number" validate:"required,max=10"`
	RoomType      string  `json:"room_type" validate:"required"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Capacity      int     `json:"capacity" validate:"required,gt=0,lte=20"`
	Description   string  `json:"description"`
}

type UpdateRoomRequest struct {
	HotelID       *int64  `json:"hotel_id"`
	RoomNumber    string  `json:"room_number" validate:"required,max=10"`
	RoomType      string  `json:"room_type" validate:"required"`
	PricePerNight float64 `json:"price_per_night" validate:"required,gt=0"`
	Capacity      int     `json:"capacity" validate:"required,gt=0,lte=20"`
	Description   string  `json:"description"`
	IsActive      *bool   `json:"is_active"`
}

type UpdateRoomStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
