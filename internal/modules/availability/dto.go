package availability

import "hotelreservation/internal/domain"

type SortOrder string

const (
	SortNone         SortOrder = ""
	SortByPrice      SortOrder = "price"
	SortByRoomNumber SortOrder = "room_number"
)

type Query struct {
	Stay     domain.DateRange
	Adults   int
	Children int
	HotelID  *int64
	Sort     SortOrder
}

type AvailableRoom struct {
	Room       domain.Room `json:"room"`
	Nights     int         `json:"nights"`
	TotalPrice float64     `json:"total_price"`
}

type SearchRequest struct {
	CheckIn  string `form:"check_in" binding:"required"`
	CheckOut string `form:"check_out" binding:"required"`
	Adults   *int   `form:"adults"`
	Children int    `form:"children"`
	HotelID  *int64 `form:"hotel_id"`
	Sort     string `form:"sort" binding:"omitempty,oneof=price room_number"`
}

type SearchResponse struct {
	CheckIn  string          `json:"check_in"`
	CheckOut string          `json:"check_out"`
	Nights   int             `json:"nights"`
	Guests   int             `json:"guests"`
	Rooms    []AvailableRoom `json:"rooms"`
}
