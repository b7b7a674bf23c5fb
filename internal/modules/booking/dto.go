package booking

import "hotelreservation/internal/domain"

type CreateBookingRequest struct {
	RoomID     int64  `json:"room_id" binding:"required"`
	CheckIn    string `json:"check_in" binding:"required"`
	CheckOut   string `json:"check_out" binding:"required"`
	Adults     int    `json:"adults"`
	Children   int    `json:"children"`
	FullName   string `json:"full_name" binding:"required,max=150"`
	Email      string `json:"email" binding:"required,email"`
	Phone      string `json:"phone" binding:"omitempty,max=20"`
	CustomerID *int64 `json:"customer_id"`
}

// CreateInput is the validated form of a booking request.
type CreateInput struct {
	RoomID     int64
	Stay       domain.DateRange
	Adults     int
	Children   int
	FullName   string
	Email      string
	Phone      string
	CustomerID *int64
}

type CancelRequest struct {
	Reason string `json:"reason" binding:"max=500"`
}

type PageQuery struct {
	Limit  int `form:"limit" binding:"min=0"`
	Offset int `form:"offset" binding:"min=0"`
}

type ListQuery struct {
	PageQuery
	Status     string `form:"status"`
	RoomID     *int64 `form:"room_id"`
	CustomerID *int64 `form:"customer_id"`
}

type BusyRangesQuery struct {
	From string `form:"from" binding:"required"`
	To   string `form:"to" binding:"required"`
}
