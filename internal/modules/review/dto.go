package review

import "hotelreservation/internal/domain"

type CreateReviewRequest struct {
	BookingID string `json:"booking_id" validate:"required,uuid"`
	Rating    int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment   string `json:"comment" validate:"max=2000"`
}

type RoomReviews struct {
	RoomID        int64           `json:"room_id"`
	AverageRating float64         `json:"average_rating"`
	Count         int64           `json:"count"`
	Reviews       []domain.Review `json:"reviews"`
}
