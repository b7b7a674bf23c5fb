package payment

import "hotelreservation/internal/domain"

type CreatePaymentRequest struct {
	BookingID string               `json:"booking_id" binding:"required"`
	Amount    float64              `json:"amount" binding:"required"`
	Method    string               `json:"method" binding:"omitempty,oneof=cash card transfer online"`
	Reference string               `json:"reference" binding:"max=100"`
	Status    domain.PaymentStatus `json:"status" binding:"omitempty,oneof=PENDING COMPLETED"`
}
