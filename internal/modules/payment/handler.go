package payment

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/middleware"
	"hotelreservation/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/payments", h.CreatePayment)
	rg.GET("/payments/:id", h.GetPayment)
	rg.PATCH("/payments/:id/complete", h.CompletePayment)
	rg.PATCH("/payments/:id/fail", h.FailPayment)
	rg.PATCH("/payments/:id/refund", h.RefundPayment)
	rg.GET("/bookings/:id/payments", h.ListBookingPayments)
}

func (h *Handler) CreatePayment(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	p, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), req)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"payment": p})
}

func (h *Handler) GetPayment(c *gin.Context) {
	h.withID(c, h.service.Get)
}

func (h *Handler) CompletePayment(c *gin.Context) {
	h.withID(c, h.service.Complete)
}

func (h *Handler) FailPayment(c *gin.Context) {
	h.withID(c, h.service.Fail)
}

func (h *Handler) RefundPayment(c *gin.Context) {
	h.withID(c, h.service.Refund)
}

func (h *Handler) ListBookingPayments(c *gin.Context) {
	items, err := h.service.ListByBooking(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payments": items})
}

func (h *Handler) withID(c *gin.Context, fn func(ctx context.Context, actor domain.Actor, id int64) (*domain.Payment, error)) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid payment ID")
		return
	}
	p, err := fn(c.Request.Context(), middleware.CurrentActor(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"payment": p})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrInvalidAmount) {
		response.Error(c, http.StatusBadRequest, "INVALID_AMOUNT", err.Error())
		return
	}
	response.FromDomainError(c, err)
}
