package booking

import (
	"errors"
	"net/http"
	"strconv"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/middleware"
	"hotelreservation/internal/pkg/response"
	"hotelreservation/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes expects rg to be behind JWTAuth. Per-booking permissions
// are decided by the service Policy.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/bookings", h.CreateBooking)
	rg.GET("/bookings", h.ListBookings)
	rg.GET("/bookings/:id", h.GetBooking)
	rg.GET("/users/me/bookings", h.GetMyBookings)

	rg.PATCH("/bookings/:id/confirm", h.ConfirmBooking)
	rg.PATCH("/bookings/:id/cancel", h.CancelBooking)
	rg.PATCH("/bookings/:id/check-in", h.CheckIn)
	rg.PATCH("/bookings/:id/check-out", h.CheckOut)
	rg.PATCH("/bookings/:id/no-show", h.MarkNoShow)

	rg.GET("/rooms/:id/bookings", h.GetRoomBusyRanges)
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	stay, err := domain.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		writeError(c, err)
		return
	}

	b, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), CreateInput{
		RoomID:     req.RoomID,
		Stay:       stay,
		Adults:     req.Adults,
		Children:   req.Children,
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		CustomerID: req.CustomerID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"booking": b})
}

func (h *Handler) GetBooking(c *gin.Context) {
	b, err := h.service.Get(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func (h *Handler) ListBookings(c *gin.Context) {
	var q ListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	status := domain.BookingStatus(q.Status)
	if status != "" && !status.Valid() {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "unknown booking status")
		return
	}

	h.list(c, repository.BookingFilters{
		Status:     status,
		RoomID:     q.RoomID,
		CustomerID: q.CustomerID,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
}

func (h *Handler) GetMyBookings(c *gin.Context) {
	var q PageQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	actor := middleware.CurrentActor(c)
	h.list(c, repository.BookingFilters{UserID: &actor.UserID, Limit: q.Limit, Offset: q.Offset})
}

func (h *Handler) list(c *gin.Context, f repository.BookingFilters) {
	items, total, err := h.service.List(c.Request.Context(), middleware.CurrentActor(c), f)
	if err != nil {
		writeError(c, err)
		return
	}
	limit, offset := repository.NormalizePage(f.Limit, f.Offset)
	response.Paginated(c, items, total, limit, offset)
}

func (h *Handler) ConfirmBooking(c *gin.Context) {
	b, err := h.service.Confirm(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	h.respond(c, b, err)
}

func (h *Handler) CancelBooking(c *gin.Context) {
	var req CancelRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
	}
	b, err := h.service.Cancel(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"), req.Reason)
	h.respond(c, b, err)
}

func (h *Handler) CheckIn(c *gin.Context) {
	b, err := h.service.CheckIn(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	h.respond(c, b, err)
}

func (h *Handler) CheckOut(c *gin.Context) {
	b, err := h.service.CheckOut(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	h.respond(c, b, err)
}

func (h *Handler) MarkNoShow(c *gin.Context) {
	b, err := h.service.MarkNoShow(c.Request.Context(), middleware.CurrentActor(c), c.Param("id"))
	h.respond(c, b, err)
}

// GetRoomBusyRanges handles GET /rooms/:id/bookings?from=YYYY-MM-DD&to=YYYY-MM-DD
func (h *Handler) GetRoomBusyRanges(c *gin.Context) {
	roomID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid room ID")
		return
	}
	var q BusyRangesQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}
	window, err := domain.ParseDateRange(q.From, q.To)
	if err != nil {
		writeError(c, err)
		return
	}

	ranges, err := h.service.BusyRanges(c.Request.Context(), middleware.CurrentActor(c), roomID, window)
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room_id": roomID, "busy": ranges})
}

func (h *Handler) respond(c *gin.Context, b *domain.Booking, err error) {
	if err != nil {
		writeError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"booking": b})
}

func writeError(c *gin.Context, err error) {
	if errors.Is(err, ErrRoomBusy) {
		c.Header("Retry-After", "1")
		response.Error(c, http.StatusConflict, "ROOM_BUSY", err.Error())
		return
	}
	response.FromDomainError(c, err)
}
