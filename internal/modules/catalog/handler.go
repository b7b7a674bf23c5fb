package catalog

import (
	"errors"
	"net/http"
	"strconv"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/pkg/response"
	"hotelreservation/internal/pkg/validator"
	"hotelreservation/internal/repository"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/hotels", h.GetHotels)
	r.GET("/hotels/:id", h.GetHotelByID)
	r.GET("/rooms", h.GetRooms)
	r.GET("/rooms/types", h.GetRoomTypes)
	r.GET("/rooms/:id", h.GetRoomByID)
}

// RegisterStaffRoutes expects r to be behind JWTAuth and StaffOnly.
func (h *Handler) RegisterStaffRoutes(r *gin.RouterGroup) {
	r.POST("/rooms", h.CreateRoom)
	r.PUT("/rooms/:id", h.UpdateRoom)
	r.PATCH("/rooms/:id/status", h.UpdateRoomStatus)
	r.DELETE("/rooms/:id", h.DeactivateRoom)
}

// RegisterAdminRoutes expects r to be behind JWTAuth and AdminOnly.
func (h *Handler) RegisterAdminRoutes(r *gin.RouterGroup) {
	r.POST("/hotels", h.CreateHotel)
}

/* ---------- HOTEL HANDLERS ---------- */

func (h *Handler) GetHotels(c *gin.Context) {
	hotels, err := h.service.ListHotels(c.Request.Context(), c.Query("city"))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotels": hotels})
}

func (h *Handler) GetHotelByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	hotel, err := h.service.GetHotel(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"hotel": hotel})
}

func (h *Handler) CreateHotel(c *gin.Context) {
	var req CreateHotelRequest
	if !bind(c, &req) {
		return
	}
	hotel, err := h.service.CreateHotel(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"hotel": hotel})
}

/* ---------- ROOM HANDLERS ---------- */

// GetRooms handles GET /api/v1/rooms?hotel_id&room_type&status&limit&offset
func (h *Handler) GetRooms(c *gin.Context) {
	f := repository.RoomFilters{
		RoomType:   domain.RoomType(c.Query("room_type")),
		Status:     domain.RoomStatus(c.Query("status")),
		ActiveOnly: c.Query("include_inactive") != "true",
	}
	if v := c.Query("hotel_id"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "hotel_id must be an integer")
			return
		}
		f.HotelID = &id
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	rooms, total, err := h.service.ListRooms(c.Request.Context(), f)
	if err != nil {
		handleError(c, err)
		return
	}
	limit, offset := repository.NormalizePage(f.Limit, f.Offset)
	response.Paginated(c, rooms, total, limit, offset)
}

func (h *Handler) GetRoomByID(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	room, err := h.service.GetRoom(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) GetRoomTypes(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"room_types": []domain.RoomType{domain.RoomSingle, domain.RoomDouble, domain.RoomSuite, domain.RoomDeluxe},
	})
}

func (h *Handler) CreateRoom(c *gin.Context) {
	var req CreateRoomRequest
	if !bind(c, &req) {
		return
	}
	room, err := h.service.CreateRoom(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"room": room})
}

func (h *Handler) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRoomRequest
	if !bind(c, &req) {
		return
	}
	room, err := h.service.UpdateRoom(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) UpdateRoomStatus(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req UpdateRoomStatusRequest
	if !bind(c, &req) {
		return
	}
	room, err := h.service.UpdateRoomStatus(c.Request.Context(), id, domain.RoomStatus(req.Status))
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"room": room})
}

func (h *Handler) DeactivateRoom(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.DeactivateRoom(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": false})
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid ID")
		return 0, false
	}
	return id, true
}

func bind(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	if errs := validator.Validate(req); errs != nil {
		response.ValidationFailed(c, errs)
		return false
	}
	return true
}

func handleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrInvalidRoomType):
		response.Error(c, http.StatusBadRequest, "INVALID_ROOM_TYPE", err.Error())
	case errors.Is(err, ErrInvalidRoomStatus):
		response.Error(c, http.StatusBadRequest, "INVALID_ROOM_STATUS", err.Error())
	case errors.Is(err, ErrDuplicateRoomNumber):
		response.Error(c, http.StatusConflict, "DUPLICATE_ROOM_NUMBER", err.Error())
	default:
		response.FromDomainError(c, err)
	}
}
