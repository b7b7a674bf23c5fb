package customer

import (
	"errors"
	"net/http"
	"strconv"

	"hotelreservation/internal/middleware"
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

// RegisterRoutes expects a group already restricted to staff.
func (h *Handler) RegisterRoutes(staff *gin.RouterGroup) {
	customers := staff.Group("/customers")
	{
		customers.POST("", h.Create)
		customers.GET("", h.Search)
		customers.GET("/:id", h.Get)
		customers.PUT("/:id", h.Update)
		customers.DELETE("/:id", h.Deactivate)
		customers.GET("/:id/bookings", h.Bookings)
	}
}

func (h *Handler) Create(c *gin.Context) {
	var req CustomerRequest
	if !bind(c, &req) {
		return
	}
	cust, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"customer": cust})
}

func (h *Handler) Search(c *gin.Context) {
	var q SearchQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid query parameters")
		return
	}
	items, total, err := h.service.Search(c.Request.Context(), q)
	if err != nil {
		handleError(c, err)
		return
	}
	limit, offset := repository.NormalizePage(q.Limit, q.Offset)
	response.Paginated(c, items, total, limit, offset)
}

func (h *Handler) Get(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	cust, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": cust})
}

func (h *Handler) Update(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req CustomerRequest
	if !bind(c, &req) {
		return
	}
	cust, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"customer": cust})
}

func (h *Handler) Deactivate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.service.Deactivate(c.Request.Context(), id); err != nil {
		handleError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"id": id, "is_active": false})
}

func (h *Handler) Bookings(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	limit, _ := strconv.Atoi(c.Query("limit"))
	offset, _ := strconv.Atoi(c.Query("offset"))

	items, total, err := h.service.Bookings(c.Request.Context(), middleware.CurrentActor(c), id, limit, offset)
	if err != nil {
		handleError(c, err)
		return
	}
	limit, offset = repository.NormalizePage(limit, offset)
	response.Paginated(c, items, total, limit, offset)
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
	case errors.Is(err, ErrDuplicateContact):
		response.Error(c, http.StatusConflict, "DUPLICATE_CUSTOMER", err.Error())
	case errors.Is(err, ErrInvalidDate):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		response.FromDomainError(c, err)
	}
}
