package availability

import (
	"net/http"

	"hotelreservation/internal/domain"
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
	rg.GET("/rooms/available", h.Search)
}

// Search handles GET /rooms/available?check_in&check_out&adults&children&hotel_id&sort
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		return
	}

	stay, err := domain.ParseDateRange(req.CheckIn, req.CheckOut)
	if err != nil {
		response.FromDomainError(c, err)
		return
	}

	adults := 1
	if req.Adults != nil {
		adults = *req.Adults
	}

	rooms, err := h.service.FindAvailable(c.Request.Context(), Query{
		Stay:     stay,
		Adults:   adults,
		Children: req.Children,
		HotelID:  req.HotelID,
		Sort:     SortOrder(req.Sort),
	})
	if err != nil {
		response.FromDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, SearchResponse{
		CheckIn:  stay.CheckIn.Format(domain.DateLayout),
		CheckOut: stay.CheckOut.Format(domain.DateLayout),
		Nights:   stay.Nights(),
		Guests:   adults + req.Children,
		Rooms:    rooms,
	})
}
