package auth

import (
	"errors"
	"net/http"

	"hotelreservation/internal/middleware"
	"hotelreservation/internal/pkg/response"
	"hotelreservation/internal/pkg/validator"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts register and login. Callers wrap the group in
// the auth rate limiter.
func (h *Handler) RegisterPublicRoutes(v1 *gin.RouterGroup, mw ...gin.HandlerFunc) {
	authGroup := v1.Group("/auth", mw...)
	{
		authGroup.POST("/register", h.Register)
		authGroup.POST("/login", h.Login)
	}
}

func (h *Handler) RegisterProtectedRoutes(protected *gin.RouterGroup) {
	protected.GET("/auth/me", h.GetMe)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if !bind(c, &req) {
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrEmailAlreadyExists) {
			response.Error(c, http.StatusConflict, "EMAIL_EXISTS", "This email is already registered")
			return
		}
		response.FromDomainError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"user": toPublic(user), "token": token})
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if !bind(c, &req) {
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Email or password is incorrect")
			return
		}
		if errors.Is(err, ErrAccountDisabled) {
			response.Error(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
			return
		}
		response.FromDomainError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user), "token": token})
}

func (h *Handler) GetMe(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	user, err := h.service.GetCurrentUser(c.Request.Context(), actor.UserID)
	if err != nil {
		response.FromDomainError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"user": toPublic(user)})
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
