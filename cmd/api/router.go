package main

import (
	"context"
	"net/http"
	"time"

	"hotelreservation/internal/config"
	"hotelreservation/internal/domain"
	"hotelreservation/internal/middleware"
	"hotelreservation/internal/modules/auth"
	"hotelreservation/internal/modules/availability"
	"hotelreservation/internal/modules/booking"
	"hotelreservation/internal/modules/catalog"
	"hotelreservation/internal/modules/customer"
	"hotelreservation/internal/modules/payment"
	"hotelreservation/internal/modules/review"
	"hotelreservation/internal/modules/staff"
	jwtsvc "hotelreservation/internal/pkg/jwt"
	"hotelreservation/internal/pkg/response"
	"hotelreservation/internal/pkg/roomlock"
	"hotelreservation/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// newRouter builds every service over one Store and mounts the API.
func newRouter(cfg *config.Config, store *repository.Store, locker roomlock.Locker, tokens *jwtsvc.Service, log logrus.FieldLogger) *gin.Engine {
	stay := domain.StayPolicy{MinimumNights: cfg.MinNights, NoPastCheckIn: true, Now: time.Now}
	policy := booking.RolePolicy{}

	bookingService := booking.NewService(store, locker, policy, booking.Options{
		Stay:            stay,
		MaxPartySize:    cfg.MaxPartySize,
		AutoConfirm:     cfg.BookingAutoConfirm,
		TrackRoomStatus: cfg.RoomStatusTracksStay,
	}, log)

	authHandler := auth.NewHandler(auth.NewService(store.Users, tokens, log))
	catalogHandler := catalog.NewHandler(catalog.NewService(store, log))
	availabilityHandler := availability.NewHandler(availability.NewService(store.Rooms, store.Bookings, availability.Policy{
		Stay:         stay,
		MaxPartySize: cfg.MaxPartySize,
	}, log))
	bookingHandler := booking.NewHandler(bookingService)
	paymentHandler := payment.NewHandler(payment.NewService(store, bookingService, log))
	reviewHandler := review.NewHandler(review.NewService(store.Reviews, store.Bookings, store.Rooms, policy, log))
	staffHandler := staff.NewHandler(staff.NewService(store, log))
	customerHandler := customer.NewHandler(customer.NewService(store, bookingService, log))

	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.RequestLogger(log),
		middleware.ErrorLogger(log),
		middleware.CORS(cfg.CORSAllowedOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()
		if err := store.Ping(ctx); err != nil {
			response.Error(c, http.StatusServiceUnavailable, "DB_UNAVAILABLE", "database is unreachable")
			return
		}
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterPublicRoutes(v1, middleware.RateLimit(middleware.NewIPRateLimiter(cfg.AuthRateLimit, cfg.AuthRateBurst)))
		catalogHandler.RegisterRoutes(v1)
		availabilityHandler.RegisterRoutes(v1)

		// any authenticated role; per-booking rules live in the policy
		protected := v1.Group("", middleware.JWTAuth(tokens), middleware.ActiveAccount(store.Users))
		reviewHandler.RegisterRoutes(v1, protected)
		authHandler.RegisterProtectedRoutes(protected)
		bookingHandler.RegisterRoutes(protected)
		paymentHandler.RegisterRoutes(protected)

		staffOnly := protected.Group("", middleware.StaffOnly())
		catalogHandler.RegisterStaffRoutes(staffOnly)
		staffHandler.RegisterStaffRoutes(staffOnly)
		customerHandler.RegisterRoutes(staffOnly)

		adminOnly := protected.Group("", middleware.AdminOnly())
		catalogHandler.RegisterAdminRoutes(adminOnly)
		staffHandler.RegisterAdminRoutes(adminOnly)
	}

	return r
}
