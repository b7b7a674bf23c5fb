package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelreservation/internal/config"
	"hotelreservation/internal/domain"
	"hotelreservation/internal/modules/auth"
	jwtsvc "hotelreservation/internal/pkg/jwt"
	"hotelreservation/internal/pkg/roomlock"
	"hotelreservation/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type apiSuite struct {
	t      *testing.T
	router *gin.Engine
}

type envelope struct {
	Success bool                   `json:"success"`
	Data    map[string]interface{} `json:"data,omitempty"`
	Error   *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

func setupSuite(t *testing.T) *apiSuite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := testutil.NewStore(t)
	hash, err := auth.HashPassword("admin12345")
	require.NoError(t, err)
	require.NoError(t, store.Users.Create(t.Context(), &domain.User{
		Email: "admin@hotel.local", PasswordHash: hash, Role: domain.RoleAdmin, Name: "Admin",
	}))

	cfg := &config.Config{
		MinNights:          1,
		MaxPartySize:       10,
		CORSAllowedOrigins: []string{"*"},
		AuthRateLimit:      100,
		AuthRateBurst:      100,
	}
	tokens := jwtsvc.New("e2e-secret", time.Hour)
	return &apiSuite{t: t, router: newRouter(cfg, store, roomlock.NopLocker{}, tokens, testutil.Logger())}
}

func (s *apiSuite) call(method, path, token string, body interface{}) (int, envelope) {
	s.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(s.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	var env envelope
	require.NoError(s.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func (s *apiSuite) login(email, password string) string {
	s.t.Helper()
	code, env := s.call(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": email, "password": password})
	require.Equal(s.t, http.StatusOK, code)
	return env.Data["token"].(string)
}

func field(m map[string]interface{}, key string) map[string]interface{} {
	return m[key].(map[string]interface{})
}

func TestAPI_GuestStayLifecycle(t *testing.T) {
	s := setupSuite(t)

	checkIn := time.Now().AddDate(0, 1, 0).Format("2006-01-02")
	checkOut := time.Now().AddDate(0, 1, 2).Format("2006-01-02")

	adminToken := s.login("admin@hotel.local", "admin12345")

	code, _ := s.call(http.MethodPost, "/api/v1/staff", adminToken, gin.H{
		"email": "desk@hotel.local", "password": "desk12345", "full_name": "Front Desk", "role": "Receptionist",
	})
	require.Equal(t, http.StatusCreated, code)
	staffToken := s.login("desk@hotel.local", "desk12345")

	code, env := s.call(http.MethodPost, "/api/v1/rooms", staffToken, gin.H{
		"room_number": "101", "room_type": "DOUBLE", "price_per_night": 120, "capacity": 2,
	})
	require.Equal(t, http.StatusCreated, code)
	roomID := int64(field(env.Data, "room")["id"].(float64))

	code, env = s.call(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Ada", "email": "ada@example.com", "password": "ada12345",
	})
	require.Equal(t, http.StatusCreated, code)
	guestToken := env.Data["token"].(string)

	search := fmt.Sprintf("/api/v1/rooms/available?check_in=%s&check_out=%s&adults=2", checkIn, checkOut)
	code, env = s.call(http.MethodGet, search, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, env.Data["rooms"], 1)

	bookingBody := gin.H{
		"room_id": roomID, "check_in": checkIn, "check_out": checkOut,
		"adults": 2, "full_name": "Ada", "email": "ada@example.com",
	}
	code, env = s.call(http.MethodPost, "/api/v1/bookings", guestToken, bookingBody)
	require.Equal(t, http.StatusCreated, code)
	b := field(env.Data, "booking")
	bookingID := b["id"].(string)
	assert.Equal(t, "PENDING", b["status"])
	assert.Equal(t, 240.0, b["total_amount"])

	code, env = s.call(http.MethodPost, "/api/v1/bookings", guestToken, bookingBody)
	assert.Equal(t, http.StatusConflict, code)
	assert.Equal(t, "ROOM_UNAVAILABLE", env.Error.Code)

	code, env = s.call(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/confirm", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.call(http.MethodPost, "/api/v1/payments", guestToken, gin.H{
		"booking_id": bookingID, "amount": 100, "method": "card",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "AMOUNT_MISMATCH", env.Error.Code)

	code, _ = s.call(http.MethodPost, "/api/v1/payments", guestToken, gin.H{
		"booking_id": bookingID, "amount": 240, "method": "card", "status": "COMPLETED",
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, env = s.call(http.MethodPost, "/api/v1/payments", guestToken, gin.H{
		"booking_id": bookingID, "amount": 240, "method": "card",
	})
	require.Equal(t, http.StatusCreated, code)
	paymentPath := fmt.Sprintf("/api/v1/payments/%d/complete", int64(field(env.Data, "payment")["id"].(float64)))

	code, _ = s.call(http.MethodPatch, paymentPath, guestToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	code, _ = s.call(http.MethodPatch, paymentPath, staffToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.call(http.MethodGet, "/api/v1/bookings/"+bookingID, guestToken, nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "CONFIRMED", field(env.Data, "booking")["status"])
	assert.Equal(t, "paid", field(env.Data, "booking")["payment_status"])

	code, env = s.call(http.MethodGet, search, "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Empty(t, env.Data["rooms"])

	code, _ = s.call(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/check-in", staffToken, nil)
	require.Equal(t, http.StatusOK, code)
	code, _ = s.call(http.MethodPatch, "/api/v1/bookings/"+bookingID+"/check-out", staffToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.call(http.MethodPost, "/api/v1/reviews", guestToken, gin.H{"booking_id": bookingID, "rating": 5})
	require.Equal(t, http.StatusCreated, code)

	code, env = s.call(http.MethodGet, fmt.Sprintf("/api/v1/rooms/%d/reviews", roomID), "", nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, 5.0, env.Data["average_rating"])
}

func TestAPI_RoleGates(t *testing.T) {
	s := setupSuite(t)

	code, env := s.call(http.MethodPost, "/api/v1/auth/register", "", gin.H{
		"name": "Bob", "email": "bob@example.com", "password": "bob12345",
	})
	require.Equal(t, http.StatusCreated, code)
	guestToken := env.Data["token"].(string)

	code, _ = s.call(http.MethodPost, "/api/v1/rooms", guestToken, gin.H{
		"room_number": "999", "room_type": "SINGLE", "price_per_night": 10, "capacity": 1,
	})
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(http.MethodGet, "/api/v1/customers", guestToken, nil)
	assert.Equal(t, http.StatusForbidden, code)

	code, _ = s.call(http.MethodGet, "/api/v1/bookings", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	code, env = s.call(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "ok", env.Data["status"])
}

func TestAPI_DeactivatedStaffLosesAccess(t *testing.T) {
	s := setupSuite(t)
	adminToken := s.login("admin@hotel.local", "admin12345")

	code, env := s.call(http.MethodPost, "/api/v1/staff", adminToken, gin.H{
		"email": "night@hotel.local", "password": "night12345", "full_name": "Night Porter", "role": "Other",
	})
	require.Equal(t, http.StatusCreated, code)
	staffID := int64(field(env.Data, "staff")["id"].(float64))
	staffToken := s.login("night@hotel.local", "night12345")

	code, _ = s.call(http.MethodGet, "/api/v1/customers", staffToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, _ = s.call(http.MethodDelete, fmt.Sprintf("/api/v1/staff/%d", staffID), adminToken, nil)
	require.Equal(t, http.StatusOK, code)

	code, env = s.call(http.MethodPost, "/api/v1/auth/login", "", gin.H{"email": "night@hotel.local", "password": "night12345"})
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ACCOUNT_DISABLED", env.Error.Code)

	code, env = s.call(http.MethodGet, "/api/v1/customers", staffToken, nil)
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ACCOUNT_DISABLED", env.Error.Code)
}
