package booking

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/middleware"
	"hotelreservation/internal/pkg/jwt"
	"hotelreservation/internal/testutil"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool `json:"success"`
	Data    struct {
		Booking domain.Booking `json:"booking"`
	} `json:"data"`
	Error struct {
		Code string `json:"code"`
	} `json:"error"`
}

func setupRouter(t *testing.T) (*gin.Engine, *jwt.Service, *domain.Room) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, store := newTestService(t, Options{})
	room := testutil.SeedRoom(t, store, "101", 2, 150)

	tokens := jwt.New("test-secret", time.Hour)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1", middleware.JWTAuth(tokens)))
	return r, tokens, room
}

func do(t *testing.T, r *gin.Engine, tokens *jwt.Service, actor domain.Actor, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	token, err := tokens.GenerateToken(actor.UserID, string(actor.Role))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	_ = json.Unmarshal(w.Body.Bytes(), &env)
	return w, env
}

func TestHandler_CreateConfirmFlow(t *testing.T) {
	r, tokens, room := setupRouter(t)

	req := CreateBookingRequest{
		RoomID: room.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-04",
		Adults: 2, FullName: "Ada Guest", Email: "ada@example.com",
	}
	w, env := do(t, r, tokens, customer, http.MethodPost, "/api/v1/bookings", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.Equal(t, domain.BookingPending, env.Data.Booking.Status)
	assert.Equal(t, 450.0, env.Data.Booking.TotalAmount)
	id := env.Data.Booking.ID

	w, env = do(t, r, tokens, otherCustomer, http.MethodPost, "/api/v1/bookings", req)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "ROOM_UNAVAILABLE", env.Error.Code)

	w, env = do(t, r, tokens, customer, http.MethodPatch, "/api/v1/bookings/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "FORBIDDEN", env.Error.Code)

	w, env = do(t, r, tokens, staff, http.MethodPatch, "/api/v1/bookings/"+id+"/confirm", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.BookingConfirmed, env.Data.Booking.Status)

	w, env = do(t, r, tokens, staff, http.MethodPatch, "/api/v1/bookings/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "INVALID_STATUS_TRANSITION", env.Error.Code)

	w, env = do(t, r, tokens, customer, http.MethodPatch, "/api/v1/bookings/"+id+"/cancel", CancelRequest{Reason: "sick"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, domain.BookingCancelled, env.Data.Booking.Status)
	assert.Equal(t, "sick", env.Data.Booking.CancellationReason)
}

func TestHandler_CreateValidation(t *testing.T) {
	r, tokens, room := setupRouter(t)

	w, env := do(t, r, tokens, customer, http.MethodPost, "/api/v1/bookings", CreateBookingRequest{
		RoomID: room.ID, CheckIn: "2024-03-04", CheckOut: "2024-03-01",
		Adults: 1, FullName: "Ada", Email: "ada@example.com",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_DATE_RANGE", env.Error.Code)

	w, env = do(t, r, tokens, customer, http.MethodPost, "/api/v1/bookings", map[string]any{"room_id": room.ID})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	w, env = do(t, r, tokens, customer, http.MethodGet, "/api/v1/bookings/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)
}

func TestHandler_MyBookingsPaging(t *testing.T) {
	r, tokens, room := setupRouter(t)

	req := CreateBookingRequest{
		RoomID: room.ID, CheckIn: "2024-03-01", CheckOut: "2024-03-04",
		Adults: 1, FullName: "Ada Guest", Email: "ada@example.com",
	}
	w, _ := do(t, r, tokens, customer, http.MethodPost, "/api/v1/bookings", req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{name: "defaults", query: "", want: http.StatusOK},
		{name: "explicit page", query: "?limit=5&offset=0", want: http.StatusOK},
		{name: "non-numeric limit", query: "?limit=abc", want: http.StatusBadRequest},
		{name: "non-numeric offset", query: "?offset=x", want: http.StatusBadRequest},
		{name: "negative offset", query: "?offset=-1", want: http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, _ := do(t, r, tokens, customer, http.MethodGet, "/api/v1/users/me/bookings"+tt.query, nil)
			assert.Equal(t, tt.want, w.Code, w.Body.String())
		})
	}

	w, _ = do(t, r, tokens, customer, http.MethodGet, "/api/v1/users/me/bookings", nil)
	assert.Contains(t, w.Body.String(), `"total":1`)
	w, _ = do(t, r, tokens, otherCustomer, http.MethodGet, "/api/v1/users/me/bookings", nil)
	assert.Contains(t, w.Body.String(), `"total":0`)
}
