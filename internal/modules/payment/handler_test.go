package payment

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"hotelreservation/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler_PaymentFlow(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _, _, b := setup(t)

	actor := guest
	r := gin.New()
	api := r.Group("/api/v1", func(c *gin.Context) {
		c.Set("user_id", actor.UserID)
		c.Set("role", string(actor.Role))
	})
	NewHandler(svc).RegisterRoutes(api)

	do := func(method, path string, body any) *httptest.ResponseRecorder {
		var buf bytes.Buffer
		if body != nil {
			_ = json.NewEncoder(&buf).Encode(body)
		}
		req := httptest.NewRequest(method, path, &buf)
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodPost, "/api/v1/payments", CreatePaymentRequest{BookingID: b.ID, Amount: 100})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "AMOUNT_MISMATCH")

	w = do(http.MethodPost, "/api/v1/payments", CreatePaymentRequest{BookingID: b.ID, Amount: 450, Method: "card"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var created struct {
		Data struct {
			Payment domain.Payment `json:"payment"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, domain.PaymentStatusPending, created.Data.Payment.Status)
	id := strconv.FormatInt(created.Data.Payment.ID, 10)

	w = do(http.MethodPatch, "/api/v1/payments/"+id+"/complete", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	actor = clerk
	w = do(http.MethodPatch, "/api/v1/payments/"+id+"/complete", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"COMPLETED"`)

	actor = guest
	w = do(http.MethodPatch, "/api/v1/payments/"+id+"/refund", nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	actor = clerk
	w = do(http.MethodPatch, "/api/v1/payments/"+id+"/refund", nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, w.Body.String(), `"status":"REFUNDED"`)

	w = do(http.MethodGet, "/api/v1/bookings/"+b.ID+"/payments", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(http.MethodGet, "/api/v1/payments/abc", nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
