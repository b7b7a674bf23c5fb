package response

import (
	"errors"
	"net/http"

	"hotelreservation/internal/domain"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, statusCode int, data interface{}) {
	c.JSON(statusCode, gin.H{
		"success": true,
		"data":    data,
	})
}

func Error(c *gin.Context, statusCode int, code string, message string) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
		},
	})
}

func ErrorWithDetails(c *gin.Context, statusCode int, code string, message string, details any) {
	c.JSON(statusCode, gin.H{
		"success": false,
		"error": gin.H{
			"code":    code,
			"message": message,
			"details": details,
		},
	})
}

// Abort writes an error envelope and stops the handler chain.
func Abort(c *gin.Context, statusCode int, code string, message string) {
	Error(c, statusCode, code, message)
	c.Abort()
}

type mapping struct {
	target error
	status int
	code   string
}

var domainErrors = []mapping{
	{domain.ErrInvalidRange, http.StatusBadRequest, "INVALID_DATE_RANGE"},
	{domain.ErrStayTooShort, http.StatusBadRequest, "STAY_TOO_SHORT"},
	{domain.ErrPastDate, http.StatusBadRequest, "PAST_CHECK_IN"},
	{domain.ErrInvalidPartySize, http.StatusBadRequest, "INVALID_PARTY_SIZE"},
	{domain.ErrAmountMismatch, http.StatusBadRequest, "AMOUNT_MISMATCH"},
	{domain.ErrRoomUnavailable, http.StatusConflict, "ROOM_UNAVAILABLE"},
	{domain.ErrAlreadyPaid, http.StatusConflict, "ALREADY_PAID"},
	{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_STATUS_TRANSITION"},
	{domain.ErrPermission, http.StatusForbidden, "FORBIDDEN"},
	{domain.ErrNotFound, http.StatusNotFound, "NOT_FOUND"},
}

// FromDomainError renders err using the shared domain error taxonomy. Unknown
// errors become a 500 without leaking their text; they are attached to the
// context so the error logger records them.
func FromDomainError(c *gin.Context, err error) {
	for _, m := range domainErrors {
		if errors.Is(err, m.target) {
			Error(c, m.status, m.code, err.Error())
			return
		}
	}
	_ = c.Error(err)
	Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
}

// ValidationFailed renders a 400 with per-field validator output.
func ValidationFailed(c *gin.Context, fields map[string]string) {
	ErrorWithDetails(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid request", fields)
}

// Paginated wraps a list with its total count.
func Paginated(c *gin.Context, items interface{}, total int64, limit, offset int) {
	Success(c, http.StatusOK, gin.H{
		"items":  items,
		"total":  total,
		"limit":  limit,
		"offset": offset,
	})
}
