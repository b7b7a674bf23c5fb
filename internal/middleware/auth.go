package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"hotelreservation/internal/domain"
	"hotelreservation/internal/pkg/jwt"
	"hotelreservation/internal/pkg/response"

	"github.com/gin-gonic/gin"
)

const (
	ctxUserID = "user_id"
	ctxRole   = "role"
)

// JWTAuth validates the bearer token and stores user_id and role in the
// gin context.
func JWTAuth(tokens *jwt.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Abort(c, http.StatusUnauthorized, "AUTH_HEADER_MISSING", "Authorization header is required")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
			response.Abort(c, http.StatusUnauthorized, "INVALID_AUTH_FORMAT", "Authorization header must be 'Bearer <token>'")
			return
		}

		claims, err := tokens.ValidateToken(strings.TrimSpace(parts[1]))
		if err != nil {
			code := "INVALID_TOKEN"
			if errors.Is(err, jwt.ErrExpiredToken) {
				code = "TOKEN_EXPIRED"
			}
			response.Abort(c, http.StatusUnauthorized, code, err.Error())
			return
		}
		if !domain.UserRole(claims.Role).Valid() {
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "unknown role")
			return
		}

		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

// AccountLookup loads the user behind a token.
type AccountLookup interface {
	GetByID(ctx context.Context, id int64) (*domain.User, error)
}

// ActiveAccount rejects tokens whose user was removed or disabled after the
// token was issued. It must run after JWTAuth.
func ActiveAccount(users AccountLookup) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := users.GetByID(c.Request.Context(), c.GetInt64(ctxUserID))
		switch {
		case errors.Is(err, domain.ErrNotFound):
			response.Abort(c, http.StatusUnauthorized, "INVALID_TOKEN", "user no longer exists")
			return
		case err != nil:
			response.Abort(c, http.StatusInternalServerError, "INTERNAL_ERROR", "failed to load account")
			return
		case user.IsDisabled:
			response.Abort(c, http.StatusForbidden, "ACCOUNT_DISABLED", "Account is disabled")
			return
		}
		c.Next()
	}
}

// CurrentActor returns the authenticated caller. The zero Actor means no
// authentication middleware ran.
func CurrentActor(c *gin.Context) domain.Actor {
	return domain.Actor{
		UserID: c.GetInt64(ctxUserID),
		Role:   domain.UserRole(c.GetString(ctxRole)),
	}
}
