package middleware

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminChecker reports whether a user currently holds the admin flag.
type AdminChecker interface {
	IsAdmin(ctx context.Context, userID int64) (bool, error)
}

// AdminMiddleware lets through only callers whose stored account is an
// administrator. It must run after JWTAuthMiddleware.
func AdminMiddleware(checker AdminChecker, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := IdentityFrom(c)
		if identity == nil {
			abort(c, http.StatusForbidden, "identity not found, ensure JWT middleware runs first")
			return
		}

		isAdmin, err := checker.IsAdmin(c.Request.Context(), identity.UserID)
		if err != nil {
			log.Error().Err(err).Int64("user_id", identity.UserID).Msg("admin check failed")
			abort(c, http.StatusInternalServerError, "internal server error")
			return
		}
		if !isAdmin {
			abort(c, http.StatusForbidden, "you do not have permission to access this resource")
			return
		}

		c.Next()
	}
}
