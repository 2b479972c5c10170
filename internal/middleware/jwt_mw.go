package middleware

import (
	"net/http"
	"strings"

	"pet_constitution/internal/model"

	"github.com/gin-gonic/gin"
)

const AuthIdentityKey = "authIdentity"

// TokenVerifier decodes a bearer token into the caller's identity.
type TokenVerifier interface {
	VerifyToken(token string) (*model.Identity, error)
}

// JWTAuthMiddleware rejects requests without a valid bearer token: 401 when
// no token is present, 403 when the token does not verify.
func JWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		token, ok := bearerToken(authHeader)
		if !ok {
			abort(c, http.StatusUnauthorized, "authentication required")
			return
		}

		identity, err := verifier.VerifyToken(token)
		if err != nil {
			abort(c, http.StatusForbidden, "invalid or expired token")
			return
		}

		c.Set(AuthIdentityKey, identity)
		c.Next()
	}
}

// OptionalJWTAuthMiddleware attaches the identity when a valid token is
// present and otherwise lets the request through anonymously.
func OptionalJWTAuthMiddleware(verifier TokenVerifier) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token, ok := bearerToken(c.GetHeader("Authorization")); ok {
			if identity, err := verifier.VerifyToken(token); err == nil {
				c.Set(AuthIdentityKey, identity)
			}
		}
		c.Next()
	}
}

// IdentityFrom returns the verified caller, or nil for anonymous requests.
func IdentityFrom(c *gin.Context) *model.Identity {
	v, exists := c.Get(AuthIdentityKey)
	if !exists {
		return nil
	}
	identity, _ := v.(*model.Identity)
	return identity
}

// bearerToken returns the second space-separated field of the header. The
// scheme is not checked; whatever follows it must verify as a token.
func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) < 2 || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, gin.H{"success": false, "message": message})
}
