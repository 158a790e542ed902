package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/polkiloo/drinkshop/internal/domain/errors"
	pkgAuth "github.com/polkiloo/drinkshop/internal/pkg/auth"
)

// IdentityContextKey is a gin context key for the authenticated identity.
const IdentityContextKey = "identity"

// Authenticator verifies identity tokens.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*pkgAuth.Identity, error)
}

// AuthRequired ensures user is authenticated before accessing handler.
func AuthRequired(authenticator Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}

		identity, err := authenticator.Authenticate(c.Request.Context(), token)
		if err != nil {
			if errors.Is(err, domainErrors.ErrUnauthenticated) || errors.Is(err, pkgAuth.ErrInvalidToken) {
				c.AbortWithStatus(http.StatusUnauthorized)
				return
			}
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}

		c.Set(IdentityContextKey, identity)
		c.Next()
	}
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}
	return ""
}
