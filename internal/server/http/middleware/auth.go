package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/marketbase/marketplace/internal/domain/errors"
	"github.com/marketbase/marketplace/internal/domain/model"
	pkgAuth "github.com/marketbase/marketplace/internal/pkg/auth"
	"github.com/marketbase/marketplace/internal/server/http/dto"
)

const (
	// UserIDContextKey is a gin context key for the authenticated user id.
	UserIDContextKey = "userID"
	// SellerContextKey is a gin context key for the resolved seller profile.
	SellerContextKey = "seller"

	authCookieName = "marketplace_token"
	adminKeyHeader = "X-Admin-Key"
)

// TokenParser resolves the subject and role carried by a session token.
type TokenParser interface {
	ParseToken(token string) (string, string, error)
}

// SellerProvider loads seller profiles for authenticated seller calls.
type SellerProvider interface {
	Seller(ctx context.Context, id string) (*model.Seller, error)
}

// KeyComparer checks a presented admin key against the stored hash.
type KeyComparer interface {
	Compare(hash string, key string) error
}

// UserRequired ensures the request carries a valid user token.
func UserRequired(parser TokenParser) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, role, ok := parseRequestToken(c, parser)
		if !ok {
			return
		}
		if role != pkgAuth.RoleUser {
			abort(c, http.StatusForbidden, "user access required")
			return
		}
		c.Set(UserIDContextKey, subject)
		c.Next()
	}
}

// SellerRequired ensures the request carries a valid seller token and
// injects the full seller profile into the context.
func SellerRequired(parser TokenParser, sellers SellerProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		subject, role, ok := parseRequestToken(c, parser)
		if !ok {
			return
		}
		if role != pkgAuth.RoleSeller {
			abort(c, http.StatusForbidden, "seller access required")
			return
		}

		seller, err := sellers.Seller(c.Request.Context(), subject)
		if err != nil {
			if errors.Is(err, domainErrors.ErrNotFound) {
				abort(c, http.StatusUnauthorized, "unknown seller")
				return
			}
			abort(c, http.StatusInternalServerError, "internal error")
			return
		}

		c.Set(SellerContextKey, seller)
		c.Next()
	}
}

// AdminRequired gates an endpoint behind the shared admin key.
func AdminRequired(comparer KeyComparer, keyHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(adminKeyHeader)
		if key == "" {
			abort(c, http.StatusUnauthorized, "admin key required")
			return
		}
		if err := comparer.Compare(keyHash, key); err != nil {
			abort(c, http.StatusForbidden, "admin access denied")
			return
		}
		c.Next()
	}
}

func parseRequestToken(c *gin.Context, parser TokenParser) (string, string, bool) {
	token := extractToken(c)
	if token == "" {
		abort(c, http.StatusUnauthorized, "authentication required")
		return "", "", false
	}

	subject, role, err := parser.ParseToken(token)
	if err != nil {
		if errors.Is(err, pkgAuth.ErrInvalidToken) {
			abort(c, http.StatusUnauthorized, "invalid token")
			return "", "", false
		}
		abort(c, http.StatusInternalServerError, "internal error")
		return "", "", false
	}
	return subject, role, true
}

func extractToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
		return strings.TrimSpace(authHeader[7:])
	}

	if cookie, err := c.Cookie(authCookieName); err == nil {
		return cookie
	}
	return ""
}

func abort(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Message: message})
}
