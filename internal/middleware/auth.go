// ================== internal/middleware/auth.go ==================
package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/logger"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
)

const claimsKey = "claims"

// TokenFromHeader accepts both "Bearer <token>" (case-insensitive) and a raw
// token as the header value
func TokenFromHeader(authHeader string) string {
	fields := strings.Fields(authHeader)
	if len(fields) == 2 && strings.EqualFold(fields[0], "Bearer") {
		return fields[1]
	}
	return strings.TrimSpace(authHeader)
}

// Auth rejects requests without a valid token and stores the decoded claims
// on the context
func Auth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) == "" {
			response.Unauthorized(c, "Authorization header required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		claims, err := tokens.ValidateToken(TokenFromHeader(authHeader))
		switch {
		case err == nil:
		case errors.Is(err, jwt.ErrExpiredToken):
			response.Unauthorized(c, "Token has expired", "TOKEN_EXPIRED")
			c.Abort()
			return
		case errors.Is(err, jwt.ErrInvalidToken):
			response.Unauthorized(c, "Invalid token", "TOKEN_INVALID")
			c.Abort()
			return
		default:
			logger.Error("token verification failed", zap.Error(err))
			response.InternalServerError(c, "Failed to verify token", "AUTH_ERROR")
			c.Abort()
			return
		}

		setClaims(c, claims)
		c.Next()
	}
}

// OptionalAuth attaches claims when a valid token is present and never
// rejects the request
func OptionalAuth(tokens *jwt.Manager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if strings.TrimSpace(authHeader) != "" {
			if claims, err := tokens.ValidateToken(TokenFromHeader(authHeader)); err == nil {
				setClaims(c, claims)
			}
		}
		c.Next()
	}
}

// RequireRoles lets the request through only when the role claim is one of
// roles. A missing or unknown role is forbidden. It must run after Auth.
func RequireRoles(roles ...jwt.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := Claims(c)
		if !ok {
			response.Unauthorized(c, "Authentication required", "AUTH_REQUIRED")
			c.Abort()
			return
		}

		if claims.Role.IsValid() && slices.Contains(roles, claims.Role) {
			c.Next()
			return
		}

		response.Forbidden(c, "Insufficient permissions", "FORBIDDEN")
		c.Abort()
	}
}

// Claims returns the claims stored by Auth or OptionalAuth
func Claims(c *gin.Context) (*jwt.Claims, bool) {
	val, exists := c.Get(claimsKey)
	if !exists {
		return nil, false
	}
	claims, ok := val.(*jwt.Claims)
	return claims, ok && claims != nil
}

func setClaims(c *gin.Context, claims *jwt.Claims) {
	c.Set(claimsKey, claims)
	c.Set("userID", claims.ID)
	c.Set("email", claims.Email)
	c.Set("role", string(claims.Role))
}
