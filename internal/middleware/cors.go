// ================== internal/middleware/cors.go ==================
package middleware

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// CORS allows the configured frontend origins. A single "*" echoes any origin
// back, since credentials rule out the literal wildcard.
func CORS(allowedOrigins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", RequestIDHeader},
		ExposeHeaders:    []string{"Content-Length", RequestIDHeader},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}

	switch {
	case len(allowedOrigins) == 0:
		cfg.AllowOriginFunc = func(string) bool { return false }
	case len(allowedOrigins) == 1 && allowedOrigins[0] == "*":
		cfg.AllowOriginFunc = func(string) bool { return true }
	default:
		cfg.AllowOrigins = allowedOrigins
	}

	return cors.New(cfg)
}
