package contact

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// RegisterRoutes registers /contact. limiter guards the public form and
// may be nil.
func RegisterRoutes(router gin.IRouter, store Store, tokens *jwt.Manager, timeout time.Duration, limiter gin.HandlerFunc) {
	handler := NewHandler(store, timeout)

	group := router.Group("/contact")
	if limiter != nil {
		group.POST("/add", limiter, handler.Add)
	} else {
		group.POST("/add", handler.Add)
	}

	admin := group.Group("", middleware.Auth(tokens), middleware.RequireRoles(jwt.RoleAdmin))
	{
		admin.GET("/getall", handler.GetAll)
		admin.GET("/getbyid/:id", handler.GetByID)
		admin.DELETE("/delete/:id", handler.Delete)
	}
}
