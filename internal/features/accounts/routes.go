package accounts

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// RegisterRoutes mounts the account routes of kind under kind.Path.
// limiter guards authenticate and may be nil.
func RegisterRoutes(router gin.IRouter, kind Kind, store Store, tokens *jwt.Manager, timeout time.Duration, limiter gin.HandlerFunc) *gin.RouterGroup {
	handler := NewHandler(kind, store, tokens, timeout)

	auth := middleware.Auth(tokens)
	adminOnly := middleware.RequireRoles(jwt.RoleAdmin)

	group := router.Group(kind.Path)
	{
		if kind.Role == jwt.RoleAdmin {
			group.POST("/add", auth, adminOnly, handler.Add)
		} else {
			group.POST("/add", handler.Add)
		}

		if kind.AdminList {
			group.GET("/getall", auth, adminOnly, handler.GetAll)
		} else {
			group.GET("/getall", handler.GetAll)
		}

		if kind.AdminRead {
			group.GET("/getbyid/:id", auth, adminOnly, handler.GetByID)
		} else {
			group.GET("/getbyid/:id", handler.GetByID)
		}

		group.PUT("/update/:id", auth, handler.Update)
		group.DELETE("/delete/:id", auth, handler.Delete)

		if limiter != nil {
			group.POST("/authenticate", limiter, handler.Authenticate)
		} else {
			group.POST("/authenticate", handler.Authenticate)
		}

		group.GET("/me", auth, middleware.RequireRoles(kind.Role), handler.Me)
	}
	return group
}
