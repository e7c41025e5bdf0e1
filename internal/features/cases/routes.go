package cases

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// RegisterRoutes registers the case record routes under /casemanagement
func RegisterRoutes(router gin.IRouter, store Store, tokens *jwt.Manager, timeout time.Duration) {
	handler := NewHandler(store, timeout)
	auth := middleware.Auth(tokens)
	optionalAuth := middleware.OptionalAuth(tokens)
	authors := middleware.RequireRoles(jwt.RoleNGO, jwt.RoleSocialWorker, jwt.RoleAdmin)

	group := router.Group("/casemanagement")
	{
		group.POST("/add", auth, authors, handler.Add)
		group.GET("/getall", optionalAuth, handler.GetAll)
		group.GET("/getbyid/:id", optionalAuth, handler.GetByID)
		group.GET("/getbyauthor/:id", optionalAuth, handler.GetByAuthor)
		group.PUT("/update/:id", auth, handler.Update)
		group.DELETE("/delete/:id", auth, handler.Delete)
		group.PUT("/verify/:id", auth, middleware.RequireRoles(jwt.RoleAdmin), handler.Verify)
	}
}
