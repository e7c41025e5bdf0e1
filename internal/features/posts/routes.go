package posts

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// RegisterRoutes registers the post routes under /posts
func RegisterRoutes(router gin.IRouter, store Store, tokens *jwt.Manager, timeout time.Duration) {
	handler := NewHandler(store, timeout)
	auth := middleware.Auth(tokens)
	member := middleware.RequireRoles(jwt.AllRoles()...)

	posts := router.Group("/posts")
	{
		posts.POST("/add", auth, member, handler.Add)
		posts.GET("/getall", handler.GetAll)
		posts.GET("/getbyid/:id", handler.GetByID)
		posts.GET("/getbyauthor/:id", handler.GetByAuthor)
		posts.PUT("/update/:id", auth, handler.Update)
		posts.DELETE("/delete/:id", auth, handler.Delete)
		posts.POST("/like/:id", auth, handler.Like)
	}
}
