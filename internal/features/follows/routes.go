package follows

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sahyogi/sahyogi-backend/internal/features/accounts"
	"github.com/sahyogi/sahyogi-backend/internal/middleware"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

// RegisterRoutes registers the follow routes of a followable kind
func RegisterRoutes(router gin.IRouter, kind accounts.Kind, store Store, tokens *jwt.Manager, timeout time.Duration) {
	handler := NewHandler(kind, store, timeout)
	auth := middleware.Auth(tokens)
	member := middleware.RequireRoles(jwt.AllRoles()...)

	group := router.Group(kind.Path)
	{
		group.POST("/follow/:id", auth, member, handler.Follow)
		group.POST("/unfollow/:id", auth, member, handler.Unfollow)
		group.GET("/isfollowing/:id", auth, handler.IsFollowing)
		group.GET("/followers/:id", handler.Followers)
	}
}
