package request

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
	"github.com/sahyogi/sahyogi-backend/internal/pkg/response"
)

// ParamID parses the ":id" path parameter. On failure it writes a 400 and
// returns false.
func ParamID(c *gin.Context) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "Invalid ID format", "INVALID_ID")
		return primitive.NilObjectID, false
	}
	return id, true
}

// Context derives the store context of a request
func Context(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

// IsOwnerOrAdmin reports whether claims belong to the author of a resource
// or to an admin
func IsOwnerOrAdmin(claims *jwt.Claims, authorID primitive.ObjectID) bool {
	if claims == nil {
		return false
	}
	return claims.Role == jwt.RoleAdmin || claims.ID == authorID.Hex()
}
