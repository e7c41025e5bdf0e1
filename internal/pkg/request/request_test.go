package request

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

func TestParamID(t *testing.T) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: "nope"}}
	_, ok := ParamID(c)
	require.False(t, ok)
	require.Equal(t, 400, w.Code)
	require.Contains(t, w.Body.String(), "INVALID_ID")

	id := primitive.NewObjectID()
	w = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(w)
	c.Params = gin.Params{{Key: "id", Value: id.Hex()}}
	got, ok := ParamID(c)
	require.True(t, ok)
	require.Equal(t, id, got)
}

func TestIsOwnerOrAdmin(t *testing.T) {
	author := primitive.NewObjectID()

	require.True(t, IsOwnerOrAdmin(&jwt.Claims{ID: author.Hex(), Role: jwt.RoleNGO}, author))
	require.True(t, IsOwnerOrAdmin(&jwt.Claims{ID: "someone", Role: jwt.RoleAdmin}, author))
	require.False(t, IsOwnerOrAdmin(&jwt.Claims{ID: "someone", Role: jwt.RoleNGO}, author))
	require.False(t, IsOwnerOrAdmin(nil, author))
}
