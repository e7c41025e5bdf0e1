package middleware

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"

	"github.com/sahyogi/sahyogi-backend/internal/pkg/jwt"
)

func newProtectedRouter(tokens *jwt.Manager, roles ...jwt.Role) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	handlers := []gin.HandlerFunc{Auth(tokens)}
	if len(roles) > 0 {
		handlers = append(handlers, RequireRoles(roles...))
	}
	handlers = append(handlers, func(c *gin.Context) {
		claims, _ := Claims(c)
		c.JSON(200, gin.H{"id": claims.ID, "role": claims.Role})
	})
	r.GET("/protected", handlers...)
	return r
}

func call(r *gin.Engine, header string) (int, map[string]any) {
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	r.ServeHTTP(w, req)

	var body map[string]any
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w.Code, body
}

func TestAuthMiddleware_NoHeader(t *testing.T) {
	r := newProtectedRouter(jwt.NewManager("secret", time.Hour))

	code, body := call(r, "")
	require.Equal(t, 401, code)
	require.Equal(t, false, body["success"])
	require.Equal(t, float64(401), body["statusCode"])
	require.Equal(t, "Authorization header required", body["message"])
	require.Equal(t, "AUTH_REQUIRED", body["code"])
}

func TestAuthMiddleware_BearerAndRawToken(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newProtectedRouter(tokens)

	tok, err := tokens.GenerateToken("u1", "Asha", "a@x.org", jwt.RoleUser)
	require.NoError(t, err)

	for _, header := range []string{"Bearer " + tok, "bearer " + tok, tok} {
		code, body := call(r, header)
		require.Equal(t, 200, code, header)
		require.Equal(t, "u1", body["id"])
		require.Equal(t, "user", body["role"])
	}
}

func TestAuthMiddleware_ExpiredVersusInvalid(t *testing.T) {
	tokens := jwt.NewManager("secret", 48*time.Hour)
	r := newProtectedRouter(tokens)

	threeDaysAgo := time.Now().Add(-72 * time.Hour)
	old, err := jwt.NewManager("secret", 48*time.Hour).
		WithClock(func() time.Time { return threeDaysAgo }).
		GenerateToken("u1", "Asha", "a@x.org", jwt.RoleUser)
	require.NoError(t, err)

	code, body := call(r, "Bearer "+old)
	require.Equal(t, 401, code)
	require.Equal(t, "TOKEN_EXPIRED", body["code"])

	code, body = call(r, "Bearer garbage.token.value")
	require.Equal(t, 401, code)
	require.Equal(t, "TOKEN_INVALID", body["code"])
}

func TestRequireRoles(t *testing.T) {
	tokens := jwt.NewManager("secret", time.Hour)
	r := newProtectedRouter(tokens, jwt.RoleAdmin, jwt.RoleNGO)

	userTok, _ := tokens.GenerateToken("u1", "Asha", "a@x.org", jwt.RoleUser)
	code, body := call(r, userTok)
	require.Equal(t, 403, code)
	require.Equal(t, "FORBIDDEN", body["code"])

	ngoTok, _ := tokens.GenerateToken("n1", "Red Cross", "rc@x.org", jwt.RoleNGO)
	code, _ = call(r, ngoTok)
	require.Equal(t, 200, code)
}

func TestRequireRoles_TokenWithoutRole(t *testing.T) {
	claims := gojwt.MapClaims{
		"_id":   "u1",
		"name":  "Asha",
		"email": "a@x.org",
		"exp":   time.Now().Add(time.Hour).Unix(),
	}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	tokens := jwt.NewManager("secret", time.Hour)

	code, body := call(newProtectedRouter(tokens, jwt.RoleAdmin), tok)
	require.Equal(t, 403, code)
	require.Equal(t, "FORBIDDEN", body["code"])

	code, body = call(newProtectedRouter(tokens, jwt.AllRoles()...), tok)
	require.Equal(t, 403, code)
	require.Equal(t, "FORBIDDEN", body["code"])

	code, body = call(newProtectedRouter(tokens), tok)
	require.Equal(t, 200, code)
	require.Equal(t, "", body["role"])
}

func TestRequireRoles_UnknownRole(t *testing.T) {
	claims := gojwt.MapClaims{"_id": "u1", "role": "root", "exp": time.Now().Add(time.Hour).Unix()}
	tok, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, claims).SignedString([]byte("secret"))
	require.NoError(t, err)

	code, body := call(newProtectedRouter(jwt.NewManager("secret", time.Hour), jwt.AllRoles()...), tok)
	require.Equal(t, 403, code)
	require.Equal(t, "FORBIDDEN", body["code"])
}

func TestRequireRoles_WithoutAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", RequireRoles(jwt.RoleAdmin), func(c *gin.Context) { c.Status(200) })

	code, _ := call(r, "")
	require.Equal(t, 401, code)
}

func TestOptionalAuth(t *testing.T) {
	gin.SetMode(gin.TestMode)
	tokens := jwt.NewManager("secret", time.Hour)
	r := gin.New()
	r.GET("/protected", OptionalAuth(tokens), func(c *gin.Context) {
		_, ok := Claims(c)
		c.JSON(200, gin.H{"authenticated": ok})
	})

	code, body := call(r, "")
	require.Equal(t, 200, code)
	require.Equal(t, false, body["authenticated"])

	code, body = call(r, "not-a-token")
	require.Equal(t, 200, code)
	require.Equal(t, false, body["authenticated"])

	tok, _ := tokens.GenerateToken("u1", "Asha", "a@x.org", jwt.RoleUser)
	_, body = call(r, tok)
	require.Equal(t, true, body["authenticated"])
}

func TestTokenFromHeader(t *testing.T) {
	require.Equal(t, "abc", TokenFromHeader("Bearer abc"))
	require.Equal(t, "abc", TokenFromHeader("  abc "))
	require.Equal(t, "abc", TokenFromHeader("BEARER   abc"))
}
