package middleware

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func TestRequestID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger())
	r.POST("/x", func(c *gin.Context) { c.Status(204) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", "/x", strings.NewReader(`{"password":"p"}`)))
	require.Len(t, w.Header().Get(RequestIDHeader), 36)

	w = httptest.NewRecorder()
	req := httptest.NewRequest("POST", "/x", nil)
	req.Header.Set(RequestIDHeader, "abc")
	r.ServeHTTP(w, req)
	require.Equal(t, "abc", w.Header().Get(RequestIDHeader))
}

func TestSanitizeBody_HidesSecrets(t *testing.T) {
	out := sanitizeBody(`{"email":"a@x.org","password":"hunter2","nested":{"token":"t"}}`, "application/json")
	require.NotContains(t, out, "hunter2")
	require.NotContains(t, out, `"t"`)
	require.Contains(t, out, "a@x.org")
}
