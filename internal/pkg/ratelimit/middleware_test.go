package ratelimit

import (
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func scopedRouter(lim *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/ngo/authenticate", Scoped(lim, ScopeLogin), func(c *gin.Context) { c.Status(200) })
	r.POST("/feedback/add", Scoped(lim, ScopeForms), func(c *gin.Context) { c.Status(400) })
	return r
}

func hit(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest("POST", path, nil))
	return w
}

func TestScoped_RejectsOverLimit(t *testing.T) {
	r := scopedRouter(New(0, time.Minute))

	w := hit(r, "/ngo/authenticate")
	require.Equal(t, 429, w.Code)
	require.NotEmpty(t, w.Header().Get("Retry-After"))

	var body map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, false, body["success"])
	require.Equal(t, float64(429), body["statusCode"])
	require.Equal(t, "Rate limit exceeded. Try again later.", body["message"])
	require.Equal(t, "RATE_LIMITED", body["code"])
	data := body["data"].(map[string]any)
	require.Contains(t, data, "retry_after")
	require.Contains(t, data, "reset_time")
}

func TestScoped_AllowsUpToLimit(t *testing.T) {
	r := scopedRouter(New(2, time.Minute))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := hit(r, "/ngo/authenticate")
		codes = append(codes, w.Code)
		if i == 0 {
			require.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
			require.Equal(t, "1", w.Header().Get("X-RateLimit-Remaining"))
		}
	}
	require.Equal(t, []int{200, 200, 429}, codes)
}

func TestScoped_FormFloodLeavesLoginAlone(t *testing.T) {
	r := scopedRouter(New(3, time.Minute))

	for i := 0; i < 3; i++ {
		require.Equal(t, 400, hit(r, "/feedback/add").Code)
	}
	require.Equal(t, 429, hit(r, "/feedback/add").Code)

	require.Equal(t, 200, hit(r, "/ngo/authenticate").Code)
}

func TestTake_SlidingWindow(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lim := New(2, time.Minute).WithClock(func() time.Time { return now })

	d := lim.Take("login:1.2.3.4")
	require.True(t, d.Allowed)
	require.Equal(t, 1, d.Remaining)
	require.Equal(t, now.Add(time.Minute), d.ResetAt)

	now = now.Add(30 * time.Second)
	require.True(t, lim.Take("login:1.2.3.4").Allowed)

	d = lim.Take("login:1.2.3.4")
	require.False(t, d.Allowed)
	require.Equal(t, 0, d.Remaining)
	require.Equal(t, now.Add(30*time.Second), d.ResetAt)

	// first hit has left the window
	now = now.Add(31 * time.Second)
	d = lim.Take("login:1.2.3.4")
	require.True(t, d.Allowed)
	require.Equal(t, 0, d.Remaining)

	require.True(t, lim.Take("forms:1.2.3.4").Allowed)
}

func TestPruneAndForget(t *testing.T) {
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	lim := New(1, 10*time.Second).WithClock(func() time.Time { return now })

	require.True(t, lim.Take("a").Allowed)
	require.True(t, lim.Take("b").Allowed)
	require.False(t, lim.Take("a").Allowed)
	require.Equal(t, 2, lim.Keys())

	now = now.Add(11 * time.Second)
	lim.Prune()
	require.Equal(t, 0, lim.Keys())

	require.True(t, lim.Take("a").Allowed)
	lim.Forget("a")
	require.True(t, lim.Take("a").Allowed)
}
