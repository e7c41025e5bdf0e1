package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("JWT_EXPIRE_HOURS", "")

	cfg := Load()
	require.Equal(t, "8080", cfg.Port)
	require.Equal(t, 48*time.Hour, cfg.JWTExpire)
	require.NotEmpty(t, cfg.JWTSecret)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.FrontendURLs)
}

func TestLoad_ProductionKeepsEmptySecret(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("JWT_SECRET", "")

	cfg := Load()
	require.True(t, cfg.IsProduction())
	require.Empty(t, cfg.JWTSecret)
}

func TestLoad_FrontendList(t *testing.T) {
	t.Setenv("FRONTEND_URLS", "http://a.org, http://b.org,,")

	cfg := Load()
	require.Equal(t, []string{"http://a.org", "http://b.org"}, cfg.FrontendURLs)
}
