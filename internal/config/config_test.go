package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("JWT_SECRET", "")
	t.Setenv("NEWS_API_KEY", "")
	t.Setenv("NEWS_RSS_URL", "")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, devJWTSecret, cfg.JWTSecret)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 10*time.Second, cfg.NewsTimeout)
	assert.True(t, cfg.MetricsEnabled)
	assert.False(t, cfg.NewsConfigured())
	assert.Equal(t, 0, cfg.AuthRateLimit)
	assert.Empty(t, cfg.TrustedProxies)
	assert.EqualValues(t, 5, cfg.DBMaxConns)
	assert.Equal(t, 10, cfg.RedisPoolSize)
	assert.Equal(t, 1.0, cfg.OTelSampleRatio)
}

func TestParse_Overrides(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NEWS_API_KEY", "key")
	t.Setenv("STORE_DRIVER", " Postgres ")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("TRUSTED_PROXIES", "10.0.0.1,192.168.0.0/16")
	t.Setenv("AUTH_RATE_LIMIT", "20")

	cfg, err := Parse()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, "s3cret", cfg.JWTSecret)
	assert.Equal(t, "postgres", cfg.StoreDriver)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSAllowedOrigins)
	assert.Equal(t, []string{"10.0.0.1", "192.168.0.0/16"}, cfg.TrustedProxies)
	assert.Equal(t, 20, cfg.AuthRateLimit)
	assert.True(t, cfg.NewsConfigured())
	assert.False(t, cfg.IsDev())
}

func TestParse_ProdRequiresSecret(t *testing.T) {
	t.Setenv("APP_ENV", "prod")
	t.Setenv("JWT_SECRET", "")

	_, err := Parse()
	require.ErrorIs(t, err, ErrMissingJWTSecret)
}

func TestParse_InvalidPort(t *testing.T) {
	t.Setenv("APP_ENV", "dev")
	t.Setenv("PORT", "not-a-number")

	_, err := Parse()
	require.Error(t, err)
}
