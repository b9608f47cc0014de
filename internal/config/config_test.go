package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8800", cfg.ServerPort)
	assert.Equal(t, time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, "20-M", cfg.AuthRateLimit)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, []byte("s3cret"), cfg.SigningKey())
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	cfg, err := Load()
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("PORT", "9000")
	t.Setenv("ACCESS_TOKEN_TTL", "5m")
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")
	t.Setenv("AUTH_RATE_LIMIT", "5-S")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.ServerPort)
	assert.Equal(t, 5*time.Minute, cfg.AccessTokenTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, "5-S", cfg.AuthRateLimit)
}

func TestLoad_RejectsNonPositiveTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("ACCESS_TOKEN_TTL", "0s")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_RefreshRateLimit(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "300-M", cfg.RefreshRateLimit)

	t.Setenv("REFRESH_RATE_LIMIT", "50-M")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, "50-M", cfg.RefreshRateLimit)
}

func TestLoadCommon_NoSecretNeeded(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	t.Setenv("MYSQL_DSN", "seed:pw@tcp(db:3306)/ideas")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := LoadCommon()
	require.NoError(t, err)
	assert.Equal(t, "seed:pw@tcp(db:3306)/ideas", cfg.MySQLDSN)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.False(t, cfg.IsProduction())
}
