package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET_KEY", "secret")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/league")
	t.Setenv("JWT_SECRET_KEY", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/league")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("TOKEN_TTL", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.ServerPort)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.False(t, cfg.R2Configured())
}

func TestLoadCustomValues(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/league")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "9000")
	t.Setenv("TOKEN_TTL", "2h")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.ServerPort)
	assert.Equal(t, 2*time.Hour, cfg.TokenTTL)
}

func TestLoadRejectsInvalidPort(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/league")
	t.Setenv("JWT_SECRET_KEY", "secret")

	for _, port := range []string{"abc", "0", "-1", "70000"} {
		t.Setenv("SERVER_PORT", port)
		_, err := Load()
		assert.Error(t, err, "port %q should be rejected", port)
	}
}

func TestR2Configured(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/league")
	t.Setenv("JWT_SECRET_KEY", "secret")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("R2_ACCOUNT_ID", "acc")
	t.Setenv("R2_ACCESS_KEY_ID", "key")
	t.Setenv("R2_SECRET_ACCESS_KEY", "secret")
	t.Setenv("R2_BUCKET_NAME", "bucket")
	t.Setenv("R2_PUBLIC_BASE_URL", "https://cdn.example.com/")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.R2Configured())

	t.Setenv("R2_BUCKET_NAME", "")
	cfg, err = Load()
	require.NoError(t, err)
	assert.False(t, cfg.R2Configured())
}
