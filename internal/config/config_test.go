package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfig_RequiresDSN(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.ErrorIs(t, err, ErrDSNRequired)
	assert.Nil(t, cfg)
}

func TestLoadServerConfig_Defaults(t *testing.T) {
	t.Setenv("BUCKETLIST_DB_DSN", "postgres://localhost:5432/bucketlist")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.HTTP.Port)
	assert.Equal(t, 10*time.Second, cfg.HTTP.ReadTimeout)
	assert.Equal(t, 15*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, 5*time.Second, cfg.Auth.OperationTimeout)
	assert.Equal(t, "bucketlist", cfg.Observability.ServiceName)

	// Pool settings have no envDefault: zero means infrastructure defaults.
	assert.Zero(t, cfg.Database.MaxOpenConns)
}

func TestLoadServerConfig_EnvOverrides(t *testing.T) {
	t.Setenv("BUCKETLIST_DB_DSN", "postgres://localhost:5432/bucketlist")
	t.Setenv("BUCKETLIST_HTTP_HOST", "127.0.0.1")
	t.Setenv("BUCKETLIST_HTTP_PORT", "9090")
	t.Setenv("BUCKETLIST_DB_CONN_MAX_LIFETIME", "2m")
	t.Setenv("BUCKETLIST_AUTH_OPERATION_TIMEOUT", "0")
	t.Setenv("BUCKETLIST_OTEL_ENABLED", "true")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.HTTP.Addr())
	assert.Equal(t, 2*time.Minute, cfg.Database.ConnMaxLifetime)
	assert.Zero(t, cfg.Auth.OperationTimeout)
	assert.True(t, cfg.Observability.OTelEnabled)
}

func TestLoadServerConfig_InvalidDuration(t *testing.T) {
	t.Setenv("BUCKETLIST_DB_DSN", "postgres://localhost:5432/bucketlist")
	t.Setenv("BUCKETLIST_HTTP_READ_TIMEOUT", "soon")

	cfg, err := LoadServerConfig()
	require.Error(t, err)
	assert.Nil(t, cfg)
}
