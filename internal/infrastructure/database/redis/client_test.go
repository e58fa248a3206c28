package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

func TestNewClientStandalone(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(&RedisConfig{Mode: "standalone", Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)
	defer client.Close()

	assert.NoError(t, client.Ping(context.Background()))
}

func TestNewClientConnectionFailure(t *testing.T) {
	_, err := NewClient(&RedisConfig{Mode: "standalone", Addr: "127.0.0.1:1"}, logging.NewNopLogger())
	assert.Equal(t, ErrConnectionFailed, err)
}

func TestClientCommandsAfterClose(t *testing.T) {
	mr, err := miniredis.Run()
	require.NoError(t, err)
	defer mr.Close()

	client, err := NewClient(&RedisConfig{Mode: "standalone", Addr: mr.Addr()}, logging.NewNopLogger())
	require.NoError(t, err)

	require.NoError(t, client.Close())
	// Close is idempotent.
	require.NoError(t, client.Close())

	ctx := context.Background()
	assert.Equal(t, ErrClientClosed, client.Ping(ctx))
	assert.Equal(t, ErrClientClosed, client.Get(ctx, "k").Err())
	assert.Equal(t, ErrClientClosed, client.Set(ctx, "k", "v", time.Minute).Err())
	assert.Equal(t, ErrClientClosed, client.SetNX(ctx, "k", "v", time.Minute).Err())
}

func TestApplyDefaults(t *testing.T) {
	cfg := &RedisConfig{}
	applyDefaults(cfg)

	assert.Greater(t, cfg.PoolSize, 0)
	assert.Equal(t, 5, cfg.MinIdleConns)
	assert.Equal(t, 5*time.Second, cfg.DialTimeout)
	assert.Equal(t, 3, cfg.MaxRetries)
}

func TestBuildTLSConfigDisabled(t *testing.T) {
	tlsConfig, err := buildTLSConfig(&RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, tlsConfig)
}

//Personal.AI order the ending
