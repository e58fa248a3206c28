package http

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MP-oliveira/jurisacompanha-backend/internal/config"
	"github.com/MP-oliveira/jurisacompanha-backend/internal/infrastructure/monitoring/logging"
)

func newTestServerConfig() config.ServerConfig {
	return config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     5 * time.Second,
		WriteTimeout:    5 * time.Second,
		MaxBodySize:     1 << 20,
		ShutdownTimeout: time.Second,
	}
}

func TestNewServer(t *testing.T) {
	mux := http.NewServeMux()
	server := NewServer(newTestServerConfig(), mux, logging.NewNopLogger())

	require.NotNil(t, server)
	assert.Equal(t, "127.0.0.1:0", server.srv.Addr)
	assert.Equal(t, 5*time.Second, server.srv.ReadTimeout)
	assert.NotNil(t, server.Handler())
}

func TestServer_StopWithoutStart(t *testing.T) {
	server := NewServer(newTestServerConfig(), http.NewServeMux(), logging.NewNopLogger())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()

	assert.NoError(t, server.Stop(ctx))
}

func TestServer_StartAndStop(t *testing.T) {
	server := NewServer(newTestServerConfig(), http.NewServeMux(), logging.NewNopLogger())

	done := make(chan error, 1)
	go func() {
		done <- server.Start()
	}()

	// Give the listener a moment to bind.
	time.Sleep(50 * time.Millisecond)

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	require.NoError(t, server.Stop(ctx))

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("server did not stop")
	}
}

//Personal.AI order the ending
