package server

import (
	"context"
	"testing"
	"time"

	"github.com/formifyx/backend/internal/server/config"
	"github.com/formifyx/backend/internal/server/mail"
	"github.com/formifyx/backend/internal/server/repositories/repomanager"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func memoryConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.DatabaseDSN = "memory"
	c.SecretKey = "test-secret"
	c.GinMode = "test"
	c.LogLevel = "error"
	c.ShutdownTimeout = time.Second
	return c
}

func TestNewApp_Memory(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	assert.IsType(t, &repomanager.MemoryRepositoryManager{}, app.repomanager)
	assert.NotNil(t, app.httpServer)
}

func TestNewApp_BadDatabase(t *testing.T) {
	c := memoryConfig()
	c.DatabaseDSN = "postgres://nobody@127.0.0.1:1/none?connect_timeout=1"

	_, err := NewApp(context.Background(), c)
	assert.Error(t, err)
}

func TestNewSender(t *testing.T) {
	c := memoryConfig()
	app, err := NewApp(context.Background(), c)
	require.NoError(t, err)

	s, err := newSender(context.Background(), c, app.logger)
	require.NoError(t, err)
	assert.IsType(t, &mail.LogSender{}, s)

	c.SMTPUser = "news@formifyx.nl"
	c.SMTPPassword = "app-password"
	s, err = newSender(context.Background(), c, app.logger)
	require.NoError(t, err)
	assert.IsType(t, &mail.SMTPSender{}, s)
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	app, err := NewApp(context.Background(), memoryConfig())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- app.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("app did not stop")
	}
}
