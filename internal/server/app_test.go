package server

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/config"
	"github.com/R3gret/ITPM-Backend/internal/server/ratelimit"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/memory"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/repomanager"
	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	c := &config.Config{}
	c.LoadDefaults()
	c.SecretKey = "test-secret"
	c.EndpointAddrHTTP = "127.0.0.1:0"
	c.HashWorkers = 1
	return c
}

// stubStorage replaces the database seams with sqlmock and the in-memory
// repositories.
func stubStorage(t *testing.T, openErr error) sqlmock.Sqlmock {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	origOpen, origRM := openDB, newRepoManager
	openDB = func(context.Context, string) (*sql.DB, error) {
		if openErr != nil {
			return nil, openErr
		}
		return db, nil
	}
	newRepoManager = func() repomanager.RepositoryManager { return memory.NewRepositoryManager() }
	t.Cleanup(func() {
		openDB, newRepoManager = origOpen, origRM
		_ = db.Close()
	})
	return mock
}

func TestNewApp_MissingSecretIsFatal(t *testing.T) {
	opened := false
	orig := openDB
	openDB = func(context.Context, string) (*sql.DB, error) {
		opened = true
		return nil, errors.New("should not be called")
	}
	defer func() { openDB = orig }()

	c := testConfig()
	c.SecretKey = ""

	_, err := NewApp(context.Background(), c, logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "secret key")
	assert.False(t, opened)
}

func TestNewApp_DBError(t *testing.T) {
	stubStorage(t, errors.New("refused"))

	_, err := NewApp(context.Background(), testConfig(), logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db init error")
}

func TestNewApp_MemoryLimiters(t *testing.T) {
	stubStorage(t, nil)

	app, err := NewApp(context.Background(), testConfig(), logging.Nop{})
	require.NoError(t, err)
	defer app.close()

	require.Len(t, app.cleanup, 2)
	assert.IsType(t, &ratelimit.MemoryLimiter{}, app.limits.General)
	general, err := app.limits.General.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 100, general.Limit)
	authDecision, err := app.limits.Auth.Allow(context.Background(), "k")
	require.NoError(t, err)
	assert.Equal(t, 5, authDecision.Limit)
	assert.Nil(t, app.redis)
}

func TestNewApp_RedisLimiters(t *testing.T) {
	stubStorage(t, nil)
	mr := miniredis.RunT(t)

	c := testConfig()
	c.RedisAddr = mr.Addr()

	app, err := NewApp(context.Background(), c, logging.Nop{})
	require.NoError(t, err)
	defer app.close()

	assert.IsType(t, &ratelimit.RedisLimiter{}, app.limits.Auth)
	assert.Empty(t, app.cleanup)

	d, err := app.limits.Auth.Allow(context.Background(), "198.51.100.1")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.True(t, mr.Exists("ratelimit:auth:198.51.100.1"))
}

func TestNewApp_RedisUnavailable(t *testing.T) {
	stubStorage(t, nil)
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	mr.Close()

	c := testConfig()
	c.RedisAddr = addr

	_, err := NewApp(context.Background(), c, logging.Nop{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "redis init error")
}

func TestApp_RunStopsOnCancel(t *testing.T) {
	mock := stubStorage(t, nil)
	mock.ExpectClose()

	app, err := NewApp(context.Background(), testConfig(), logging.Nop{})
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
		t.Fatal("Run did not return after cancel")
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}
