package services

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/logging"
	"github.com/R3gret/ITPM-Backend/internal/server/auth"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/locations"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/memory"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/resorts"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/users"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("boom")

// fakeHasher stands in for bcrypt; it counts calls so tests can check that
// both login failure paths do the same work.
type fakeHasher struct {
	mu       sync.Mutex
	hashes   int
	verifies int
	hashErr  error
}

func (h *fakeHasher) Hash(_ context.Context, password string) (string, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hashes++
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + password, nil
}

func (h *fakeHasher) Verify(_ context.Context, password, hash string) (bool, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.verifies++
	if !strings.HasPrefix(hash, "hashed:") {
		return false, errors.New("corrupt hash")
	}
	return hash == "hashed:"+password, nil
}

func (h *fakeHasher) counts() (int, int) {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.hashes, h.verifies
}

func newCodec(t *testing.T) *auth.TokenCodec {
	t.Helper()
	c, err := auth.NewTokenCodec("test-secret", time.Hour)
	require.NoError(t, err)
	return c
}

func newTestUserService(t *testing.T) (*UserService, *memory.RepositoryManager, *fakeHasher) {
	t.Helper()
	m := memory.NewRepositoryManager()
	h := &fakeHasher{}
	return NewUserService(nil, m, h, newCodec(t), logging.Nop{}), m, h
}

// brokenManager returns repositories that fail every call.
type brokenManager struct {
	*memory.RepositoryManager
}

func (brokenManager) Users(dbx.DBTX) users.Repository         { return brokenUsers{} }
func (brokenManager) Resorts(dbx.DBTX) resorts.Repository     { return brokenResorts{} }
func (brokenManager) Locations(dbx.DBTX) locations.Repository { return brokenLocations{} }

func newBrokenManager() brokenManager {
	return brokenManager{memory.NewRepositoryManager()}
}
