// Package memory keeps users, resorts and location pings in process memory.
// It implements the same repository contracts as the PostgreSQL package,
// including unique username and email, and serves tests and local runs
// without a database.
package memory

import (
	"context"
	"database/sql"
	"sync"
	"time"

	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/server/models"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/locations"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/resorts"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/users"
)

type store struct {
	mu  sync.RWMutex
	now func() time.Time

	users    []*models.User
	resorts  map[int64]*models.Resort
	pings    []*models.LocationPing
	nextUser int64
	nextRes  int64
	nextPing int64
}

// RepositoryManager is an in-memory repomanager.RepositoryManager. The db
// arguments of its methods are ignored.
type RepositoryManager struct {
	txMu  sync.Mutex
	store *store
}

func NewRepositoryManager() *RepositoryManager {
	return &RepositoryManager{store: &store{
		now:     time.Now,
		resorts: make(map[int64]*models.Resort),
	}}
}

func (m *RepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

// WithTx serializes fn against every other WithTx call.
func (m *RepositoryManager) WithTx(ctx context.Context, _ *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error {
	m.txMu.Lock()
	defer m.txMu.Unlock()
	return fn(ctx, nil)
}

func (m *RepositoryManager) Users(dbx.DBTX) users.Repository {
	return &userRepository{store: m.store}
}

func (m *RepositoryManager) Resorts(dbx.DBTX) resorts.Repository {
	return &resortRepository{store: m.store}
}

func (m *RepositoryManager) Locations(dbx.DBTX) locations.Repository {
	return &locationRepository{store: m.store}
}

// UserCount returns how many users are stored.
func (m *RepositoryManager) UserCount() int {
	m.store.mu.RLock()
	defer m.store.mu.RUnlock()
	return len(m.store.users)
}
