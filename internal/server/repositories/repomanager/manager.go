package repomanager

import (
	"context"
	"database/sql"

	"github.com/R3gret/ITPM-Backend/internal/dbx"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/locations"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/resorts"
	"github.com/R3gret/ITPM-Backend/internal/server/repositories/users"
)

// RepositoryManager vends repositories bound to either the pool or a
// transaction, so services can choose per call.
type RepositoryManager interface {
	RunMigrations(context.Context, *sql.DB) error
	// WithTx runs fn so that the repositories it builds from tx see one
	// consistent unit of work.
	WithTx(ctx context.Context, db *sql.DB, fn func(ctx context.Context, tx dbx.DBTX) error) error
	Users(db dbx.DBTX) users.Repository
	Resorts(db dbx.DBTX) resorts.Repository
	Locations(db dbx.DBTX) locations.Repository
}
