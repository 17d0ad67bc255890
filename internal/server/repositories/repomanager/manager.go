// Package repomanager vends repository implementations for a storage backend
// and runs its schema migrations.
package repomanager

import (
	"context"

	"github.com/formifyx/backend/internal/dbx"
	"github.com/formifyx/backend/internal/server/repositories/profiles"
	"github.com/formifyx/backend/internal/server/repositories/users"
)

type RepositoryManager interface {
	RunMigrations(ctx context.Context) error
	Users(db dbx.DBTX) users.Repository
	Profiles(db dbx.DBTX) profiles.Repository
	// DB is the handle repositories should be bound to; nil for backends
	// that do not use SQL.
	DB() dbx.DBTX
	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
	Close() error
}
