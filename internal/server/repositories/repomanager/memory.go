package repomanager

import (
	"context"

	"github.com/formifyx/backend/internal/dbx"
	"github.com/formifyx/backend/internal/server/repositories/profiles"
	"github.com/formifyx/backend/internal/server/repositories/users"
)

// MemoryRepositoryManager serves process-local repositories. The db argument
// of the factories is ignored; every call returns the same store.
type MemoryRepositoryManager struct {
	users    *users.MemoryRepository
	profiles *profiles.MemoryRepository
}

func NewMemoryRepositoryManager() *MemoryRepositoryManager {
	u := users.NewMemoryRepository()
	ownerExists := func(ctx context.Context, userID string) error {
		_, err := u.GetUserByID(ctx, userID)
		return err
	}
	return &MemoryRepositoryManager{
		users:    u,
		profiles: profiles.NewMemoryRepository(profiles.WithOwnerCheck(ownerExists)),
	}
}

func (m *MemoryRepositoryManager) RunMigrations(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Users(dbx.DBTX) users.Repository { return m.users }

func (m *MemoryRepositoryManager) Profiles(dbx.DBTX) profiles.Repository { return m.profiles }

func (m *MemoryRepositoryManager) DB() dbx.DBTX { return nil }

func (m *MemoryRepositoryManager) Ping(context.Context) error { return nil }

func (m *MemoryRepositoryManager) Close() error { return nil }
