package profiles

import (
	"context"
	"sync"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/server/models"
)

// MemoryRepository keeps profile documents in process memory.
type MemoryRepository struct {
	mu    sync.Mutex
	docs  map[string]*models.Profile
	owner func(ctx context.Context, userID string) error
}

type MemoryOption func(*MemoryRepository)

// WithOwnerCheck makes Upsert fail with the error returned by check, the way
// the profiles foreign key rejects documents for unknown users.
func WithOwnerCheck(check func(ctx context.Context, userID string) error) MemoryOption {
	return func(r *MemoryRepository) { r.owner = check }
}

func NewMemoryRepository(opts ...MemoryOption) *MemoryRepository {
	r := &MemoryRepository{docs: make(map[string]*models.Profile)}
	for _, o := range opts {
		o(r)
	}
	return r
}

func (r *MemoryRepository) Get(ctx context.Context, userID string) (*models.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.docs[userID]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return models.OverlayProfile(p, nil)
}

func (r *MemoryRepository) Upsert(ctx context.Context, userID string, patch *models.ProfilePatch) (*models.Profile, error) {
	if r.owner != nil {
		if err := r.owner(ctx, userID); err != nil {
			return nil, err
		}
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	merged, err := models.OverlayProfile(r.docs[userID], patch)
	if err != nil {
		return nil, err
	}
	r.docs[userID] = merged

	return models.OverlayProfile(merged, nil)
}
