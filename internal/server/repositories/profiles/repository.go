package profiles

import (
	"context"

	"github.com/formifyx/backend/internal/server/models"
)

// Repository stores one profile document per user.
type Repository interface {
	// Get returns common.ErrorNotFound when the user has no profile yet.
	Get(ctx context.Context, userID string) (*models.Profile, error)

	// Upsert creates the document or overlays patch onto it with
	// top-level replace semantics (see models.OverlayProfile) and returns
	// the stored result. Fields present in patch with an empty or null
	// value overwrite the stored ones.
	Upsert(ctx context.Context, userID string, patch *models.ProfilePatch) (*models.Profile, error)
}
