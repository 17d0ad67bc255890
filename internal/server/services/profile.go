package services

import (
	"context"
	"errors"

	"github.com/formifyx/backend/internal/common"
	"github.com/formifyx/backend/internal/logging"
	"github.com/formifyx/backend/internal/server/models"
	"github.com/formifyx/backend/internal/server/repositories/repomanager"
)

// ProfileService reads and writes the profile of an authenticated user.
type ProfileService struct {
	repomanager repomanager.RepositoryManager
	logger      logging.Logger
}

func NewProfileService(m repomanager.RepositoryManager, logger logging.Logger) *ProfileService {
	return &ProfileService{repomanager: m, logger: logger.With("module", "profiles")}
}

// Get returns common.ErrorNotFound when the user never saved a profile.
func (s *ProfileService) Get(ctx context.Context, userID string) (*models.Profile, error) {
	p, err := s.repomanager.Profiles(s.repomanager.DB()).Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "get profile failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return p, nil
}

// Update stores the top-level fields present in patch, including ones set
// to "" or null. The owner is always userID.
func (s *ProfileService) Update(ctx context.Context, userID string, patch *models.ProfilePatch) (*models.Profile, error) {
	if patch == nil {
		patch = &models.ProfilePatch{}
	}
	patch.SetUserID(userID)

	stored, err := s.repomanager.Profiles(s.repomanager.DB()).Upsert(ctx, userID, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "update profile failed", "user_id", userID, "error", err)
		return nil, common.ErrorInternal
	}
	return stored, nil
}
