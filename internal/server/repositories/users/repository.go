package users

import (
	"context"

	"github.com/formifyx/backend/internal/server/models"
)

// Repository is the credential store. Lookups return common.ErrorNotFound
// for missing accounts; Create returns common.ErrorAlreadyExists when the
// email is taken.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
}
