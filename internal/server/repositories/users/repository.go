package users

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

// Repository is the credential store. Create must fail with
// common.ErrorConflict when the username or email is already taken; the
// unique indexes on the users table are the authority for that invariant.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
}
