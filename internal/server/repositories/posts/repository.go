package posts

import (
	"context"

	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

// Repository stores blog posts. Reads populate AuthorName from the users
// table; writes never touch it.
type Repository interface {
	Create(ctx context.Context, post *models.Post) (*models.Post, error)
	List(ctx context.Context) ([]*models.Post, error)
	GetByID(ctx context.Context, id string) (*models.Post, error)
	Update(ctx context.Context, post *models.Post) (*models.Post, error)
	Delete(ctx context.Context, id string) error
}
