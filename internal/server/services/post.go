package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
	"github.com/dmitrijs2005/inkwell/internal/server/repositories/repomanager"
)

// PostInput carries the author-editable fields of a post.
type PostInput struct {
	Title    string
	Content  string
	Category string
	Tags     []string
	ImageURL string
}

// PostService implements blog post CRUD. Mutations of an existing post run
// inside a transaction so the ownership check and the write see the same row.
type PostService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager) *PostService {
	return &PostService{db: db, repomanager: m}
}

// Create stores a new post authored by the verified subject.
func (s *PostService) Create(ctx context.Context, authorID string, input PostInput) (*models.Post, error) {
	post := &models.Post{
		ID:       uuid.NewString(),
		Title:    input.Title,
		Content:  input.Content,
		Category: input.Category,
		Tags:     input.Tags,
		ImageURL: input.ImageURL,
		AuthorID: authorID,
	}
	if post.Tags == nil {
		post.Tags = []string{}
	}

	repo := s.repomanager.Posts(s.db)
	p, err := repo.Create(ctx, post)
	if err != nil {
		return nil, fmt.Errorf("error creating post: %w", err)
	}
	return p, nil
}

// List returns all posts, newest first, with author names populated.
func (s *PostService) List(ctx context.Context) ([]*models.Post, error) {
	repo := s.repomanager.Posts(s.db)
	result, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing posts: %w", err)
	}
	return result, nil
}

// Get returns a single post by id, or common.ErrorNotFound.
func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)
	post, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("error loading post: %w", err)
	}
	return post, nil
}

// Update applies a partial patch to the post identified by postID, provided
// the verified subject is its author. Unset patch fields keep their stored
// values; updatedAt is refreshed by the store.
func (s *PostService) Update(ctx context.Context, subjectID, postID string, patch models.PostPatch) (*models.Post, error) {
	var updated *models.Post

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByID(ctx, postID)
		if err != nil {
			return err
		}

		if err := AuthorizeOwner(subjectID, post.AuthorID); err != nil {
			return err
		}

		if patch.Title != nil {
			post.Title = *patch.Title
		}
		if patch.Content != nil {
			post.Content = *patch.Content
		}
		if patch.Category != nil {
			post.Category = *patch.Category
		}
		if patch.Tags != nil {
			post.Tags = patch.Tags
		}
		if patch.ImageURL != nil {
			post.ImageURL = *patch.ImageURL
		}

		updated, err = repo.Update(ctx, post)
		return err
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			return nil, err
		}
		return nil, fmt.Errorf("error updating post: %w", err)
	}

	return updated, nil
}

// Delete removes the post identified by postID, provided the verified subject
// is its author.
func (s *PostService) Delete(ctx context.Context, subjectID, postID string) error {
	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Posts(tx)

		post, err := repo.GetByID(ctx, postID)
		if err != nil {
			return err
		}

		if err := AuthorizeOwner(subjectID, post.AuthorID); err != nil {
			return err
		}

		return repo.Delete(ctx, postID)
	})

	if err != nil {
		if errors.Is(err, common.ErrorNotFound) || errors.Is(err, common.ErrorForbidden) {
			return err
		}
		return fmt.Errorf("error deleting post: %w", err)
	}

	return nil
}
