package posts

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"

	"github.com/dmitrijs2005/inkwell/internal/common"
	"github.com/dmitrijs2005/inkwell/internal/dbx"
	"github.com/dmitrijs2005/inkwell/internal/server/models"
)

// pgInvalidTextRepresentation covers malformed uuid literals in lookups.
// A garbage id is indistinguishable from an absent post to the caller.
const pgInvalidTextRepresentation = "22P02"

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// Tags live in a text[] column; crossing database/sql they travel as a
// comma-joined string via string_to_array/array_to_string.

func joinTags(tags []string) string {
	return strings.Join(tags, ",")
}

func splitTags(s string) []string {
	if s == "" {
		return []string{}
	}
	return strings.Split(s, ",")
}

func (r *PostgresRepository) Create(ctx context.Context, post *models.Post) (*models.Post, error) {

	query :=
		`INSERT INTO posts (id, title, content, category, tags, image_url, author_id)
         VALUES ($1, $2, $3, $4, COALESCE(string_to_array(NULLIF($5, ''), ','), '{}'), $6, $7)
		 RETURNING created_at, updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Category, joinTags(post.Tags), post.ImageURL, post.AuthorID).
		Scan(&post.CreatedAt, &post.UpdatedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) List(ctx context.Context) ([]*models.Post, error) {
	query :=
		`SELECT p.id, p.title, p.content, p.category, array_to_string(p.tags, ','), p.image_url,
		        p.author_id, u.username, p.created_at, p.updated_at
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 ORDER BY p.created_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	result := []*models.Post{}
	for rows.Next() {
		post, err := scanPost(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		result = append(result, post)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.Post, error) {
	query :=
		`SELECT p.id, p.title, p.content, p.category, array_to_string(p.tags, ','), p.image_url,
		        p.author_id, u.username, p.created_at, p.updated_at
		 FROM posts p
		 JOIN users u ON u.id = p.author_id
		 WHERE p.id = $1
		 `

	post, err := scanPost(r.db.QueryRowContext(ctx, query, id).Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgInvalidTextRepresentation {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Update(ctx context.Context, post *models.Post) (*models.Post, error) {
	query :=
		`UPDATE posts
		 SET title = $2, content = $3, category = $4,
		     tags = COALESCE(string_to_array(NULLIF($5, ''), ','), '{}'),
		     image_url = $6, updated_at = now()
		 WHERE id = $1
		 RETURNING updated_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		post.ID, post.Title, post.Content, post.Category, joinTags(post.Tags), post.ImageURL).
		Scan(&post.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return post, nil
}

func (r *PostgresRepository) Delete(ctx context.Context, id string) error {
	query := `DELETE FROM posts WHERE id = $1`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if affected == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func scanPost(scan func(dest ...any) error) (*models.Post, error) {
	post := &models.Post{}
	var tags string

	err := scan(&post.ID, &post.Title, &post.Content, &post.Category, &tags, &post.ImageURL,
		&post.AuthorID, &post.AuthorName, &post.CreatedAt, &post.UpdatedAt)
	if err != nil {
		return nil, err
	}

	post.Tags = splitTags(tags)
	return post, nil
}
