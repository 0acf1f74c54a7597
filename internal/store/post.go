// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"

	"inkwell/internal/models"
	"inkwell/internal/slug"
)

// PostStore handles all post-related database operations. It knows nothing
// about categories; associations live in PostCategoryStore.
type PostStore struct {
	db *sql.DB
}

// NewPostStore creates a new PostStore with the given database connection.
func NewPostStore(db *sql.DB) *PostStore {
	return &PostStore{db: db}
}

const postColumns = `id, title, content, slug, published_status, image_url, created_at, updated_at`

// postOrder lists newest posts first; id breaks ties within the same instant.
const postOrder = ` ORDER BY created_at DESC, id DESC`

// scanPost scans a row into a Post struct.
func scanPost(scanner rowScanner) (*models.Post, error) {
	var p models.Post
	err := scanner.Scan(
		&p.ID, &p.Title, &p.Content, &p.Slug, &p.PublishedStatus,
		&p.ImageURL, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// queryPosts runs a SELECT returning post rows and collects them.
func (s *PostStore) queryPosts(ctx context.Context, op, query string, args ...any) ([]models.Post, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, classify(op, err)
	}
	defer rows.Close()

	items := []models.Post{}
	for rows.Next() {
		p, err := scanPost(rows)
		if err != nil {
			return nil, classify("scan post", err)
		}
		items = append(items, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, classify(op, err)
	}
	return items, nil
}

// List returns posts newest first. With PublishedOnly set, drafts are excluded.
func (s *PostStore) List(ctx context.Context, filter models.PostFilter) ([]models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts`
	if filter.PublishedOnly {
		query += ` WHERE published_status = TRUE`
	}
	return s.queryPosts(ctx, "list posts", query+postOrder)
}

// ListByIDs returns the posts with the given IDs, newest first. Unknown IDs
// are ignored.
func (s *PostStore) ListByIDs(ctx context.Context, ids []int64, publishedOnly bool) ([]models.Post, error) {
	if len(ids) == 0 {
		return []models.Post{}, nil
	}
	query := `SELECT ` + postColumns + ` FROM posts WHERE id = ANY($1)`
	if publishedOnly {
		query += ` AND published_status = TRUE`
	}
	return s.queryPosts(ctx, "list posts by ids", query+postOrder, ids)
}

// FindByID retrieves a post by ID regardless of its status.
func (s *PostStore) FindByID(ctx context.Context, id int64) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1`, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, classify("find post by id", err)
	}
	return p, nil
}

// FindBySlug retrieves a post by slug. With publishedOnly set, a draft is
// reported as ErrNotFound.
func (s *PostStore) FindBySlug(ctx context.Context, postSlug string, publishedOnly bool) (*models.Post, error) {
	query := `SELECT ` + postColumns + ` FROM posts WHERE slug = $1`
	if publishedOnly {
		query += ` AND published_status = TRUE`
	}
	p, err := scanPost(s.db.QueryRowContext(ctx, query, postSlug))
	if err != nil {
		return nil, classify("find post by slug", err)
	}
	return p, nil
}

// Create inserts a new draft post with a slug derived from its title.
// A duplicate slug fails with ErrConflict.
func (s *PostStore) Create(ctx context.Context, in models.NewPost) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `
		INSERT INTO posts (title, content, slug, published_status, image_url)
		VALUES ($1, $2, $3, FALSE, $4)
		RETURNING `+postColumns,
		in.Title, in.Content, slug.Generate(in.Title), in.ImageURL,
	)
	p, err := scanPost(row)
	if err != nil {
		return nil, classify("create post", err)
	}
	return p, nil
}

// Update merges patch into the stored post, refreshes updated_at, and
// returns the result. Category assignments are not touched.
func (s *PostStore) Update(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, classify("begin post update", err)
	}
	defer tx.Rollback()

	row := tx.QueryRowContext(ctx, `SELECT `+postColumns+` FROM posts WHERE id = $1 FOR UPDATE`, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, classify("load post for update", err)
	}

	patch.Apply(p)

	row = tx.QueryRowContext(ctx, `
		UPDATE posts SET
			title = $1, content = $2, slug = $3, published_status = $4,
			image_url = $5, updated_at = NOW()
		WHERE id = $6
		RETURNING `+postColumns,
		p.Title, p.Content, p.Slug, p.PublishedStatus, p.ImageURL, p.ID,
	)
	updated, err := scanPost(row)
	if err != nil {
		return nil, classify("update post", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, classify("commit post update", err)
	}
	return updated, nil
}

// Delete removes a post and returns the removed row. Association rows for
// the post are left in place.
func (s *PostStore) Delete(ctx context.Context, id int64) (*models.Post, error) {
	row := s.db.QueryRowContext(ctx, `DELETE FROM posts WHERE id = $1 RETURNING `+postColumns, id)
	p, err := scanPost(row)
	if err != nil {
		return nil, classify("delete post", err)
	}
	return p, nil
}
