// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"context"
	"database/sql"
	"strconv"
	"strings"

	"inkwell/internal/models"
)

// PostCategoryStore owns the posts_to_categories join table. It is the only
// code that writes association rows.
type PostCategoryStore struct {
	db *sql.DB
}

// NewPostCategoryStore returns a new PostCategoryStore.
func NewPostCategoryStore(db *sql.DB) *PostCategoryStore {
	return &PostCategoryStore{db: db}
}

// AssignCategories replaces every category of a post with categoryIDs.
// Existing rows are deleted first, then the new set is inserted in one
// statement. The two steps are not wrapped in a transaction: if the insert
// fails the post is left with no categories.
func (s *PostCategoryStore) AssignCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM posts_to_categories WHERE post_id = $1`, postID); err != nil {
		return classify("clear post categories", err)
	}

	ids := uniqueIDs(categoryIDs)
	if len(ids) == 0 {
		return nil
	}

	var b strings.Builder
	b.WriteString(`INSERT INTO posts_to_categories (post_id, category_id) VALUES `)
	args := make([]any, 0, len(ids)+1)
	args = append(args, postID)
	for i, id := range ids {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString("($1, $" + strconv.Itoa(i+2) + ")")
		args = append(args, id)
	}

	if _, err := s.db.ExecContext(ctx, b.String(), args...); err != nil {
		return classify("insert post categories", err)
	}
	return nil
}

// ListForPost returns the association rows of a single post.
func (s *PostCategoryStore) ListForPost(ctx context.Context, postID int64) ([]models.PostCategory, error) {
	return s.ListForPosts(ctx, []int64{postID})
}

// ListForPosts returns the association rows for a batch of posts.
func (s *PostCategoryStore) ListForPosts(ctx context.Context, postIDs []int64) ([]models.PostCategory, error) {
	if len(postIDs) == 0 {
		return []models.PostCategory{}, nil
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id, category_id FROM posts_to_categories
		WHERE post_id = ANY($1)
		ORDER BY post_id, category_id
	`, postIDs)
	if err != nil {
		return nil, classify("list post categories", err)
	}
	defer rows.Close()

	links := []models.PostCategory{}
	for rows.Next() {
		var l models.PostCategory
		if err := rows.Scan(&l.PostID, &l.CategoryID); err != nil {
			return nil, classify("scan post category", err)
		}
		links = append(links, l)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list post categories", err)
	}
	return links, nil
}

// PostIDsForCategory returns the IDs of every post linked to a category.
func (s *PostCategoryStore) PostIDsForCategory(ctx context.Context, categoryID int64) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT post_id FROM posts_to_categories WHERE category_id = $1 ORDER BY post_id
	`, categoryID)
	if err != nil {
		return nil, classify("list category posts", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, classify("scan category post", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, classify("list category posts", err)
	}
	return ids, nil
}

// uniqueIDs drops duplicates while keeping the first occurrence order.
func uniqueIDs(ids []int64) []int64 {
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
