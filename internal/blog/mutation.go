package blog

import (
	"context"
	"fmt"
	"log/slog"

	"inkwell/internal/models"
)

// CreatePost stores a new draft post.
func (s *Service) CreatePost(ctx context.Context, in models.NewPost) (*models.Post, error) {
	p, err := s.posts.Create(ctx, in)
	if err != nil {
		return nil, fmt.Errorf("create post: %w", err)
	}
	s.invalidate(ctx)
	slog.Info("post created", "id", p.ID, "slug", p.Slug)
	return p, nil
}

// UpdatePost applies patch to a post. Category assignments are unchanged.
func (s *Service) UpdatePost(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	p, err := s.posts.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update post %d: %w", id, err)
	}
	s.invalidate(ctx)
	slog.Info("post updated", "id", p.ID, "slug", p.Slug, "published", p.PublishedStatus)
	return p, nil
}

// DeletePost removes a post and returns it. Its association rows remain.
func (s *Service) DeletePost(ctx context.Context, id int64) (*models.Post, error) {
	p, err := s.posts.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete post %d: %w", id, err)
	}
	s.invalidate(ctx)
	slog.Info("post deleted", "id", p.ID)
	return p, nil
}

// AssignCategories replaces the full category set of a post.
func (s *Service) AssignCategories(ctx context.Context, postID int64, categoryIDs []int64) error {
	err := s.relations.AssignCategories(ctx, postID, categoryIDs)
	// A failed insert still cleared the old set, so cached reads are stale
	// either way.
	s.invalidate(ctx)
	if err != nil {
		return fmt.Errorf("assign categories to post %d: %w", postID, err)
	}
	slog.Info("post categories assigned", "post_id", postID, "count", len(categoryIDs))
	return nil
}

// CreateCategory stores a new category.
func (s *Service) CreateCategory(ctx context.Context, name string, description *string) (*models.Category, error) {
	c, err := s.categories.Create(ctx, name, description)
	if err != nil {
		return nil, fmt.Errorf("create category: %w", err)
	}
	s.invalidate(ctx)
	slog.Info("category created", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// UpdateCategory applies patch to a category.
func (s *Service) UpdateCategory(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	c, err := s.categories.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update category %d: %w", id, err)
	}
	s.invalidate(ctx)
	slog.Info("category updated", "id", c.ID, "slug", c.Slug)
	return c, nil
}

// DeleteCategory removes a category and returns it. Association rows that
// reference it remain and are ignored by reads.
func (s *Service) DeleteCategory(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.categories.Delete(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("delete category %d: %w", id, err)
	}
	s.invalidate(ctx)
	slog.Info("category deleted", "id", c.ID)
	return c, nil
}
