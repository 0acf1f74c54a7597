// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package blog composes the post, category and association stores into the
// read shapes served to the public site and the admin API, and owns the
// write paths so that every mutation clears the public query cache.
package blog

import (
	"context"

	"inkwell/internal/models"
)

// PostStore is the persistence contract for posts.
type PostStore interface {
	List(ctx context.Context, filter models.PostFilter) ([]models.Post, error)
	ListByIDs(ctx context.Context, ids []int64, publishedOnly bool) ([]models.Post, error)
	FindByID(ctx context.Context, id int64) (*models.Post, error)
	FindBySlug(ctx context.Context, slug string, publishedOnly bool) (*models.Post, error)
	Create(ctx context.Context, in models.NewPost) (*models.Post, error)
	Update(ctx context.Context, id int64, patch models.PostPatch) (*models.Post, error)
	Delete(ctx context.Context, id int64) (*models.Post, error)
}

// CategoryStore is the persistence contract for categories.
type CategoryStore interface {
	List(ctx context.Context) ([]models.Category, error)
	FindByID(ctx context.Context, id int64) (*models.Category, error)
	FindBySlug(ctx context.Context, slug string) (*models.Category, error)
	Create(ctx context.Context, name string, description *string) (*models.Category, error)
	Update(ctx context.Context, id int64, patch models.CategoryPatch) (*models.Category, error)
	Delete(ctx context.Context, id int64) (*models.Category, error)
}

// Relations maintains the post/category association.
type Relations interface {
	AssignCategories(ctx context.Context, postID int64, categoryIDs []int64) error
	ListForPosts(ctx context.Context, postIDs []int64) ([]models.PostCategory, error)
	PostIDsForCategory(ctx context.Context, categoryID int64) ([]int64, error)
}

// QueryCache stores JSON-encodable read results under a generation that
// InvalidateAll advances. Implementations swallow their own failures; a
// failed read is a miss. Generation reports false when the current
// generation cannot be determined, and callers must then skip the cache.
type QueryCache interface {
	Generation(ctx context.Context) (int64, bool)
	GetJSON(ctx context.Context, gen int64, key string, dst any) bool
	SetJSON(ctx context.Context, gen int64, key string, v any)
	InvalidateAll(ctx context.Context)
}

// Cache keys for public reads.
const (
	keyPostsAll      = "posts:all"
	keyPostsCategory = "posts:category:"
	keyPostBySlug    = "posts:slug:"
	keyCategoriesAll = "categories:all"
)

// Service is the entry point for every blog read and write.
type Service struct {
	posts      PostStore
	categories CategoryStore
	relations  Relations
	cache      QueryCache
}

// NewService creates a Service. cache may be nil to disable caching.
func NewService(posts PostStore, categories CategoryStore, relations Relations, cache QueryCache) *Service {
	return &Service{
		posts:      posts,
		categories: categories,
		relations:  relations,
		cache:      cache,
	}
}

// cached serves key from the cache when possible, otherwise calls load and
// stores its result. Errors are never cached. The generation is read before
// load so a result loaded across an invalidation is stored under the old
// generation, where no later read looks.
func cached[T any](ctx context.Context, s *Service, key string, load func() (T, error)) (T, error) {
	if s.cache == nil {
		return load()
	}
	gen, ok := s.cache.Generation(ctx)
	if !ok {
		return load()
	}
	var hit T
	if s.cache.GetJSON(ctx, gen, key, &hit) {
		return hit, nil
	}
	v, err := load()
	if err != nil {
		return v, err
	}
	s.cache.SetJSON(ctx, gen, key, v)
	return v, nil
}

func (s *Service) invalidate(ctx context.Context) {
	if s.cache != nil {
		s.cache.InvalidateAll(ctx)
	}
}
