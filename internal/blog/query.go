package blog

import (
	"context"
	"fmt"
	"sort"

	"inkwell/internal/models"
)

// PublicAll returns every published post, newest first.
func (s *Service) PublicAll(ctx context.Context) ([]models.PostWithCategories, error) {
	return cached(ctx, s, keyPostsAll, func() ([]models.PostWithCategories, error) {
		posts, err := s.posts.List(ctx, models.PostFilter{PublishedOnly: true})
		if err != nil {
			return nil, fmt.Errorf("list published posts: %w", err)
		}
		return s.withCategories(ctx, posts)
	})
}

// PublicByCategorySlug returns the published posts of the category with the
// given slug, newest first. An unknown slug is ErrNotFound from the store.
func (s *Service) PublicByCategorySlug(ctx context.Context, categorySlug string) ([]models.PostWithCategories, error) {
	return cached(ctx, s, keyPostsCategory+categorySlug, func() ([]models.PostWithCategories, error) {
		cat, err := s.categories.FindBySlug(ctx, categorySlug)
		if err != nil {
			return nil, fmt.Errorf("find category %q: %w", categorySlug, err)
		}
		ids, err := s.relations.PostIDsForCategory(ctx, cat.ID)
		if err != nil {
			return nil, fmt.Errorf("list posts of category %d: %w", cat.ID, err)
		}
		posts, err := s.posts.ListByIDs(ctx, ids, true)
		if err != nil {
			return nil, fmt.Errorf("load posts of category %d: %w", cat.ID, err)
		}
		return s.withCategories(ctx, posts)
	})
}

// PublicBySlug returns a single published post. Drafts are not found.
func (s *Service) PublicBySlug(ctx context.Context, postSlug string) (*models.PostWithCategories, error) {
	return cached(ctx, s, keyPostBySlug+postSlug, func() (*models.PostWithCategories, error) {
		p, err := s.posts.FindBySlug(ctx, postSlug, true)
		if err != nil {
			return nil, fmt.Errorf("find post %q: %w", postSlug, err)
		}
		return s.one(ctx, p)
	})
}

// AdminAll returns every post regardless of status, newest first.
func (s *Service) AdminAll(ctx context.Context) ([]models.PostWithCategories, error) {
	posts, err := s.posts.List(ctx, models.PostFilter{})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.withCategories(ctx, posts)
}

// AdminByID returns a post regardless of status.
func (s *Service) AdminByID(ctx context.Context, id int64) (*models.PostWithCategories, error) {
	p, err := s.posts.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find post %d: %w", id, err)
	}
	return s.one(ctx, p)
}

// Categories returns all categories ordered by name.
func (s *Service) Categories(ctx context.Context) ([]models.Category, error) {
	return cached(ctx, s, keyCategoriesAll, func() ([]models.Category, error) {
		items, err := s.categories.List(ctx)
		if err != nil {
			return nil, fmt.Errorf("list categories: %w", err)
		}
		return items, nil
	})
}

// Category returns a single category.
func (s *Service) Category(ctx context.Context, id int64) (*models.Category, error) {
	c, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find category %d: %w", id, err)
	}
	return c, nil
}

func (s *Service) one(ctx context.Context, p *models.Post) (*models.PostWithCategories, error) {
	items, err := s.withCategories(ctx, []models.Post{*p})
	if err != nil {
		return nil, err
	}
	return &items[0], nil
}

// withCategories attaches to each post its categories, sorted by name.
// Association rows pointing at a deleted category are skipped. Post order
// is preserved.
func (s *Service) withCategories(ctx context.Context, posts []models.Post) ([]models.PostWithCategories, error) {
	out := make([]models.PostWithCategories, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	ids := make([]int64, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}
	links, err := s.relations.ListForPosts(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("list post categories: %w", err)
	}
	all, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}

	byID := make(map[int64]models.Category, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	byPost := make(map[int64][]models.Category, len(posts))
	for _, l := range links {
		c, ok := byID[l.CategoryID]
		if !ok {
			continue
		}
		byPost[l.PostID] = append(byPost[l.PostID], c)
	}

	for _, p := range posts {
		cats := byPost[p.ID]
		if cats == nil {
			cats = []models.Category{}
		}
		sort.Slice(cats, func(i, j int) bool {
			if cats[i].Name != cats[j].Name {
				return cats[i].Name < cats[j].Name
			}
			return cats[i].ID < cats[j].ID
		})
		out = append(out, models.PostWithCategories{Post: p, Categories: cats})
	}
	return out, nil
}
