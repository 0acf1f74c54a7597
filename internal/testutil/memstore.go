// Package testutil provides in-memory implementations of the blog store
// contracts so service and handler tests run without PostgreSQL. They
// mirror the database behavior: unique names and slugs, newest-first
// ordering, and no cascade between posts, categories and associations.
package testutil

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"inkwell/internal/models"
	"inkwell/internal/slug"
	"inkwell/internal/store"
)

// Clock hands out strictly increasing timestamps.
type Clock struct {
	mu  sync.Mutex
	cur time.Time
}

// NewClock returns a clock starting at a fixed instant.
func NewClock() *Clock {
	return &Clock{cur: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
}

// Now advances the clock by one second and returns the new time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cur = c.cur.Add(time.Second)
	return c.cur
}

// Posts is an in-memory PostStore.
type Posts struct {
	mu     sync.Mutex
	clock  *Clock
	nextID int64
	rows   map[int64]models.Post

	// Err, when set, is returned by every call.
	Err error
}

// NewPosts returns an empty post store.
func NewPosts(clock *Clock) *Posts {
	return &Posts{clock: clock, rows: make(map[int64]models.Post)}
}

// Len returns the number of stored posts.
func (s *Posts) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Posts) sorted(keep func(models.Post) bool) []models.Post {
	out := []models.Post{}
	for _, p := range s.rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out
}

func (s *Posts) slugTaken(sl string, except int64) bool {
	for id, p := range s.rows {
		if id != except && p.Slug == sl {
			return true
		}
	}
	return false
}

func (s *Posts) List(_ context.Context, filter models.PostFilter) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	return s.sorted(func(p models.Post) bool { return !filter.PublishedOnly || p.PublishedStatus }), nil
}

func (s *Posts) ListByIDs(_ context.Context, ids []int64, publishedOnly bool) ([]models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	want := make(map[int64]bool, len(ids))
	for _, id := range ids {
		want[id] = true
	}
	return s.sorted(func(p models.Post) bool {
		return want[p.ID] && (!publishedOnly || p.PublishedStatus)
	}), nil
}

func (s *Posts) FindByID(_ context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("find post by id: %w", store.ErrNotFound)
	}
	return &p, nil
}

func (s *Posts) FindBySlug(_ context.Context, sl string, publishedOnly bool) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, p := range s.rows {
		if p.Slug == sl && (!publishedOnly || p.PublishedStatus) {
			return &p, nil
		}
	}
	return nil, fmt.Errorf("find post by slug: %w", store.ErrNotFound)
}

func (s *Posts) Create(_ context.Context, in models.NewPost) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	sl := slug.Generate(in.Title)
	if s.slugTaken(sl, 0) {
		return nil, fmt.Errorf("create post: %w: slug %q exists", store.ErrConflict, sl)
	}
	s.nextID++
	now := s.clock.Now()
	p := models.Post{
		ID:        s.nextID,
		Title:     in.Title,
		Content:   in.Content,
		Slug:      sl,
		ImageURL:  in.ImageURL,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.rows[p.ID] = p
	return &p, nil
}

func (s *Posts) Update(_ context.Context, id int64, patch models.PostPatch) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("load post for update: %w", store.ErrNotFound)
	}
	patch.Apply(&p)
	if s.slugTaken(p.Slug, id) {
		return nil, fmt.Errorf("update post: %w: slug %q exists", store.ErrConflict, p.Slug)
	}
	p.UpdatedAt = s.clock.Now()
	s.rows[id] = p
	return &p, nil
}

func (s *Posts) Delete(_ context.Context, id int64) (*models.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	p, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("delete post: %w", store.ErrNotFound)
	}
	delete(s.rows, id)
	return &p, nil
}

// Categories is an in-memory CategoryStore.
type Categories struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]models.Category

	// Err, when set, is returned by every call.
	Err error
}

// NewCategories returns an empty category store.
func NewCategories() *Categories {
	return &Categories{rows: make(map[int64]models.Category)}
}

// Len returns the number of stored categories.
func (s *Categories) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

func (s *Categories) taken(c models.Category) bool {
	for id, other := range s.rows {
		if id != c.ID && (other.Name == c.Name || other.Slug == c.Slug) {
			return true
		}
	}
	return false
}

func (s *Categories) List(_ context.Context) ([]models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]models.Category, 0, len(s.rows))
	for _, c := range s.rows {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (s *Categories) FindByID(_ context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("find category by id: %w", store.ErrNotFound)
	}
	return &c, nil
}

func (s *Categories) FindBySlug(_ context.Context, sl string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	for _, c := range s.rows {
		if c.Slug == sl {
			return &c, nil
		}
	}
	return nil, fmt.Errorf("find category by slug: %w", store.ErrNotFound)
}

func (s *Categories) Create(_ context.Context, name string, description *string) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c := models.Category{Name: name, Description: description, Slug: slug.Generate(name)}
	if s.taken(c) {
		return nil, fmt.Errorf("create category: %w: %q exists", store.ErrConflict, name)
	}
	s.nextID++
	c.ID = s.nextID
	s.rows[c.ID] = c
	return &c, nil
}

func (s *Categories) Update(_ context.Context, id int64, patch models.CategoryPatch) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("load category for update: %w", store.ErrNotFound)
	}
	patch.Apply(&c)
	if s.taken(c) {
		return nil, fmt.Errorf("update category: %w: %q exists", store.ErrConflict, c.Name)
	}
	s.rows[id] = c
	return &c, nil
}

func (s *Categories) Delete(_ context.Context, id int64) (*models.Category, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	c, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("delete category: %w", store.ErrNotFound)
	}
	delete(s.rows, id)
	return &c, nil
}

// Relations is an in-memory association store. Like the database table it
// does not check that referenced posts or categories exist.
type Relations struct {
	mu   sync.Mutex
	rows map[models.PostCategory]bool

	// InsertErr, when set, fails AssignCategories after the old rows are
	// cleared, reproducing a failure between the two steps.
	InsertErr error
}

// NewRelations returns an empty association store.
func NewRelations() *Relations {
	return &Relations{rows: make(map[models.PostCategory]bool)}
}

func (s *Relations) AssignCategories(_ context.Context, postID int64, categoryIDs []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for l := range s.rows {
		if l.PostID == postID {
			delete(s.rows, l)
		}
	}
	if len(categoryIDs) == 0 {
		return nil
	}
	if s.InsertErr != nil {
		return s.InsertErr
	}
	for _, id := range categoryIDs {
		s.rows[models.PostCategory{PostID: postID, CategoryID: id}] = true
	}
	return nil
}

func (s *Relations) ListForPosts(_ context.Context, postIDs []int64) ([]models.PostCategory, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	want := make(map[int64]bool, len(postIDs))
	for _, id := range postIDs {
		want[id] = true
	}
	out := []models.PostCategory{}
	for l := range s.rows {
		if want[l.PostID] {
			out = append(out, l)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PostID != out[j].PostID {
			return out[i].PostID < out[j].PostID
		}
		return out[i].CategoryID < out[j].CategoryID
	})
	return out, nil
}

func (s *Relations) PostIDsForCategory(_ context.Context, categoryID int64) ([]int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []int64{}
	for l := range s.rows {
		if l.CategoryID == categoryID {
			out = append(out, l.PostID)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out, nil
}

// Len returns the number of association rows.
func (s *Relations) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}
