package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"inkwell/internal/models"
)

func (env *testEnv) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func TestHomepageListsPublishedPosts(t *testing.T) {
	env := newTestEnv(t, nil)
	env.seedCategory(t, "Tech")
	env.seedPost(t, "Visible Post", true)
	env.seedPost(t, "Secret Draft", false)

	rec := env.get(t, "/")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Visible Post") {
		t.Error("published post missing from homepage")
	}
	if strings.Contains(body, "Secret Draft") {
		t.Error("draft leaked onto homepage")
	}
	if !strings.Contains(body, `href="/category/tech"`) {
		t.Error("navigation should link categories")
	}
}

func TestCategoryPage(t *testing.T) {
	env := newTestEnv(t, nil)
	tech := env.seedCategory(t, "Tech")
	env.seedCategory(t, "Travel")
	inTech := env.seedPost(t, "Go Generics", true)
	env.seedPost(t, "Paris Trip", true)

	if err := env.svc.AssignCategories(context.Background(), inTech.ID, []int64{tech.ID}); err != nil {
		t.Fatalf("assign: %v", err)
	}

	rec := env.get(t, "/category/tech")
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Go Generics") || strings.Contains(body, "Paris Trip") {
		t.Errorf("category page shows the wrong posts:\n%s", body)
	}
	if !strings.Contains(body, `class="active"`) {
		t.Error("active category should be highlighted")
	}

	if rec := env.get(t, "/category/unknown"); rec.Code != http.StatusNotFound {
		t.Errorf("unknown category: got %d, want 404", rec.Code)
	}
}

func TestPostPage(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	p, err := env.svc.CreatePost(ctx, models.NewPost{
		Title:   "Markdown Post",
		Content: "Some **bold** words.\n\n<script>alert(1)</script>",
	})
	if err != nil {
		t.Fatalf("CreatePost: %v", err)
	}

	if rec := env.get(t, "/post/"+p.Slug); rec.Code != http.StatusNotFound {
		t.Errorf("draft post page: got %d, want 404", rec.Code)
	}

	if _, err := env.svc.UpdatePost(ctx, p.ID, models.PostPatch{PublishedStatus: boolPtr(true)}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	rec := env.get(t, "/post/"+p.Slug)
	if rec.Code != http.StatusOK {
		t.Fatalf("status: got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "<strong>bold</strong>") {
		t.Error("content should be rendered as Markdown")
	}
	if strings.Contains(body, "<script>alert(1)</script>") {
		t.Error("raw HTML from content must not be rendered")
	}
}

func TestPublicStoreFailureRendersErrorPage(t *testing.T) {
	env := newTestEnv(t, nil)
	env.posts.Err = errors.New("database down")

	rec := env.get(t, "/")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status: got %d, want 500", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "database down") {
		t.Error("internal error leaked into page")
	}
}

func TestUnknownRouteRendersNotFound(t *testing.T) {
	env := newTestEnv(t, nil)
	rec := env.get(t, "/does/not/exist")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status: got %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Not found") {
		t.Error("404 page body missing")
	}
}
