// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Stores are in-memory, so these tests always run.
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/blog"
	"inkwell/internal/cache"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/storage"
	"inkwell/internal/testutil"
)

// testEnv holds all dependencies for handler tests.
type testEnv struct {
	svc        *blog.Service
	posts      *testutil.Posts
	categories *testutil.Categories
	relations  *testutil.Relations
	api        *API
	public     *Public
	admin      *Admin
	router     chi.Router
}

func newTestEnv(t *testing.T, storageClient *storage.Client) *testEnv {
	t.Helper()
	env := &testEnv{
		posts:      testutil.NewPosts(testutil.NewClock()),
		categories: testutil.NewCategories(),
		relations:  testutil.NewRelations(),
	}
	env.svc = blog.NewService(env.posts, env.categories, env.relations, cache.NewMemoryCache(time.Minute))
	env.api = NewAPI(env.svc, storageClient, nil)
	env.public = NewPublic(env.svc, render.New("Inkwell"))
	env.admin = NewAdmin(env.svc, render.New("Inkwell"), storageClient)

	r := chi.NewRouter()
	r.HandleFunc("/api/rpc/{procedure}", env.api.Serve)
	r.Get("/", env.public.Homepage)
	r.Get("/category/{slug}", env.public.Category)
	r.Get("/post/{slug}", env.public.Post)
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(false))
		r.Get("/", env.admin.Index)
		r.Get("/posts", env.admin.PostsList)
		r.Get("/posts/new", env.admin.PostNew)
		r.Post("/posts", env.admin.PostCreate)
		r.Get("/posts/{id}/edit", env.admin.PostEdit)
		r.Post("/posts/{id}", env.admin.PostUpdate)
		r.Post("/posts/{id}/delete", env.admin.PostDelete)
		r.Get("/categories", env.admin.CategoriesList)
		r.Get("/categories/new", env.admin.CategoryNew)
		r.Post("/categories", env.admin.CategoryCreate)
		r.Get("/categories/{id}/edit", env.admin.CategoryEdit)
		r.Post("/categories/{id}", env.admin.CategoryUpdate)
		r.Post("/categories/{id}/delete", env.admin.CategoryDelete)
	})
	r.NotFound(env.public.NotFoundPage)
	env.router = r
	return env
}

// rpcResponse is the decoded response envelope.
type rpcResponse struct {
	Status int             `json:"-"`
	Result json.RawMessage `json:"result"`
	Error  *struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func (env *testEnv) do(t *testing.T, req *http.Request) rpcResponse {
	t.Helper()
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var resp rpcResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
	resp.Status = rec.Code
	return resp
}

// query calls a query procedure with GET and an optional JSON input.
func (env *testEnv) query(t *testing.T, name string, input any) rpcResponse {
	t.Helper()
	target := "/api/rpc/" + name
	if input != nil {
		raw, _ := json.Marshal(input)
		target += "?input=" + url.QueryEscape(string(raw))
	}
	return env.do(t, httptest.NewRequest(http.MethodGet, target, nil))
}

// mutate calls a mutation procedure with POST and a JSON body.
func (env *testEnv) mutate(t *testing.T, name string, input any) rpcResponse {
	t.Helper()
	raw, _ := json.Marshal(input)
	req := httptest.NewRequest(http.MethodPost, "/api/rpc/"+name, strings.NewReader(string(raw)))
	req.Header.Set("Content-Type", "application/json")
	return env.do(t, req)
}

func decode[T any](t *testing.T, resp rpcResponse) T {
	t.Helper()
	if resp.Error != nil {
		t.Fatalf("unexpected error %s: %s", resp.Error.Code, resp.Error.Message)
	}
	var v T
	if err := json.Unmarshal(resp.Result, &v); err != nil {
		t.Fatalf("decode result %s: %v", resp.Result, err)
	}
	return v
}

func expectError(t *testing.T, resp rpcResponse, status int, code string) {
	t.Helper()
	if resp.Status != status {
		t.Errorf("status: got %d, want %d", resp.Status, status)
	}
	if resp.Error == nil {
		t.Fatalf("expected %s error, got result %s", code, resp.Result)
	}
	if resp.Error.Code != code {
		t.Errorf("code: got %q, want %q (%s)", resp.Error.Code, code, resp.Error.Message)
	}
}

// seedPost creates a post through the service and optionally publishes it.
func (env *testEnv) seedPost(t *testing.T, title string, published bool) *models.Post {
	t.Helper()
	ctx := context.Background()
	p, err := env.svc.CreatePost(ctx, models.NewPost{Title: title, Content: "Content for " + title})
	if err != nil {
		t.Fatalf("seed post %q: %v", title, err)
	}
	if published {
		if p, err = env.svc.UpdatePost(ctx, p.ID, models.PostPatch{PublishedStatus: boolPtr(true)}); err != nil {
			t.Fatalf("publish %q: %v", title, err)
		}
	}
	return p
}

func (env *testEnv) seedCategory(t *testing.T, name string) *models.Category {
	t.Helper()
	c, err := env.svc.CreateCategory(context.Background(), name, nil)
	if err != nil {
		t.Fatalf("seed category %q: %v", name, err)
	}
	return c
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }
