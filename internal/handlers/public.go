// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/blog"
	"inkwell/internal/markdown"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/store"
)

// Public groups handlers for the server-rendered public site. Only
// published posts are ever shown; caching happens in the blog service.
type Public struct {
	blog     *blog.Service
	renderer *render.Renderer
}

// NewPublic creates a new Public handler group.
func NewPublic(svc *blog.Service, renderer *render.Renderer) *Public {
	return &Public{blog: svc, renderer: renderer}
}

// navigation loads the category list shown in the header. A failure is
// logged and yields an empty menu rather than a failed page.
func (p *Public) navigation(r *http.Request) []models.Category {
	cats, err := p.blog.Categories(r.Context())
	if err != nil {
		slog.Error("list categories for navigation failed", "error", err)
		return nil
	}
	return cats
}

// Homepage renders every published post, newest first.
func (p *Public) Homepage(w http.ResponseWriter, r *http.Request) {
	nav := p.navigation(r)

	posts, err := p.blog.PublicAll(r.Context())
	if err != nil {
		p.fail(w, r, nav, err)
		return
	}

	p.renderer.Page(w, r, http.StatusOK, render.PageData{Categories: nav}, render.Home(posts))
}

// Category renders the published posts of one category.
func (p *Public) Category(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	nav := p.navigation(r)

	posts, err := p.blog.PublicByCategorySlug(r.Context(), slugParam)
	if err != nil {
		p.fail(w, r, nav, err)
		return
	}

	// The navigation list carries the display name. If it failed to load
	// the slug stands in.
	cat := &models.Category{Name: slugParam, Slug: slugParam}
	for i := range nav {
		if nav[i].Slug == slugParam {
			cat = &nav[i]
			break
		}
	}

	p.renderer.Page(w, r, http.StatusOK, render.PageData{
		Title:      cat.Name,
		Categories: nav,
		Active:     cat.Slug,
	}, render.CategoryPosts(cat, posts))
}

// Post renders a single published post with its Markdown content.
func (p *Public) Post(w http.ResponseWriter, r *http.Request) {
	slugParam := chi.URLParam(r, "slug")
	nav := p.navigation(r)

	post, err := p.blog.PublicBySlug(r.Context(), slugParam)
	if err != nil {
		p.fail(w, r, nav, err)
		return
	}

	body, err := markdown.ToHTML(post.Content)
	if err != nil {
		p.fail(w, r, nav, err)
		return
	}

	p.renderer.Page(w, r, http.StatusOK, render.PageData{
		Title:      post.Title,
		Categories: nav,
	}, render.PostDetail(post, body))
}

// NotFoundPage renders the 404 page.
func (p *Public) NotFoundPage(w http.ResponseWriter, r *http.Request) {
	p.renderer.Page(w, r, http.StatusNotFound, render.PageData{
		Title:      "Not found",
		Categories: p.navigation(r),
	}, render.NotFound())
}

// fail renders the 404 page for missing content and the 500 page for
// anything else.
func (p *Public) fail(w http.ResponseWriter, r *http.Request, nav []models.Category, err error) {
	if store.IsNotFound(err) {
		p.renderer.Page(w, r, http.StatusNotFound, render.PageData{Title: "Not found", Categories: nav}, render.NotFound())
		return
	}
	slog.Error("render public page failed", "path", r.URL.Path, "error", err)
	p.renderer.Page(w, r, http.StatusInternalServerError, render.PageData{Title: "Error", Categories: nav}, render.ServerError())
}
