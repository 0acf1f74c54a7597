// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	g "github.com/maragudk/gomponents"

	"inkwell/internal/blog"
	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/render"
	"inkwell/internal/storage"
	"inkwell/internal/store"
)

// Admin groups the server-rendered admin panel handlers. Every read and
// write goes through the blog service, so saves clear the public cache the
// same way RPC mutations do.
type Admin struct {
	blog     *blog.Service
	renderer *render.Renderer
	uploads  bool
}

// NewAdmin creates the admin handler group. storageClient may be nil if S3
// is not configured, in which case the post editor offers no upload.
func NewAdmin(svc *blog.Service, renderer *render.Renderer, storageClient *storage.Client) *Admin {
	return &Admin{blog: svc, renderer: renderer, uploads: storageClient != nil}
}

// Index sends the bare /admin path to the post list.
func (a *Admin) Index(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/admin/posts", http.StatusFound)
}

// --- Posts ---

// PostsList renders every post, drafts included.
func (a *Admin) PostsList(w http.ResponseWriter, r *http.Request) {
	posts, err := a.blog.AdminAll(r.Context())
	if err != nil {
		a.fail(w, r, "posts", err)
		return
	}
	a.page(w, r, http.StatusOK, "posts", "Posts", render.AdminPosts(posts, middleware.CSRFTokenFromCtx(r.Context())))
}

// PostNew renders the empty post editor.
func (a *Admin) PostNew(w http.ResponseWriter, r *http.Request) {
	a.postForm(w, r, http.StatusOK, render.PostForm{})
}

// PostCreate handles the new post form. The post is created as a draft,
// then published and given its categories if the form asks for that.
func (a *Admin) PostCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.readPostForm(w, r, 0)
	if !ok {
		return
	}

	ctx := r.Context()
	post, err := a.blog.CreatePost(ctx, models.NewPost{
		Title:    form.Title,
		Content:  form.Content,
		ImageURL: models.Optional(form.ImageURL),
	})
	if store.IsConflict(err) {
		form.Error = postConflict
		a.postForm(w, r, http.StatusConflict, form)
		return
	}
	if err != nil {
		a.fail(w, r, "posts", err)
		return
	}

	if form.Published {
		if _, err := a.blog.UpdatePost(ctx, post.ID, models.PostPatch{PublishedStatus: &form.Published}); err != nil {
			a.fail(w, r, "posts", err)
			return
		}
	}
	if ids := selectedIDs(form.CategoryIDs); len(ids) > 0 {
		if err := a.blog.AssignCategories(ctx, post.ID, ids); err != nil {
			a.fail(w, r, "posts", err)
			return
		}
	}

	slog.Info("post created", "id", post.ID, "slug", post.Slug, "published", form.Published)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostEdit renders the editor filled with an existing post.
func (a *Admin) PostEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "posts")
	if !ok {
		return
	}
	post, err := a.blog.AdminByID(r.Context(), id)
	if err != nil {
		a.fail(w, r, "posts", err)
		return
	}

	form := render.PostForm{
		ID:          post.ID,
		Title:       post.Title,
		Content:     post.Content,
		ImageURL:    deref(post.ImageURL),
		Published:   post.IsPublished(),
		CategoryIDs: make(map[int64]bool, len(post.Categories)),
	}
	for _, c := range post.Categories {
		form.CategoryIDs[c.ID] = true
	}
	a.postForm(w, r, http.StatusOK, form)
}

// PostUpdate handles the edit post form. The submitted category set
// replaces the post's current one.
func (a *Admin) PostUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "posts")
	if !ok {
		return
	}
	form, ok := a.readPostForm(w, r, id)
	if !ok {
		return
	}

	ctx := r.Context()
	_, err := a.blog.UpdatePost(ctx, id, models.PostPatch{
		Title:           &form.Title,
		Content:         &form.Content,
		PublishedStatus: &form.Published,
		ImageURL:        &form.ImageURL,
	})
	if store.IsConflict(err) {
		form.Error = postConflict
		a.postForm(w, r, http.StatusConflict, form)
		return
	}
	if err != nil {
		a.fail(w, r, "posts", err)
		return
	}
	if err := a.blog.AssignCategories(ctx, id, selectedIDs(form.CategoryIDs)); err != nil {
		a.fail(w, r, "posts", err)
		return
	}

	slog.Info("post updated", "id", id, "published", form.Published)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// PostDelete removes a post.
func (a *Admin) PostDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "posts")
	if !ok {
		return
	}
	post, err := a.blog.DeletePost(r.Context(), id)
	if err != nil {
		a.fail(w, r, "posts", err)
		return
	}
	slog.Info("post deleted", "id", post.ID, "slug", post.Slug)
	http.Redirect(w, r, "/admin/posts", http.StatusSeeOther)
}

// readPostForm parses and validates the post editor. On invalid input it
// re-renders the editor with the message and returns false.
func (a *Admin) readPostForm(w http.ResponseWriter, r *http.Request, id int64) (render.PostForm, bool) {
	form := render.PostForm{ID: id}
	if err := r.ParseForm(); err != nil {
		form.Error = "The form could not be read."
		a.postForm(w, r, http.StatusBadRequest, form)
		return form, false
	}

	form.Title = strings.TrimSpace(r.PostFormValue("title"))
	form.Content = r.PostFormValue("content")
	form.ImageURL = strings.TrimSpace(r.PostFormValue("image_url"))
	form.Published = r.PostFormValue("published") == "on"
	form.CategoryIDs = make(map[int64]bool)
	for _, raw := range r.PostForm["category_ids"] {
		cid, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || cid <= 0 {
			form.Error = "Unknown category selected."
			a.postForm(w, r, http.StatusUnprocessableEntity, form)
			return form, false
		}
		form.CategoryIDs[cid] = true
	}

	for _, msg := range []string{
		validateTitle(form.Title),
		validateContent(form.Content),
		validateImageURL(form.ImageURL),
	} {
		if msg != "" {
			form.Error = msg
			a.postForm(w, r, http.StatusUnprocessableEntity, form)
			return form, false
		}
	}
	return form, true
}

func (a *Admin) postForm(w http.ResponseWriter, r *http.Request, status int, form render.PostForm) {
	categories, err := a.blog.Categories(r.Context())
	if err != nil {
		slog.Error("list categories for post form failed", "error", err)
	}
	form.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	form.Uploads = a.uploads

	title := "New post"
	if form.ID != 0 {
		title = "Edit post"
	}
	a.page(w, r, status, "posts", title, render.AdminPostForm(form, categories))
}

// --- Categories ---

// CategoriesList renders every category.
func (a *Admin) CategoriesList(w http.ResponseWriter, r *http.Request) {
	categories, err := a.blog.Categories(r.Context())
	if err != nil {
		a.fail(w, r, "categories", err)
		return
	}
	a.page(w, r, http.StatusOK, "categories", "Categories", render.AdminCategories(categories, middleware.CSRFTokenFromCtx(r.Context())))
}

// CategoryNew renders the empty category editor.
func (a *Admin) CategoryNew(w http.ResponseWriter, r *http.Request) {
	a.categoryForm(w, r, http.StatusOK, render.CategoryForm{})
}

// CategoryCreate handles the new category form.
func (a *Admin) CategoryCreate(w http.ResponseWriter, r *http.Request) {
	form, ok := a.readCategoryForm(w, r, 0)
	if !ok {
		return
	}
	c, err := a.blog.CreateCategory(r.Context(), form.Name, models.Optional(form.Description))
	if store.IsConflict(err) {
		form.Error = categoryConflict
		a.categoryForm(w, r, http.StatusConflict, form)
		return
	}
	if err != nil {
		a.fail(w, r, "categories", err)
		return
	}
	slog.Info("category created", "id", c.ID, "slug", c.Slug)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryEdit renders the editor filled with an existing category.
func (a *Admin) CategoryEdit(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "categories")
	if !ok {
		return
	}
	c, err := a.blog.Category(r.Context(), id)
	if err != nil {
		a.fail(w, r, "categories", err)
		return
	}
	a.categoryForm(w, r, http.StatusOK, render.CategoryForm{
		ID:          c.ID,
		Name:        c.Name,
		Description: deref(c.Description),
	})
}

// CategoryUpdate handles the edit category form. An empty description
// clears it.
func (a *Admin) CategoryUpdate(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "categories")
	if !ok {
		return
	}
	form, ok := a.readCategoryForm(w, r, id)
	if !ok {
		return
	}
	_, err := a.blog.UpdateCategory(r.Context(), id, models.CategoryPatch{
		Name:        &form.Name,
		Description: &form.Description,
	})
	if store.IsConflict(err) {
		form.Error = categoryConflict
		a.categoryForm(w, r, http.StatusConflict, form)
		return
	}
	if err != nil {
		a.fail(w, r, "categories", err)
		return
	}
	slog.Info("category updated", "id", id)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

// CategoryDelete removes a category. Posts keep their other categories.
func (a *Admin) CategoryDelete(w http.ResponseWriter, r *http.Request) {
	id, ok := a.idParam(w, r, "categories")
	if !ok {
		return
	}
	c, err := a.blog.DeleteCategory(r.Context(), id)
	if err != nil {
		a.fail(w, r, "categories", err)
		return
	}
	slog.Info("category deleted", "id", c.ID, "slug", c.Slug)
	http.Redirect(w, r, "/admin/categories", http.StatusSeeOther)
}

func (a *Admin) readCategoryForm(w http.ResponseWriter, r *http.Request, id int64) (render.CategoryForm, bool) {
	form := render.CategoryForm{
		ID:          id,
		Name:        strings.TrimSpace(r.PostFormValue("name")),
		Description: strings.TrimSpace(r.PostFormValue("description")),
	}
	msg := validateName(form.Name)
	if msg == "" {
		msg = validateDescription(form.Description)
	}
	if msg != "" {
		form.Error = msg
		a.categoryForm(w, r, http.StatusUnprocessableEntity, form)
		return form, false
	}
	return form, true
}

func (a *Admin) categoryForm(w http.ResponseWriter, r *http.Request, status int, form render.CategoryForm) {
	form.CSRFToken = middleware.CSRFTokenFromCtx(r.Context())
	title := "New category"
	if form.ID != 0 {
		title = "Edit category"
	}
	a.page(w, r, status, "categories", title, render.AdminCategoryForm(form))
}

// --- Shared ---

func (a *Admin) page(w http.ResponseWriter, r *http.Request, status int, section, title string, body g.Node) {
	a.renderer.Page(w, r, status, render.PageData{Title: title, Admin: section}, body)
}

// idParam reads the {id} URL parameter. Anything but a positive integer
// renders the 404 page.
func (a *Admin) idParam(w http.ResponseWriter, r *http.Request, section string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		a.page(w, r, http.StatusNotFound, section, "Not found", render.NotFound())
		return 0, false
	}
	return id, true
}

// fail renders the 404 page for missing rows and the 500 page for anything
// else.
func (a *Admin) fail(w http.ResponseWriter, r *http.Request, section string, err error) {
	if store.IsNotFound(err) {
		a.page(w, r, http.StatusNotFound, section, "Not found", render.NotFound())
		return
	}
	slog.Error("admin request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	a.page(w, r, http.StatusInternalServerError, section, "Error", render.ServerError())
}

// selectedIDs returns the checked IDs in ascending order.
func selectedIDs(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id, on := range set {
		if on {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
