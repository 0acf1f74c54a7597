// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"inkwell/internal/blog"
	"inkwell/internal/models"
	"inkwell/internal/storage"
	"inkwell/internal/telemetry"
)

// API serves the typed RPC procedures under /api/rpc/{procedure}.
type API struct {
	blog       *blog.Service
	storage    *storage.Client
	telemetry  *telemetry.Procedures
	procedures map[string]procedure
}

// NewAPI creates the RPC handler. storageClient may be nil if S3 is not
// configured; procs may be nil to use the global telemetry providers.
func NewAPI(svc *blog.Service, storageClient *storage.Client, procs *telemetry.Procedures) *API {
	if procs == nil {
		procs = telemetry.NewProcedures()
	}
	a := &API{
		blog:      svc,
		storage:   storageClient,
		telemetry: procs,
	}
	a.procedures = a.register()
	return a
}

// Serve dispatches a request to the procedure named in the URL.
func (a *API) Serve(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "procedure")
	proc, ok := a.procedures[name]
	if !ok {
		writeError(w, name, notFound("No procedure named \""+name+"\"."))
		return
	}

	if r.Method != proc.kind.method() {
		w.Header().Set("Allow", proc.kind.method())
		writeError(w, name, &rpcError{
			status:  http.StatusMethodNotAllowed,
			code:    codeMethodNotSupported,
			message: "Procedure \"" + name + "\" is a " + string(proc.kind) + " and must be called with " + proc.kind.method() + ".",
		})
		return
	}

	raw, err := readInput(w, r, proc.kind)
	if err != nil {
		writeError(w, name, err)
		return
	}

	ctx, done := a.telemetry.Start(r.Context(), name, string(proc.kind))
	result, err := proc.call(ctx, raw)
	done(err)
	if err != nil {
		writeError(w, name, err)
		return
	}
	writeResult(w, result)
}

// --- Inputs ---

type noInput struct{}

type idInput struct {
	ID int64 `json:"id"`
}

func (in idInput) validate() string {
	return validateID("id", in.ID)
}

type slugInput struct {
	Slug string `json:"slug"`
}

func (in slugInput) validate() string {
	return validateSlug(in.Slug)
}

type createCategoryInput struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
}

func (in createCategoryInput) validate() string {
	if msg := validateName(in.Name); msg != "" {
		return msg
	}
	if in.Description != nil {
		return validateDescription(*in.Description)
	}
	return ""
}

type updateCategoryInput struct {
	ID          int64   `json:"id"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

func (in updateCategoryInput) validate() string {
	if msg := validateID("id", in.ID); msg != "" {
		return msg
	}
	if in.Name != nil {
		if msg := validateName(*in.Name); msg != "" {
			return msg
		}
	}
	if in.Description != nil {
		return validateDescription(*in.Description)
	}
	return ""
}

type createPostInput struct {
	Title    string  `json:"title"`
	Content  string  `json:"content"`
	ImageURL *string `json:"imageUrl"`
}

func (in createPostInput) validate() string {
	if msg := validateTitle(in.Title); msg != "" {
		return msg
	}
	if msg := validateContent(in.Content); msg != "" {
		return msg
	}
	if in.ImageURL != nil {
		return validateImageURL(*in.ImageURL)
	}
	return ""
}

type updatePostInput struct {
	ID              int64   `json:"id"`
	Title           *string `json:"title"`
	Content         *string `json:"content"`
	PublishedStatus *bool   `json:"publishedStatus"`
	ImageURL        *string `json:"imageUrl"`
}

func (in updatePostInput) validate() string {
	if msg := validateID("id", in.ID); msg != "" {
		return msg
	}
	if in.Title != nil {
		if msg := validateTitle(*in.Title); msg != "" {
			return msg
		}
	}
	if in.Content != nil {
		if msg := validateContent(*in.Content); msg != "" {
			return msg
		}
	}
	if in.ImageURL != nil {
		return validateImageURL(*in.ImageURL)
	}
	return ""
}

type assignCategoriesInput struct {
	PostID      int64   `json:"postId"`
	CategoryIDs []int64 `json:"categoryIds"`
}

func (in assignCategoriesInput) validate() string {
	if msg := validateID("postId", in.PostID); msg != "" {
		return msg
	}
	if in.CategoryIDs == nil {
		return "categoryIds is required."
	}
	for _, id := range in.CategoryIDs {
		if msg := validateID("categoryIds", id); msg != "" {
			return msg
		}
	}
	return ""
}

type uploadInput struct {
	Filename string `json:"filename"`
}

func (in uploadInput) validate() string {
	return validateFilename(in.Filename)
}

type successResult struct {
	Success bool `json:"success"`
}

// trimmed returns a copy of s without surrounding whitespace, or nil.
func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	return &t
}

const (
	postNotFound     = "Post not found."
	postConflict     = "A post with this title already exists."
	categoryNotFound = "Category not found."
	categoryConflict = "A category with this name already exists."
)

// register builds the procedure table.
func (a *API) register() map[string]procedure {
	return map[string]procedure{
		"healthcheck": handle(kindQuery, func(context.Context, noInput) (string, error) {
			return "OK", nil
		}),

		// --- Categories ---

		"category.getAll": handle(kindQuery, func(ctx context.Context, _ noInput) ([]models.Category, error) {
			return a.blog.Categories(ctx)
		}),
		"category.getById": handle(kindQuery, func(ctx context.Context, in idInput) (*models.Category, error) {
			c, err := a.blog.Category(ctx, in.ID)
			return c, classify(err, categoryNotFound, categoryConflict)
		}),
		"category.create": handle(kindMutation, func(ctx context.Context, in createCategoryInput) (*models.Category, error) {
			var desc *string
			if in.Description != nil {
				desc = models.Optional(*in.Description)
			}
			c, err := a.blog.CreateCategory(ctx, strings.TrimSpace(in.Name), desc)
			return c, classify(err, categoryNotFound, categoryConflict)
		}),
		"category.update": handle(kindMutation, func(ctx context.Context, in updateCategoryInput) (*models.Category, error) {
			patch := models.CategoryPatch{Name: trimmed(in.Name), Description: in.Description}
			c, err := a.blog.UpdateCategory(ctx, in.ID, patch)
			return c, classify(err, categoryNotFound, categoryConflict)
		}),
		"category.delete": handle(kindMutation, func(ctx context.Context, in idInput) (*models.Category, error) {
			c, err := a.blog.DeleteCategory(ctx, in.ID)
			return c, classify(err, categoryNotFound, categoryConflict)
		}),

		// --- Posts ---

		"post.getAll": handle(kindQuery, func(ctx context.Context, _ noInput) ([]models.PostWithCategories, error) {
			return a.blog.PublicAll(ctx)
		}),
		"post.getPostsByCategorySlug": handle(kindQuery, func(ctx context.Context, in slugInput) ([]models.PostWithCategories, error) {
			posts, err := a.blog.PublicByCategorySlug(ctx, in.Slug)
			return posts, classify(err, categoryNotFound, categoryConflict)
		}),
		"post.getBySlug": handle(kindQuery, func(ctx context.Context, in slugInput) (*models.PostWithCategories, error) {
			p, err := a.blog.PublicBySlug(ctx, in.Slug)
			return p, classify(err, postNotFound, postConflict)
		}),
		"post.adminGetAll": handle(kindQuery, func(ctx context.Context, _ noInput) ([]models.PostWithCategories, error) {
			return a.blog.AdminAll(ctx)
		}),
		"post.getById": handle(kindQuery, func(ctx context.Context, in idInput) (*models.PostWithCategories, error) {
			p, err := a.blog.AdminByID(ctx, in.ID)
			return p, classify(err, postNotFound, postConflict)
		}),
		"post.create": handle(kindMutation, func(ctx context.Context, in createPostInput) (*models.Post, error) {
			var image *string
			if in.ImageURL != nil {
				image = models.Optional(strings.TrimSpace(*in.ImageURL))
			}
			p, err := a.blog.CreatePost(ctx, models.NewPost{
				Title:    strings.TrimSpace(in.Title),
				Content:  in.Content,
				ImageURL: image,
			})
			return p, classify(err, postNotFound, postConflict)
		}),
		"post.update": handle(kindMutation, func(ctx context.Context, in updatePostInput) (*models.Post, error) {
			patch := models.PostPatch{
				Title:           trimmed(in.Title),
				Content:         in.Content,
				PublishedStatus: in.PublishedStatus,
				ImageURL:        trimmed(in.ImageURL),
			}
			p, err := a.blog.UpdatePost(ctx, in.ID, patch)
			return p, classify(err, postNotFound, postConflict)
		}),
		"post.delete": handle(kindMutation, func(ctx context.Context, in idInput) (*models.Post, error) {
			p, err := a.blog.DeletePost(ctx, in.ID)
			return p, classify(err, postNotFound, postConflict)
		}),
		"post.assignCategories": handle(kindMutation, func(ctx context.Context, in assignCategoriesInput) (successResult, error) {
			if err := a.blog.AssignCategories(ctx, in.PostID, in.CategoryIDs); err != nil {
				return successResult{}, err
			}
			return successResult{Success: true}, nil
		}),

		// --- Object storage ---

		"blob.createUploadUrl": handle(kindMutation, func(ctx context.Context, in uploadInput) (*storage.Upload, error) {
			if a.storage == nil {
				return nil, internalError("Object storage is not configured.")
			}
			up, err := a.storage.UploadURL(ctx, in.Filename)
			if err != nil {
				slog.Error("create upload url failed", "filename", in.Filename, "error", err)
				return nil, internalError("Failed to prepare file upload.")
			}
			return up, nil
		}),
	}
}
