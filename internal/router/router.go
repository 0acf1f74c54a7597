// Package router sets up all HTTP routes and middleware chains for the
// Inkwell blog. The RPC API lives under /api/rpc, the admin panel under
// /admin and the server-rendered public site under /.
package router

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"inkwell/internal/handlers"
	"inkwell/internal/middleware"
	"inkwell/web"
)

// Options tunes the router's cross-cutting middleware.
type Options struct {
	// CORSOrigins lists origins allowed to call the API. Empty allows none.
	CORSOrigins []string
	// RateLimit is the number of mutations per minute allowed per client IP.
	// Zero disables limiting. Admin form posts share the same budget size.
	RateLimit int
	// SecureCookies marks the admin CSRF cookie Secure. Set it behind TLS.
	SecureCookies bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(api *handlers.API, public *handlers.Public, admin *handlers.Admin, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)

	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		r.Use(cors.New(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           300,
		}).Handler)
		r.Use(middleware.RateLimitWrites(opts.RateLimit, time.Minute))

		r.HandleFunc("/rpc/{procedure}", api.Serve)
	})

	// Admin panel. There is no login; form posts are CSRF-checked.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))
		r.Use(middleware.RateLimitWrites(opts.RateLimit, time.Minute))

		r.Get("/", admin.Index)

		r.Get("/posts", admin.PostsList)
		r.Get("/posts/new", admin.PostNew)
		r.Post("/posts", admin.PostCreate)
		r.Get("/posts/{id}/edit", admin.PostEdit)
		r.Post("/posts/{id}", admin.PostUpdate)
		r.Post("/posts/{id}/delete", admin.PostDelete)

		r.Get("/categories", admin.CategoriesList)
		r.Get("/categories/new", admin.CategoryNew)
		r.Post("/categories", admin.CategoryCreate)
		r.Get("/categories/{id}/edit", admin.CategoryEdit)
		r.Post("/categories/{id}", admin.CategoryUpdate)
		r.Post("/categories/{id}/delete", admin.CategoryDelete)
	})

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))

	// Public site.
	r.Get("/", public.Homepage)
	r.Get("/category/{slug}", public.Category)
	r.Get("/post/{slug}", public.Post)
	r.NotFound(public.NotFoundPage)

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
