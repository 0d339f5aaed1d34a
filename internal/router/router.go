// Package router sets up all HTTP routes and middleware chains for the
// API server. Routes split into a public browsing surface and gated
// write surfaces; gating itself happens in the content service, so the
// router only loads the principal.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"iturinews/internal/auth"
	"iturinews/internal/handlers"
	"iturinews/internal/middleware"
)

// New creates the configured Chi router.
func New(authService *auth.Service, public *handlers.Public, posts *handlers.Posts, authHandlers *handlers.Auth, admin *handlers.Admin, allowedOrigins []string) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.LoadPrincipal(authService))

	// Health check.
	r.Get("/health", healthHandler)

	r.Route("/api", func(r chi.Router) {
		// Public browsing surface.
		r.Get("/domains", public.Domains)
		r.Get("/authors", public.Authors)
		r.Get("/posts", public.Posts)
		r.Get("/posts/{slug}", public.Post)

		// Auth surface.
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signin", authHandlers.SignIn)
			r.Post("/signout", authHandlers.SignOut)
			r.Get("/me", authHandlers.Me)
		})

		// Authoring surface.
		r.Get("/me/posts", posts.Mine)
		r.Post("/posts", posts.Create)
		r.Put("/posts/{id}", posts.Update)
		r.Post("/posts/{id}/publish", posts.Publish)
		r.Post("/posts/{id}/comments", posts.Comment)

		// Superadmin surface.
		r.Route("/admin", func(r chi.Router) {
			r.Get("/users", admin.Users)
			r.Put("/users/{id}/role", admin.SetRole)
		})
	})

	return r
}

// healthHandler returns a simple JSON health check response.
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}
