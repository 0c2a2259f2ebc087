package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (app *Application) routes() http.Handler {
	router := chi.NewRouter()
	router.NotFound(func(w http.ResponseWriter, r *http.Request) {
		app.Http.NotFound(w, r, "Page not found")
	})
	router.Use(middleware.StripSlashes)
	router.Use(middleware.RequestID)
	router.Use(middleware.Logger)
	router.Use(app.Recoverer)
	router.Use(app.RateLimiter)
	router.Use(app.Authenticate)
	router.Route("/api/v1", func(r chi.Router) {
		r.Get("/healthcheck", app.healthcheck)
		r.Route("/auth", func(r chi.Router) {
			r.Post("/signup", app.signup)
			r.Post("/token", app.obtainToken)
		})
		r.Route("/users", func(r chi.Router) {
			r.With(app.requireAuthenticatedUser).Get("/me", app.getOwnProfile)
			r.With(app.requireAuthenticatedUser).Patch("/me", app.updateOwnProfile)
			r.Group(func(r chi.Router) {
				r.Use(app.requireAdmin)
				r.Get("/", app.getUsers)
				r.Get("/{username}", app.getUser)
				r.Patch("/{username}", app.updateUser)
				r.Delete("/{username}", app.deleteUser)
			})
		})
		r.Route("/titles", func(r chi.Router) {
			r.Get("/", app.getTitles)
			r.Get("/{titleID}", app.getTitle)
			r.With(app.requireAdmin).Post("/", app.createTitle)
			r.With(app.requireAdmin).Patch("/{titleID}", app.updateTitle)
			r.With(app.requireAdmin).Delete("/{titleID}", app.deleteTitle)
			r.Route("/{titleID}/reviews", func(r chi.Router) {
				r.Get("/", app.getReviews)
				r.Get("/{reviewID}", app.getReview)
				r.With(app.requireAuthenticatedUser).Post("/", app.createReview)
				r.With(app.requireAuthenticatedUser).Patch("/{reviewID}", app.updateReview)
				r.With(app.requireAuthenticatedUser).Delete("/{reviewID}", app.deleteReview)
				r.Route("/{reviewID}/comments", func(r chi.Router) {
					r.Get("/", app.getComments)
					r.Get("/{commentID}", app.getComment)
					r.With(app.requireAuthenticatedUser).Post("/", app.createComment)
					r.With(app.requireAuthenticatedUser).Patch("/{commentID}", app.updateComment)
					r.With(app.requireAuthenticatedUser).Delete("/{commentID}", app.deleteComment)
				})
			})
		})
		r.Route("/categories", func(r chi.Router) {
			r.Get("/", app.getCategories)
			r.With(app.requireAdmin).Post("/", app.createCategory)
			r.With(app.requireAdmin).Delete("/{slug}", app.deleteCategory)
		})
		r.Route("/genres", func(r chi.Router) {
			r.Get("/", app.getGenres)
			r.With(app.requireAdmin).Post("/", app.createGenre)
			r.With(app.requireAdmin).Delete("/{slug}", app.deleteGenre)
		})
	})
	return router
}
