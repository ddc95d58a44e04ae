package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rezkam/bucketlist/internal/http/handler"
	mw "github.com/rezkam/bucketlist/internal/http/middleware"
)

// NewRouter creates and configures the Chi router with all middleware and routes.
func NewRouter(server *handler.Server, authMiddleware *mw.Auth, maxBodyBytes int64) *chi.Mux {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if maxBodyBytes > 0 {
		r.Use(mw.MaxBodyBytes(maxBodyBytes))
	}

	// Health check endpoint (no auth required)
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			slog.ErrorContext(r.Context(), "Failed to write health check response", "error", err)
		}
	})

	// Public feed (no auth required)
	r.Get("/public/items", server.ListPublicItems)

	// API routes scoped to the authenticated profile
	r.Route("/api", func(r chi.Router) {
		r.Use(authMiddleware.Validate)

		r.Get("/items", server.ListItems)
		r.Post("/items", server.CreateItem)
		r.Post("/items/batch", server.CreateItemsBatch)
		r.Get("/items/{id}", server.GetItem)
		r.Patch("/items/{id}", server.UpdateItem)
		r.Delete("/items/{id}", server.DeleteItem)

		r.Get("/categories", server.ListCategories)
		r.Get("/stats", server.GetStats)
		r.Get("/dashboard", server.GetDashboard)
	})

	return r
}
