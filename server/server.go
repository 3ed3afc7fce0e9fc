// Package server exposes the HTTP API: customer menu/cart/placement, the
// kitchen live stream, and the admin menu/analytics surface.
package server

import (
	"log/slog"
	"net/http"

	"qr-dine/services"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Server struct {
	Carts   *services.CartStore
	Placer  *services.Placer
	Watcher *services.Watcher
	Log     *slog.Logger
}

func New(carts *services.CartStore, placer *services.Placer, watcher *services.Watcher, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	return &Server{Carts: carts, Placer: placer, Watcher: watcher, Log: log}
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Get("/menu", s.handleListMenu)
		r.Get("/categories", s.handleListCategories)
		r.Get("/tables/{id}", s.handleGetTable)

		r.Route("/cart/{session}", func(r chi.Router) {
			r.Get("/", s.handleGetCart)
			r.Post("/items/{itemID}", s.handleCartAdd)
			r.Delete("/items/{itemID}", s.handleCartRemove)
			r.Put("/items/{itemID}/note", s.handleCartNote)
			r.Delete("/", s.handleCartClear)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", s.handlePlaceOrder)
			r.Get("/", s.handleListOrders)
			r.Get("/stream", s.handleOrderStream)
			r.Get("/{id}", s.handleGetOrder)
			r.Post("/{id}/status", s.handleUpdateStatus)
		})

		r.Route("/admin", func(r chi.Router) {
			r.Post("/menu", s.handleAddMenuItem)
			r.Put("/menu/{id}", s.handleUpdateMenuItem)
			r.Delete("/menu/{id}", s.handleDeleteMenuItem)
			r.Get("/stats", s.handleStats)
			r.Get("/stats/top-items", s.handleTopItems)
		})
	})

	return r
}
