package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/httpserver/handlers"
)

func init() { Register(registerReload) }

func registerReload(r chi.Router, d deps.Deps) {
	r.Post("/reload/badges", handlers.ReloadBadges(d))
}
