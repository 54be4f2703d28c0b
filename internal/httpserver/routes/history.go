package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Get("/history", handlers.History(d))
	r.Delete("/history", handlers.ClearHistory(d))
}
