package handlers

import (
	"net/http"

	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/logger"
)

type historyResponse struct {
	History []string `json:"history"`
}

// History returns the saved queries, most recent first.
func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		history := d.Orchestrator.History()
		if history == nil {
			history = []string{}
		}

		writeJSON(w, http.StatusOK, historyResponse{History: history})
	}
}

// ClearHistory removes every saved query.
func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Orchestrator.ClearHistory(r.Context()); err != nil {
			d.Logger.Error("failed to clear history",
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to clear history")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
