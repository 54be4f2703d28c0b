package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/jloaiza/melisearch/internal/domain"
	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/logger"
)

type favoritesResponse struct {
	Favorites []domain.Product `json:"favorites"`
}

type toggleResponse struct {
	Item domain.Product `json:"item"`
}

// Favorites lists every persisted favorite snapshot.
func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favorites, err := d.Orchestrator.Favorites(r.Context())
		if err != nil {
			d.Logger.Error("failed to list favorites",
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to list favorites")
			return
		}
		if favorites == nil {
			favorites = []domain.Product{}
		}

		writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favorites})
	}
}

// ToggleFavorite flips the favorite flag on the posted item and returns
// the updated copy for the caller to splice back into its list.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var item domain.Product
		if err := json.NewDecoder(r.Body).Decode(&item); err != nil {
			writeError(w, http.StatusBadRequest, "invalid item payload")
			return
		}
		if item.ID == "" || item.Name == "" {
			writeError(w, http.StatusBadRequest, "item requires id and name")
			return
		}

		toggled, err := d.Orchestrator.ToggleFavorite(r.Context(), item)
		if err != nil {
			d.Logger.Error("failed to toggle favorite",
				logger.String("id", item.ID),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to toggle favorite")
			return
		}

		d.Logger.Info("favorite toggled",
			logger.String("id", toggled.ID),
			logger.Bool("favorite", toggled.Favorite))

		writeJSON(w, http.StatusOK, toggleResponse{Item: toggled})
	}
}

// RemoveFavorite deletes a favorite by product ID.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if id == "" {
			writeError(w, http.StatusBadRequest, "missing product id")
			return
		}

		if err := d.Orchestrator.RemoveFavorite(r.Context(), id); err != nil {
			d.Logger.Error("failed to remove favorite",
				logger.String("id", id),
				logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to remove favorite")
			return
		}

		w.WriteHeader(http.StatusNoContent)
	}
}
