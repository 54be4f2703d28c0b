package handlers

import (
	"net/http"

	"github.com/jloaiza/melisearch/internal/httpserver/deps"
)

type reloadResponse struct {
	Triggered bool   `json:"triggered"`
	Reason    string `json:"reason,omitempty"`
}

// ReloadBadges triggers a manual badge-rules reload. Non-blocking: if a
// reload is already pending the request is acknowledged as such.
func ReloadBadges(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.BadgeReloadTrigger == nil {
			writeJSON(w, http.StatusConflict, reloadResponse{
				Triggered: false,
				Reason:    "badge rules not configured",
			})
			return
		}

		select {
		case d.BadgeReloadTrigger <- struct{}{}:
			writeJSON(w, http.StatusAccepted, reloadResponse{Triggered: true})
		default:
			writeJSON(w, http.StatusAccepted, reloadResponse{
				Triggered: false,
				Reason:    "reload already pending",
			})
		}
	}
}
