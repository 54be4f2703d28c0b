package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jloaiza/melisearch/internal/catalog"
	"github.com/jloaiza/melisearch/internal/domain"
	"github.com/jloaiza/melisearch/internal/httpserver/deps"
	"github.com/jloaiza/melisearch/internal/logger"
	"github.com/jloaiza/melisearch/internal/search"
)

// searchResponse is the search envelope. A failed request keeps the
// same shape as "no results" (empty items, empty=true) with Error set:
// both render as an empty state, only failures add the banner message.
type searchResponse struct {
	Query  string           `json:"query"`
	Items  []domain.Product `json:"items"`
	Facets domain.Facets    `json:"facets"`
	Empty  bool             `json:"empty"`
	Error  string           `json:"error,omitempty"`
}

func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, http.StatusBadRequest, "missing query parameter q")
			return
		}

		criteria := domain.FilterCriteria{
			Brand: r.URL.Query().Get("brand"),
			Model: r.URL.Query().Get("model"),
			Color: r.URL.Query().Get("color"),
		}

		d.Logger.Info("search request",
			logger.String("query", query))

		res, err := d.Orchestrator.SubmitSearch(ctx, query)
		if err != nil {
			if errors.Is(err, search.ErrEmptyQuery) {
				writeError(w, http.StatusBadRequest, "missing query parameter q")
				return
			}
			writeJSON(w, http.StatusOK, searchResponse{
				Query: query,
				Items: []domain.Product{},
				Empty: true,
				Error: catalog.UserMessage(err),
			})
			return
		}

		items := res.Items
		if items == nil {
			items = []domain.Product{}
		}

		// Facets describe the full result page; the filter narrows the
		// items only.
		facets := domain.ExtractFacets(res.Items)
		if !criteria.IsZero() {
			items = domain.ApplyFilter(items, criteria)
		}

		writeJSON(w, http.StatusOK, searchResponse{
			Query:  res.Query,
			Items:  items,
			Facets: facets,
			Empty:  res.Empty,
		})
	}
}

type suggestResponse struct {
	Suggestions []string `json:"suggestions"`
}

// Suggest returns history entries matching the typed prefix. Unlike
// /search it never records history.
func Suggest(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		partial := strings.TrimSpace(r.URL.Query().Get("q"))

		suggestions := d.Orchestrator.Suggestions(partial)
		if suggestions == nil {
			suggestions = []string{}
		}

		writeJSON(w, http.StatusOK, suggestResponse{Suggestions: suggestions})
	}
}
