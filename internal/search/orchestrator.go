package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/jloaiza/melisearch/internal/catalog"
	"github.com/jloaiza/melisearch/internal/domain"
	"github.com/jloaiza/melisearch/internal/index"
	"github.com/jloaiza/melisearch/internal/logger"
)

// ErrEmptyQuery is returned when a search is invoked with a blank
// query. The caller layer is expected to never do that.
var ErrEmptyQuery = errors.New("search: empty query")

// CatalogClient issues catalog search requests.
type CatalogClient interface {
	Search(ctx context.Context, query string) ([]catalog.Record, error)
}

// HistoryStore persists the bounded search history.
type HistoryStore interface {
	Save(ctx context.Context, query string) error
	Fetch(ctx context.Context) ([]string, error)
	Clear(ctx context.Context) error
}

// FavoritesStore persists favorite product snapshots.
type FavoritesStore interface {
	Add(ctx context.Context, entry domain.FavoriteEntry) error
	Remove(ctx context.Context, id string) error
	Contains(ctx context.Context, id string) (bool, error)
	ContainsMany(ctx context.Context, ids []string) (map[string]bool, error)
	All(ctx context.Context) ([]domain.FavoriteEntry, error)
}

// Result is the outcome of one successful search. Empty marks the
// distinguished zero-results state: a success the UI renders as an
// empty list, not a failure banner.
type Result struct {
	Query string
	Items []domain.Product
	Empty bool
}

// Orchestrator coordinates the catalog client, the stores and the
// in-memory history cache. It owns the current result semantics:
// mapping raw records, annotating favorite flags, deriving facets and
// driving history updates on explicit submission.
//
// Two concurrent searches are not ordered: whichever completes last
// wins for whatever the caller is displaying. There is no cancellation
// of in-flight requests; a caller that needs it must discard late
// results itself.
type Orchestrator struct {
	catalog   CatalogClient
	history   HistoryStore
	favorites FavoritesStore
	badges    catalog.BadgeSource
	cache     *index.HistoryIndex
	logger    logger.Logger

	mu    sync.Mutex
	state State
}

// NewOrchestrator wires an orchestrator. One instance per process is
// wired at startup; the stores stay injectable for tests.
func NewOrchestrator(
	client CatalogClient,
	history HistoryStore,
	favorites FavoritesStore,
	badges catalog.BadgeSource,
	log logger.Logger,
) *Orchestrator {
	return &Orchestrator{
		catalog:   client,
		history:   history,
		favorites: favorites,
		badges:    badges,
		cache:     index.NewHistoryIndex(),
		logger:    log,
		state:     StateIdle,
	}
}

// LoadHistory warms the in-memory history cache from the store.
// Called once at startup.
func (o *Orchestrator) LoadHistory(ctx context.Context) error {
	queries, err := o.history.Fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to load search history: %w", err)
	}
	o.cache.Replace(queries)
	return nil
}

// RunSearch executes one catalog search and returns the normalized,
// favorite-annotated result list. It does not touch history; that is
// SubmitSearch's job.
func (o *Orchestrator) RunSearch(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}

	records, err := o.catalog.Search(ctx, query)
	if err != nil {
		o.logger.Warn("search failed",
			logger.String("query", query),
			logger.Error(err))
		return Result{Query: query}, err
	}

	items := catalog.MapRecords(records, o.badges)
	if len(items) == 0 {
		o.logger.Info("search returned no products",
			logger.String("query", query))
		return Result{Query: query, Empty: true}, nil
	}

	o.annotateFavorites(ctx, items)

	o.logger.Info("search completed",
		logger.String("query", query),
		logger.Int("results", len(items)))

	return Result{Query: query, Items: items}, nil
}

// SubmitSearch is the explicit-confirmation path: it records the query
// in history, refreshes the cache and then runs the search. The
// submission also drives the session state to Results or Empty.
func (o *Orchestrator) SubmitSearch(ctx context.Context, query string) (Result, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return Result{}, ErrEmptyQuery
	}

	// A history failure must not block the search itself.
	if err := o.history.Save(ctx, query); err != nil {
		o.logger.Warn("failed to save search history",
			logger.String("query", query),
			logger.Error(err))
	} else {
		o.refreshHistory(ctx)
	}

	res, err := o.RunSearch(ctx, query)

	o.mu.Lock()
	o.state = o.state.NextOnSubmit(err == nil && !res.Empty)
	o.mu.Unlock()

	return res, err
}

// History returns the cached query list, most-recently-used first,
// capped at the store limit.
func (o *Orchestrator) History() []string {
	return o.cache.All()
}

// Suggestions returns history entries starting with partial,
// case-insensitively. An empty partial yields the full history.
func (o *Orchestrator) Suggestions(partial string) []string {
	return o.cache.MatchPrefix(partial)
}

// ClearHistory removes every saved query.
func (o *Orchestrator) ClearHistory(ctx context.Context) error {
	if err := o.history.Clear(ctx); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	o.cache.Replace(nil)
	return nil
}

// ToggleFavorite flips the favorite flag on a copy of item and syncs
// the store: favorited upserts a snapshot, unfavorited removes it by
// ID. The updated copy is returned for the caller to splice back into
// its working list. Applying it twice restores the original state.
func (o *Orchestrator) ToggleFavorite(ctx context.Context, item domain.Product) (domain.Product, error) {
	toggled := item
	toggled.Favorite = !item.Favorite

	if toggled.Favorite {
		entry := domain.NewFavoriteEntry(toggled, time.Now())
		if err := o.favorites.Add(ctx, entry); err != nil {
			return item, fmt.Errorf("failed to add favorite %s: %w", item.ID, err)
		}
	} else {
		if err := o.favorites.Remove(ctx, item.ID); err != nil {
			return item, fmt.Errorf("failed to remove favorite %s: %w", item.ID, err)
		}
	}

	return toggled, nil
}

// RemoveFavorite deletes a favorite by product ID.
func (o *Orchestrator) RemoveFavorite(ctx context.Context, id string) error {
	if err := o.favorites.Remove(ctx, id); err != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", id, err)
	}
	return nil
}

// Favorites returns every persisted favorite as a view item.
func (o *Orchestrator) Favorites(ctx context.Context) ([]domain.Product, error) {
	entries, err := o.favorites.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	items := make([]domain.Product, 0, len(entries))
	for _, entry := range entries {
		items = append(items, entry.Product())
	}
	return items, nil
}

// TextChanged advances the session state as the user types.
func (o *Orchestrator) TextChanged(text string) State {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = o.state.NextOnTextChange(text)
	return o.state
}

// Cancel resets the session to idle.
func (o *Orchestrator) Cancel() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.state = o.state.NextOnCancel()
	return o.state
}

// State returns the current session state.
func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()

	return o.state
}

// annotateFavorites sets the favorite flag on every item present in
// the favorites store. Best effort: a store failure leaves all flags
// false rather than failing the search.
func (o *Orchestrator) annotateFavorites(ctx context.Context, items []domain.Product) {
	ids := make([]string, len(items))
	for i, item := range items {
		ids[i] = item.ID
	}

	favorited, err := o.favorites.ContainsMany(ctx, ids)
	if err != nil {
		o.logger.Warn("failed to annotate favorites",
			logger.Error(err))
		return
	}

	for i := range items {
		items[i].Favorite = favorited[items[i].ID]
	}
}

// refreshHistory reloads the cache from the store. Best effort.
func (o *Orchestrator) refreshHistory(ctx context.Context) {
	queries, err := o.history.Fetch(ctx)
	if err != nil {
		o.logger.Warn("failed to refresh history cache",
			logger.Error(err))
		return
	}
	o.cache.Replace(queries)
}
