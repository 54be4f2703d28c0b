package search

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/jloaiza/melisearch/internal/catalog"
	"github.com/jloaiza/melisearch/internal/domain"
	"github.com/jloaiza/melisearch/internal/logger"
)

type fakeCatalog struct {
	records []catalog.Record
	err     error
	queries []string
}

func (f *fakeCatalog) Search(_ context.Context, query string) ([]catalog.Record, error) {
	f.queries = append(f.queries, query)
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

// fakeHistory mirrors the store semantics: most-recently-used first,
// duplicates moved to the front, capped at ten entries.
type fakeHistory struct {
	queries  []string
	saveErr  error
	fetchErr error
}

func (f *fakeHistory) Save(_ context.Context, query string) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	kept := make([]string, 0, len(f.queries)+1)
	kept = append(kept, query)
	for _, q := range f.queries {
		if q != query {
			kept = append(kept, q)
		}
	}
	if len(kept) > 10 {
		kept = kept[:10]
	}
	f.queries = kept
	return nil
}

func (f *fakeHistory) Fetch(_ context.Context) ([]string, error) {
	if f.fetchErr != nil {
		return nil, f.fetchErr
	}
	return append([]string(nil), f.queries...), nil
}

func (f *fakeHistory) Clear(_ context.Context) error {
	f.queries = nil
	return nil
}

type fakeFavorites struct {
	entries  map[string]domain.FavoriteEntry
	addErr   error
	batchErr error
}

func newFakeFavorites() *fakeFavorites {
	return &fakeFavorites{entries: make(map[string]domain.FavoriteEntry)}
}

func (f *fakeFavorites) Add(_ context.Context, entry domain.FavoriteEntry) error {
	if f.addErr != nil {
		return f.addErr
	}
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeFavorites) Remove(_ context.Context, id string) error {
	delete(f.entries, id)
	return nil
}

func (f *fakeFavorites) Contains(_ context.Context, id string) (bool, error) {
	_, ok := f.entries[id]
	return ok, nil
}

func (f *fakeFavorites) ContainsMany(_ context.Context, ids []string) (map[string]bool, error) {
	if f.batchErr != nil {
		return nil, f.batchErr
	}
	out := make(map[string]bool, len(ids))
	for _, id := range ids {
		_, out[id] = f.entries[id]
	}
	return out, nil
}

func (f *fakeFavorites) All(_ context.Context) ([]domain.FavoriteEntry, error) {
	out := make([]domain.FavoriteEntry, 0, len(f.entries))
	for _, e := range f.entries {
		out = append(out, e)
	}
	return out, nil
}

type noBadges struct{}

func (noBadges) BadgesFor(catalog.Record) []domain.Badge { return nil }

func newTestOrchestrator(cat *fakeCatalog, hist *fakeHistory, favs *fakeFavorites) *Orchestrator {
	return NewOrchestrator(cat, hist, favs, noBadges{}, logger.NewNop())
}

func sampleRecords() []catalog.Record {
	return []catalog.Record{
		{
			ID:   "MLM1",
			Name: "Sony WH-1000XM5",
			Attributes: []catalog.Attribute{
				{ID: catalog.AttrBrand, ValueName: "Sony"},
				{ID: catalog.AttrColor, ValueName: "Black"},
			},
		},
		{
			ID:   "MLM2",
			Name: "Apple AirPods Pro",
			Attributes: []catalog.Attribute{
				{ID: catalog.AttrBrand, ValueName: "Apple"},
			},
		},
	}
}

func TestRunSearch(t *testing.T) {
	cat := &fakeCatalog{records: sampleRecords()}
	o := newTestOrchestrator(cat, &fakeHistory{}, newFakeFavorites())

	res, err := o.RunSearch(context.Background(), "  headphones  ")
	if err != nil {
		t.Fatalf("RunSearch() error = %v", err)
	}

	if res.Query != "headphones" {
		t.Errorf("Query = %q, want trimmed %q", res.Query, "headphones")
	}
	if res.Empty {
		t.Error("Empty = true, want false")
	}
	if len(res.Items) != 2 {
		t.Fatalf("Items = %d, want 2", len(res.Items))
	}
	if res.Items[0].Brand != "Sony" || res.Items[1].Brand != "Apple" {
		t.Errorf("brands = %q, %q; want Sony, Apple", res.Items[0].Brand, res.Items[1].Brand)
	}
	if cat.queries[0] != "headphones" {
		t.Errorf("catalog received %q, want trimmed query", cat.queries[0])
	}
}

func TestRunSearchEmptyQuery(t *testing.T) {
	cat := &fakeCatalog{}
	o := newTestOrchestrator(cat, &fakeHistory{}, newFakeFavorites())

	for _, q := range []string{"", "   "} {
		if _, err := o.RunSearch(context.Background(), q); !errors.Is(err, ErrEmptyQuery) {
			t.Errorf("RunSearch(%q) error = %v, want ErrEmptyQuery", q, err)
		}
	}
	if len(cat.queries) != 0 {
		t.Error("blank queries must never reach the catalog")
	}
}

func TestRunSearchNoResults(t *testing.T) {
	o := newTestOrchestrator(&fakeCatalog{}, &fakeHistory{}, newFakeFavorites())

	res, err := o.RunSearch(context.Background(), "zzzz")
	if err != nil {
		t.Fatalf("RunSearch() error = %v", err)
	}
	if !res.Empty {
		t.Error("Empty = false, want true for zero results")
	}
	if len(res.Items) != 0 {
		t.Errorf("Items = %d, want 0", len(res.Items))
	}
}

func TestRunSearchCatalogError(t *testing.T) {
	boom := errors.New("boom")
	o := newTestOrchestrator(&fakeCatalog{err: boom}, &fakeHistory{}, newFakeFavorites())

	_, err := o.RunSearch(context.Background(), "headphones")
	if !errors.Is(err, boom) {
		t.Errorf("RunSearch() error = %v, want wrapped catalog error", err)
	}
}

func TestRunSearchAnnotatesFavorites(t *testing.T) {
	favs := newFakeFavorites()
	favs.entries["MLM2"] = domain.FavoriteEntry{ID: "MLM2", Name: "Apple AirPods Pro"}

	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, &fakeHistory{}, favs)

	res, err := o.RunSearch(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("RunSearch() error = %v", err)
	}
	if res.Items[0].Favorite {
		t.Error("MLM1 flagged favorite, want false")
	}
	if !res.Items[1].Favorite {
		t.Error("MLM2 not flagged favorite, want true")
	}
}

func TestRunSearchFavoriteLookupFailureIsNotFatal(t *testing.T) {
	favs := newFakeFavorites()
	favs.batchErr = errors.New("store down")

	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, &fakeHistory{}, favs)

	res, err := o.RunSearch(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("RunSearch() error = %v, want success despite favorite lookup failure", err)
	}
	for _, item := range res.Items {
		if item.Favorite {
			t.Errorf("item %s flagged favorite, want all false on lookup failure", item.ID)
		}
	}
}

func TestSubmitSearchRecordsHistory(t *testing.T) {
	hist := &fakeHistory{}
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, hist, newFakeFavorites())

	if _, err := o.SubmitSearch(context.Background(), "headphones"); err != nil {
		t.Fatalf("SubmitSearch() error = %v", err)
	}
	if _, err := o.SubmitSearch(context.Background(), "laptop"); err != nil {
		t.Fatalf("SubmitSearch() error = %v", err)
	}

	want := []string{"laptop", "headphones"}
	if got := o.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %v, want %v", got, want)
	}
}

func TestSubmitSearchDeduplicatesHistory(t *testing.T) {
	hist := &fakeHistory{}
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, hist, newFakeFavorites())

	for _, q := range []string{"headphones", "laptop", "headphones"} {
		if _, err := o.SubmitSearch(context.Background(), q); err != nil {
			t.Fatalf("SubmitSearch(%q) error = %v", q, err)
		}
	}

	want := []string{"headphones", "laptop"}
	if got := o.History(); !reflect.DeepEqual(got, want) {
		t.Errorf("History() = %v, want repeat moved to front %v", got, want)
	}
}

func TestSubmitSearchHistoryFailureDoesNotBlock(t *testing.T) {
	hist := &fakeHistory{saveErr: errors.New("redis down")}
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, hist, newFakeFavorites())

	res, err := o.SubmitSearch(context.Background(), "headphones")
	if err != nil {
		t.Fatalf("SubmitSearch() error = %v, want success despite history failure", err)
	}
	if len(res.Items) != 2 {
		t.Errorf("Items = %d, want 2", len(res.Items))
	}
}

func TestSubmitSearchDrivesState(t *testing.T) {
	t.Run("results", func(t *testing.T) {
		o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, &fakeHistory{}, newFakeFavorites())
		if _, err := o.SubmitSearch(context.Background(), "headphones"); err != nil {
			t.Fatalf("SubmitSearch() error = %v", err)
		}
		if got := o.State(); got != StateResults {
			t.Errorf("State() = %v, want StateResults", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		o := newTestOrchestrator(&fakeCatalog{}, &fakeHistory{}, newFakeFavorites())
		if _, err := o.SubmitSearch(context.Background(), "zzzz"); err != nil {
			t.Fatalf("SubmitSearch() error = %v", err)
		}
		if got := o.State(); got != StateEmpty {
			t.Errorf("State() = %v, want StateEmpty", got)
		}
	})

	t.Run("failure", func(t *testing.T) {
		o := newTestOrchestrator(&fakeCatalog{err: errors.New("boom")}, &fakeHistory{}, newFakeFavorites())
		if _, err := o.SubmitSearch(context.Background(), "headphones"); err == nil {
			t.Fatal("SubmitSearch() should propagate catalog error")
		}
		if got := o.State(); got != StateEmpty {
			t.Errorf("State() = %v, want StateEmpty on failure", got)
		}
	})
}

func TestSuggestions(t *testing.T) {
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, &fakeHistory{}, newFakeFavorites())

	for _, q := range []string{"laptop", "iPhone 15", "iphone case"} {
		if _, err := o.SubmitSearch(context.Background(), q); err != nil {
			t.Fatalf("SubmitSearch(%q) error = %v", q, err)
		}
	}

	got := o.Suggestions("IPH")
	want := []string{"iphone case", "iPhone 15"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Suggestions(IPH) = %v, want %v", got, want)
	}
}

func TestLoadHistoryWarmsCache(t *testing.T) {
	hist := &fakeHistory{queries: []string{"laptop", "headphones"}}
	o := newTestOrchestrator(&fakeCatalog{}, hist, newFakeFavorites())

	if err := o.LoadHistory(context.Background()); err != nil {
		t.Fatalf("LoadHistory() error = %v", err)
	}
	if got := o.History(); !reflect.DeepEqual(got, []string{"laptop", "headphones"}) {
		t.Errorf("History() after warm = %v", got)
	}
}

func TestClearHistory(t *testing.T) {
	hist := &fakeHistory{}
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, hist, newFakeFavorites())

	if _, err := o.SubmitSearch(context.Background(), "headphones"); err != nil {
		t.Fatalf("SubmitSearch() error = %v", err)
	}
	if err := o.ClearHistory(context.Background()); err != nil {
		t.Fatalf("ClearHistory() error = %v", err)
	}

	if got := o.History(); len(got) != 0 {
		t.Errorf("History() after clear = %v, want empty", got)
	}
	if len(hist.queries) != 0 {
		t.Error("store not cleared")
	}
}

func TestToggleFavoriteRoundTrip(t *testing.T) {
	favs := newFakeFavorites()
	o := newTestOrchestrator(&fakeCatalog{}, &fakeHistory{}, favs)

	item := domain.Product{ID: "MLM1", Name: "Sony WH-1000XM5", Brand: "Sony"}

	on, err := o.ToggleFavorite(context.Background(), item)
	if err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}
	if !on.Favorite {
		t.Error("first toggle should set Favorite")
	}
	if item.Favorite {
		t.Error("input item must not be mutated")
	}
	if _, ok := favs.entries["MLM1"]; !ok {
		t.Error("snapshot not persisted after first toggle")
	}

	off, err := o.ToggleFavorite(context.Background(), on)
	if err != nil {
		t.Fatalf("second ToggleFavorite() error = %v", err)
	}
	if off.Favorite {
		t.Error("second toggle should clear Favorite")
	}
	if _, ok := favs.entries["MLM1"]; ok {
		t.Error("snapshot not removed after second toggle")
	}
}

func TestToggleFavoriteStoreFailure(t *testing.T) {
	favs := newFakeFavorites()
	favs.addErr = errors.New("redis down")
	o := newTestOrchestrator(&fakeCatalog{}, &fakeHistory{}, favs)

	item := domain.Product{ID: "MLM1", Name: "Sony WH-1000XM5"}
	got, err := o.ToggleFavorite(context.Background(), item)
	if err == nil {
		t.Fatal("ToggleFavorite() should fail when the store does")
	}
	if got.Favorite {
		t.Error("failed toggle must return the item unchanged")
	}
}

func TestFavoritesListing(t *testing.T) {
	favs := newFakeFavorites()
	o := newTestOrchestrator(&fakeCatalog{}, &fakeHistory{}, favs)

	item := domain.Product{ID: "MLM1", Name: "Sony WH-1000XM5", Brand: "Sony", Badges: []domain.Badge{"official"}}
	if _, err := o.ToggleFavorite(context.Background(), item); err != nil {
		t.Fatalf("ToggleFavorite() error = %v", err)
	}

	listed, err := o.Favorites(context.Background())
	if err != nil {
		t.Fatalf("Favorites() error = %v", err)
	}
	if len(listed) != 1 {
		t.Fatalf("Favorites() = %d items, want 1", len(listed))
	}
	got := listed[0]
	if got.ID != "MLM1" || got.Name != "Sony WH-1000XM5" || got.Brand != "Sony" || !got.Favorite {
		t.Errorf("listed favorite = %+v", got)
	}
	if len(got.Badges) != 1 || got.Badges[0] != "official" {
		t.Errorf("badges = %v, want [official]", got.Badges)
	}
}

func TestSessionStateFlow(t *testing.T) {
	o := newTestOrchestrator(&fakeCatalog{records: sampleRecords()}, &fakeHistory{}, newFakeFavorites())

	if got := o.State(); got != StateIdle {
		t.Fatalf("initial State() = %v, want StateIdle", got)
	}
	if got := o.TextChanged("ip"); got != StateSuggesting {
		t.Errorf("TextChanged(ip) = %v, want StateSuggesting", got)
	}
	if _, err := o.SubmitSearch(context.Background(), "headphones"); err != nil {
		t.Fatalf("SubmitSearch() error = %v", err)
	}
	if got := o.State(); got != StateResults {
		t.Errorf("State() = %v, want StateResults", got)
	}
	if got := o.Cancel(); got != StateIdle {
		t.Errorf("Cancel() = %v, want StateIdle", got)
	}
}
