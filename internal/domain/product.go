package domain

import "time"

// Product is the view-ready unit produced from one catalog search.
//
// It is NOT tied to the catalog wire schema or Redis. Raw records are
// normalized into this structure and discarded; the slice returned by a
// search owns its items until the next search replaces it.
//
// A Product is uniquely identified by its catalog ID.
type Product struct {
	// ID is the catalog product identifier. Required; records without
	// one never become a Product.
	ID string `json:"id"`

	// Name is the display name. Required, same rule as ID.
	Name string `json:"name"`

	// ImageURL is the URL of the first catalog picture, empty when the
	// record carries no pictures.
	ImageURL string `json:"image_url,omitempty"`

	// Brand, Model and Color are extracted from the record's attribute
	// list. Empty means the attribute was absent.
	Brand string `json:"brand,omitempty"`
	Model string `json:"model,omitempty"`
	Color string `json:"color,omitempty"`

	// Badges are cosmetic labels derived from badge rules. May be empty.
	Badges []Badge `json:"badges,omitempty"`

	// Favorite is true when the favorites store holds an entry with the
	// same ID. Mutable after construction.
	Favorite bool `json:"favorite"`
}

// Badge is a cosmetic product label (e.g. "free_shipping").
// It carries no business logic.
type Badge string

// FavoriteEntry is the persisted snapshot of a Product at the moment it
// was favorited. It is a durable copy, not a live reference to search
// results, and is unique by product ID.
type FavoriteEntry struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	ImageURL string    `json:"image_url,omitempty"`
	Brand    string    `json:"brand,omitempty"`
	Model    string    `json:"model,omitempty"`
	Color    string    `json:"color,omitempty"`
	Badges   []Badge   `json:"badges,omitempty"`
	SavedAt  time.Time `json:"saved_at"`
}

// NewFavoriteEntry snapshots a product into a favorite entry.
func NewFavoriteEntry(p Product, now time.Time) FavoriteEntry {
	badges := make([]Badge, len(p.Badges))
	copy(badges, p.Badges)

	return FavoriteEntry{
		ID:       p.ID,
		Name:     p.Name,
		ImageURL: p.ImageURL,
		Brand:    p.Brand,
		Model:    p.Model,
		Color:    p.Color,
		Badges:   badges,
		SavedAt:  now,
	}
}

// Product rebuilds a view item from the snapshot. The favorite flag is
// always true: the entry only exists while the product is favorited.
func (e FavoriteEntry) Product() Product {
	badges := make([]Badge, len(e.Badges))
	copy(badges, e.Badges)

	return Product{
		ID:       e.ID,
		Name:     e.Name,
		ImageURL: e.ImageURL,
		Brand:    e.Brand,
		Model:    e.Model,
		Color:    e.Color,
		Badges:   badges,
		Favorite: true,
	}
}
