package domain

import (
	"sort"
	"strings"
)

// FilterCriteria is a compound product filter. An empty field imposes no
// constraint; non-empty fields are ANDed and matched case-insensitively
// against the corresponding product field.
type FilterCriteria struct {
	Brand string
	Model string
	Color string
}

// IsZero reports whether no criterion is set.
func (c FilterCriteria) IsZero() bool {
	return c.Brand == "" && c.Model == "" && c.Color == ""
}

// ApplyFilter returns the subset of items matching every set criterion.
// With zero criteria the input is returned unchanged.
func ApplyFilter(items []Product, c FilterCriteria) []Product {
	if c.IsZero() {
		return items
	}

	filtered := make([]Product, 0, len(items))
	for _, item := range items {
		if !matchesCriterion(item.Brand, c.Brand) {
			continue
		}
		if !matchesCriterion(item.Model, c.Model) {
			continue
		}
		if !matchesCriterion(item.Color, c.Color) {
			continue
		}
		filtered = append(filtered, item)
	}
	return filtered
}

// matchesCriterion compares a product field against a criterion.
// An empty criterion always matches.
func matchesCriterion(value, want string) bool {
	if want == "" {
		return true
	}
	return strings.EqualFold(value, want)
}

// Facets are the distinct attribute values present in a result set,
// used to populate filter options.
type Facets struct {
	Brands []string `json:"brands"`
	Models []string `json:"models"`
	Colors []string `json:"colors"`
}

// ExtractFacets collects the distinct non-empty brand, model and color
// values across items. Each list is sorted ascending on the stored
// string; casing is preserved (lowercasing happens only when filtering).
func ExtractFacets(items []Product) Facets {
	return Facets{
		Brands: distinctValues(items, func(p Product) string { return p.Brand }),
		Models: distinctValues(items, func(p Product) string { return p.Model }),
		Colors: distinctValues(items, func(p Product) string { return p.Color }),
	}
}

func distinctValues(items []Product, field func(Product) string) []string {
	seen := make(map[string]struct{}, len(items))
	values := make([]string, 0, len(items))
	for _, item := range items {
		v := field(item)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	sort.Strings(values)
	return values
}
