package catalog

import "github.com/jloaiza/melisearch/internal/domain"

// Attribute keys the mapper extracts into dedicated product fields.
const (
	AttrBrand = "BRAND"
	AttrModel = "MODEL"
	AttrColor = "COLOR"
)

// BadgeSource derives cosmetic badges for a raw record.
// A nil source means no badges.
type BadgeSource interface {
	BadgesFor(rec Record) []domain.Badge
}

// AttributeValue returns the value of the first attribute whose ID
// equals key (exact match), or ok=false if no such attribute exists.
func AttributeValue(rec Record, key string) (string, bool) {
	for _, attr := range rec.Attributes {
		if attr.ID == key {
			return attr.ValueName, true
		}
	}
	return "", false
}

// MapRecord normalizes one raw record into a product. Records missing
// their ID or name are dropped (ok=false), never reported as errors.
func MapRecord(rec Record, badges BadgeSource) (domain.Product, bool) {
	if rec.ID == "" || rec.Name == "" {
		return domain.Product{}, false
	}

	p := domain.Product{
		ID:   rec.ID,
		Name: rec.Name,
	}

	if len(rec.Pictures) > 0 {
		p.ImageURL = rec.Pictures[0].URL
	}
	p.Brand, _ = AttributeValue(rec, AttrBrand)
	p.Model, _ = AttributeValue(rec, AttrModel)
	p.Color, _ = AttributeValue(rec, AttrColor)

	if badges != nil {
		p.Badges = badges.BadgesFor(rec)
	}

	return p, true
}

// MapRecords maps a result page, silently excluding invalid records.
func MapRecords(recs []Record, badges BadgeSource) []domain.Product {
	items := make([]domain.Product, 0, len(recs))
	for _, rec := range recs {
		if p, ok := MapRecord(rec, badges); ok {
			items = append(items, p)
		}
	}
	return items
}
