package catalog

// SearchResponse is the top-level envelope of the catalog search
// endpoint. Every field is optional on the wire; zero values stand in
// for anything the API omits.
type SearchResponse struct {
	Keywords string   `json:"keywords"`
	Paging   Paging   `json:"paging"`
	Results  []Record `json:"results"`
}

// Paging describes the result window. Only the first page is ever
// requested.
type Paging struct {
	Total  int `json:"total"`
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Record is one raw product as received from the catalog API.
type Record struct {
	ID         string      `json:"id"`
	Name       string      `json:"name"`
	Status     string      `json:"status"`
	DomainID   string      `json:"domain_id"`
	SiteID     string      `json:"site_id"`
	Attributes []Attribute `json:"attributes"`
	Pictures   []Picture   `json:"pictures"`
}

// Attribute is a named product attribute. ID is the attribute key
// (e.g. "BRAND"), ValueName the human-readable value.
type Attribute struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	ValueID   string `json:"value_id"`
	ValueName string `json:"value_name"`
}

// Picture is a product image reference.
type Picture struct {
	ID  string `json:"id"`
	URL string `json:"url"`
}
