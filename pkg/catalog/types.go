// Package catalog defines the catalog data model and the cursor-driven
// pagination loop used to collect items from the upstream search API.
package catalog

// Item is a single catalog entry. Identity is ID; Name is descriptive only.
type Item struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// Page is one page of the upstream search response.
type Page struct {
	Data           []Item `json:"data"`
	NextPageCursor string `json:"nextPageCursor"`
}

// Source is one configured catalog endpoint. The URL carries all fixed query
// parameters; the paginator appends the Cursor parameter on top of it.
type Source struct {
	// Name identifies the source in logs and metrics.
	Name string

	// URL is the full request URL including fixed query parameters.
	URL string

	// File is the output file path this source writes into. Multiple sources
	// may share one file; their items are deduplicated against each other.
	File string
}
