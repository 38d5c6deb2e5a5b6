package askshelf

// Answer is the reply to one catalog question.
type Answer struct {
	Reply        string `json:"reply"`
	Intent       string `json:"intent"`
	ResultsFound int    `json:"results_found"`
	Items        []Item `json:"items,omitempty"`
}

// Item is one catalog entry.
type Item struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copies    int    `json:"copies"`
	Available bool   `json:"available"`
	Location  string `json:"location,omitempty"`
	MaxPages  int    `json:"max_pages,omitempty"`
}

// ItemInput is the payload for UpsertItem.
type ItemInput struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copies    int    `json:"copies"`
	Available bool   `json:"available"`
	Location  string `json:"location,omitempty"`
	MaxPages  int    `json:"max_pages,omitempty"`
}

// ItemPage is one page of the catalog listing.
type ItemPage struct {
	Items      []Item `json:"items"`
	HasMore    bool   `json:"has_more"`
	NextCursor string `json:"next_cursor,omitempty"`
}

// Health is the server health report.
type Health struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// RebuildSummary reports what a rebuild touched.
type RebuildSummary struct {
	Items    int `json:"items"`
	Embedded int `json:"embedded"`
	Skipped  int `json:"skipped"`
}

type askRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
