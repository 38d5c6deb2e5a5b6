package chi

import (
	"strconv"

	"github.com/askshelf/askshelf/internal/domain"
	"github.com/askshelf/askshelf/internal/domain/item"
)

// Error response codes.
const (
	codeBadRequest             = "bad_request"
	codeValidationFailed       = "validation_failed"
	codeEmptyQuery             = "empty_query"
	codeItemNotFound           = "item_not_found"
	codeStoreUnavailable       = "store_unavailable"
	codeEmbeddingProviderError = "embedding_provider_error"
	codeRendererError          = "renderer_error"
	codeInternalError          = "internal_error"
)

// ErrorResponse is the wire shape of every error.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// AskRequest is the body of POST /ask.
type AskRequest struct {
	Query string `json:"query"`
}

// AskResponse is the body of a successful POST /ask.
type AskResponse struct {
	Reply        string         `json:"reply"`
	Intent       string         `json:"intent"`
	ResultsFound int            `json:"results_found"`
	Items        []ItemResponse `json:"items,omitempty"`
}

// ItemResponse is the wire shape of a catalog item.
type ItemResponse struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copies    int    `json:"copies"`
	Available bool   `json:"available"`
	Location  string `json:"location,omitempty"`
	MaxPages  int    `json:"max_pages,omitempty"`
}

// UpsertItemRequest is the body of PUT /items/{id}.
type UpsertItemRequest struct {
	Title     string `json:"title"`
	Author    string `json:"author"`
	Copies    int    `json:"copies"`
	Available bool   `json:"available"`
	Location  string `json:"location"`
	MaxPages  int    `json:"max_pages"`
}

// ItemListResponse is the body of GET /items.
type ItemListResponse struct {
	Items      []ItemResponse `json:"items"`
	HasMore    bool           `json:"has_more"`
	NextCursor string         `json:"next_cursor,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// RebuildResponse is the body of POST /rebuild.
type RebuildResponse struct {
	Items    int `json:"items"`
	Embedded int `json:"embedded"`
	Skipped  int `json:"skipped"`
}

func itemToResponse(it *item.Item) ItemResponse {
	return ItemResponse{
		ID:        it.ID(),
		Title:     it.Title(),
		Author:    it.Author(),
		Copies:    it.Copies(),
		Available: it.Available(),
		Location:  it.Location(),
		MaxPages:  it.MaxPages(),
	}
}

func answerToResponse(a domain.Answer) AskResponse {
	items := make([]ItemResponse, len(a.Items))
	for i := range a.Items {
		items[i] = itemToResponse(&a.Items[i])
	}
	return AskResponse{
		Reply:        a.Reply,
		Intent:       string(a.Intent),
		ResultsFound: a.ResultsFound,
		Items:        items,
	}
}

// paginateItems slices an already-sorted item list by an id cursor.
func paginateItems(items []ItemResponse, cursor, limitStr string) ItemListResponse {
	limit := defaultPageSize
	if limitStr != "" {
		if n, err := strconv.Atoi(limitStr); err == nil && n > 0 {
			limit = n
		}
	}

	startIdx := 0
	if cursor != "" {
		for i := range items {
			if items[i].ID == cursor {
				startIdx = i + 1
				break
			}
		}
	}

	end := startIdx + limit
	if end > len(items) {
		end = len(items)
	}

	page := items[startIdx:end]
	hasMore := end < len(items)

	resp := ItemListResponse{
		Items:   page,
		HasMore: hasMore,
	}
	if hasMore && len(page) > 0 {
		resp.NextCursor = page[len(page)-1].ID
	}
	return resp
}
