package domain

import "time"

// SearchFilter carries the optional, conjunctive search constraints.
// Zero values mean "not set"; From/To are inclusive bounds on PublishedAt.
type SearchFilter struct {
	Query    string    `json:"query,omitempty"`
	Provider string    `json:"provider,omitempty"`
	Category string    `json:"category,omitempty"`
	From     time.Time `json:"from,omitempty"`
	To       time.Time `json:"to,omitempty"`
}

// SearchResult is one page of matches plus pagination totals. It is the
// unit cached by the search engine, encoded as JSON with RFC3339 dates.
type SearchResult struct {
	Articles   []StoredArticle `json:"articles"`
	Total      int             `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}
