package domain

import (
	"encoding/json"
	"time"
)

// Sentiment is the heuristic urgency/positivity label attached on ingestion.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNeutral  Sentiment = "neutral"
	SentimentUrgent   Sentiment = "urgent"
)

// Article is the provider-agnostic record every adapter normalizes into.
// It lives in memory only; the gateway either discards it as a duplicate
// or turns it into a StoredArticle.
type Article struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Body        string          `json:"body,omitempty"`
	URL         string          `json:"url"`
	Provider    string          `json:"provider"`
	Author      string          `json:"author,omitempty"`
	Category    string          `json:"category,omitempty"`
	PublishedAt time.Time       `json:"published_at"`
	ImageURL    string          `json:"image_url,omitempty"`
	Raw         json.RawMessage `json:"raw,omitempty"`
}

// StoredArticle is an Article after deduplication, enrichment, and storage
// assignment. URLHash is unique across all rows; rows are never mutated by
// the ingestion path after insert.
type StoredArticle struct {
	ID              int64     `json:"id"`
	Article         Article   `json:"article"`
	URLHash         string    `json:"url_hash"`
	ReadTimeMinutes int       `json:"read_time_minutes"`
	Sentiment       Sentiment `json:"sentiment"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
