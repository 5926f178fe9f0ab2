package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

const (
	newsAPIBaseURL         = "https://newsapi.org/v2"
	newsAPIMaxPage         = 100
	newsAPIName            = "NewsAPI"
	newsAPIDelay           = time.Second
	newsAPIDefaultCategory = "general"
)

// NewsAPISource fetches from newsapi.org. The payload carries no category,
// so articles take the caller's category hint or a default label.
type NewsAPISource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.NewsSource = (*NewsAPISource)(nil)

// NewNewsAPISource wires an HTTP client; a nil client gets a 30s timeout default.
func NewNewsAPISource(apiKey string, client *http.Client, logger *slog.Logger) *NewsAPISource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &NewsAPISource{
		apiKey:  apiKey,
		baseURL: newsAPIBaseURL,
		client:  client,
		logger:  logger,
	}
}

// Name identifies the provider in run summaries and stored articles.
func (n *NewsAPISource) Name() string {
	return newsAPIName
}

// RateLimitDelay keeps the orchestrator at one request per second.
func (n *NewsAPISource) RateLimitDelay() time.Duration {
	return newsAPIDelay
}

// Fetch hits /everything when a query is present, /top-headlines otherwise.
func (n *NewsAPISource) Fetch(ctx context.Context, opts ports.FetchOptions) ([]domain.Article, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > newsAPIMaxPage {
		pageSize = newsAPIMaxPage
	}

	params := url.Values{}
	params.Set("apiKey", n.apiKey)
	params.Set("pageSize", strconv.Itoa(pageSize))
	params.Set("language", "en")

	path := "/top-headlines"
	if opts.Query != "" {
		path = "/everything"
		params.Set("q", opts.Query)
	} else if opts.Category != "" {
		params.Set("category", opts.Category)
	}
	if !opts.From.IsZero() {
		params.Set("from", opts.From.Format(time.RFC3339))
	}

	endpoint := n.baseURL + path + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("newsapi: build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("newsapi: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi: unexpected status %s", resp.Status)
	}

	var envelope struct {
		Articles []json.RawMessage `json:"articles"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("newsapi: decode: %w", err)
	}

	category := opts.Category
	if category == "" {
		category = newsAPIDefaultCategory
	}

	articles := make([]domain.Article, 0, len(envelope.Articles))
	for _, raw := range envelope.Articles {
		article, err := n.transform(raw, category)
		if err != nil {
			n.debug("skip article", "error", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (n *NewsAPISource) transform(raw json.RawMessage, category string) (domain.Article, error) {
	var item struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Content     string `json:"content"`
		URL         string `json:"url"`
		Author      string `json:"author"`
		PublishedAt string `json:"publishedAt"`
		URLToImage  string `json:"urlToImage"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.Article{}, fmt.Errorf("newsapi: malformed article: %w", err)
	}

	if item.Title == "" || item.URL == "" {
		return domain.Article{}, fmt.Errorf("newsapi: article missing title or url")
	}

	return domain.Article{
		Title:       item.Title,
		Description: item.Description,
		Body:        item.Content,
		URL:         item.URL,
		Provider:    newsAPIName,
		Author:      item.Author,
		Category:    category,
		PublishedAt: parsePublished(item.PublishedAt),
		ImageURL:    item.URLToImage,
		Raw:         raw,
	}, nil
}

func (n *NewsAPISource) debug(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Debug(msg, args...)
	}
}
