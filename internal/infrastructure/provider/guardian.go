package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

const (
	guardianBaseURL = "https://content.guardianapis.com"
	guardianMaxPage = 50
	guardianName    = "Guardian"
	guardianDelay   = 500 * time.Millisecond
)

// GuardianSource fetches from the Guardian content API. The Guardian has its
// own section taxonomy, returned as-is in the article category.
type GuardianSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.NewsSource = (*GuardianSource)(nil)

// NewGuardianSource wires an HTTP client; a nil client gets a 30s timeout default.
func NewGuardianSource(apiKey string, client *http.Client, logger *slog.Logger) *GuardianSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &GuardianSource{
		apiKey:  apiKey,
		baseURL: guardianBaseURL,
		client:  client,
		logger:  logger,
	}
}

// Name identifies the provider in run summaries and stored articles.
func (g *GuardianSource) Name() string {
	return guardianName
}

// RateLimitDelay honors the Guardian's 2-requests-per-second allowance.
func (g *GuardianSource) RateLimitDelay() time.Duration {
	return guardianDelay
}

// Fetch queries /search and normalizes each result. Records missing a title
// or URL are skipped, never fatal to the batch.
func (g *GuardianSource) Fetch(ctx context.Context, opts ports.FetchOptions) ([]domain.Article, error) {
	pageSize := opts.PageSize
	if pageSize <= 0 || pageSize > guardianMaxPage {
		pageSize = guardianMaxPage
	}

	params := url.Values{}
	params.Set("api-key", g.apiKey)
	params.Set("page-size", strconv.Itoa(pageSize))
	params.Set("show-fields", "all")
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.Category != "" {
		// The Guardian names its sports section "sport".
		section := opts.Category
		if strings.EqualFold(section, "sports") {
			section = "sport"
		}
		params.Set("section", section)
	}
	if !opts.From.IsZero() {
		params.Set("from-date", opts.From.Format("2006-01-02"))
	}

	endpoint := g.baseURL + "/search?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("guardian: build request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("guardian: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("guardian: unexpected status %s", resp.Status)
	}

	var envelope struct {
		Response struct {
			Results []json.RawMessage `json:"results"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("guardian: decode: %w", err)
	}

	articles := make([]domain.Article, 0, len(envelope.Response.Results))
	for _, raw := range envelope.Response.Results {
		article, err := g.transform(raw)
		if err != nil {
			g.debug("skip article", "error", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (g *GuardianSource) transform(raw json.RawMessage) (domain.Article, error) {
	var item struct {
		WebTitle           string `json:"webTitle"`
		WebURL             string `json:"webUrl"`
		WebPublicationDate string `json:"webPublicationDate"`
		SectionName        string `json:"sectionName"`
		Fields             struct {
			TrailText string `json:"trailText"`
			Body      string `json:"body"`
			Byline    string `json:"byline"`
			Thumbnail string `json:"thumbnail"`
		} `json:"fields"`
	}
	if err := json.Unmarshal(raw, &item); err != nil {
		return domain.Article{}, fmt.Errorf("guardian: malformed result: %w", err)
	}

	if item.WebTitle == "" || item.WebURL == "" {
		return domain.Article{}, fmt.Errorf("guardian: article missing title or url")
	}

	return domain.Article{
		Title:       item.WebTitle,
		Description: item.Fields.TrailText,
		Body:        item.Fields.Body,
		URL:         item.WebURL,
		Provider:    guardianName,
		Author:      item.Fields.Byline,
		Category:    item.SectionName,
		PublishedAt: parsePublished(item.WebPublicationDate),
		ImageURL:    item.Fields.Thumbnail,
		Raw:         raw,
	}, nil
}

func (g *GuardianSource) debug(msg string, args ...any) {
	if g.logger != nil {
		g.logger.Debug(msg, args...)
	}
}
