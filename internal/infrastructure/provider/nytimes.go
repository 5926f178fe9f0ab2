package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

const (
	nytimesBaseURL = "https://api.nytimes.com/svc/search/v2"
	nytimesName    = "NYTimes"
	// The article search API has very strict limits.
	nytimesDelay = 10 * time.Second
)

// NYTimesSource fetches from the NYT article search API. The API serves a
// fixed 10 results per page and answers 429 when throttled; a throttled
// call yields an empty batch rather than an error.
type NYTimesSource struct {
	apiKey  string
	baseURL string
	client  *http.Client
	logger  *slog.Logger
}

var _ ports.NewsSource = (*NYTimesSource)(nil)

// NewNYTimesSource wires an HTTP client; a nil client gets a 30s timeout default.
func NewNYTimesSource(apiKey string, client *http.Client, logger *slog.Logger) *NYTimesSource {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	return &NYTimesSource{
		apiKey:  apiKey,
		baseURL: nytimesBaseURL,
		client:  client,
		logger:  logger,
	}
}

// Name identifies the provider in run summaries and stored articles.
func (n *NYTimesSource) Name() string {
	return nytimesName
}

// RateLimitDelay is deliberately generous; the NYT bans aggressive callers.
func (n *NYTimesSource) RateLimitDelay() time.Duration {
	return nytimesDelay
}

// Fetch queries /articlesearch.json. Page size is fixed by the API, so the
// option is ignored here.
func (n *NYTimesSource) Fetch(ctx context.Context, opts ports.FetchOptions) ([]domain.Article, error) {
	params := url.Values{}
	params.Set("api-key", n.apiKey)
	if opts.Query != "" {
		params.Set("q", opts.Query)
	}
	if opts.Category != "" {
		params.Set("fq", fmt.Sprintf("section_name:(%q)", opts.Category))
	}
	if !opts.From.IsZero() {
		params.Set("begin_date", opts.From.Format("20060102"))
	}

	endpoint := n.baseURL + "/articlesearch.json?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("nytimes: build request: %w", err)
	}

	resp, err := n.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("nytimes: fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		n.warn("rate limit hit, returning empty batch")
		return []domain.Article{}, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("nytimes: unexpected status %s", resp.Status)
	}

	var envelope struct {
		Response struct {
			Docs []json.RawMessage `json:"docs"`
		} `json:"response"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("nytimes: decode: %w", err)
	}

	articles := make([]domain.Article, 0, len(envelope.Response.Docs))
	for _, raw := range envelope.Response.Docs {
		article, err := n.transform(raw)
		if err != nil {
			n.debug("skip article", "error", err)
			continue
		}
		articles = append(articles, article)
	}

	return articles, nil
}

func (n *NYTimesSource) transform(raw json.RawMessage) (domain.Article, error) {
	var doc struct {
		Headline struct {
			Main string `json:"main"`
		} `json:"headline"`
		Abstract      string `json:"abstract"`
		Snippet       string `json:"snippet"`
		LeadParagraph string `json:"lead_paragraph"`
		WebURL        string `json:"web_url"`
		SectionName   string `json:"section_name"`
		PubDate       string `json:"pub_date"`
		Byline        struct {
			Original string `json:"original"`
		} `json:"byline"`
		Multimedia []struct {
			URL     string `json:"url"`
			Subtype string `json:"subtype"`
		} `json:"multimedia"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return domain.Article{}, fmt.Errorf("nytimes: malformed doc: %w", err)
	}

	if doc.Headline.Main == "" || doc.WebURL == "" {
		return domain.Article{}, fmt.Errorf("nytimes: doc missing headline or url")
	}

	description := doc.Abstract
	if description == "" {
		description = doc.Snippet
	}

	// Multimedia URLs are relative; prefer the xlarge rendition.
	imageURL := ""
	if len(doc.Multimedia) > 0 {
		best := doc.Multimedia[0]
		for _, m := range doc.Multimedia {
			if m.Subtype == "xlarge" {
				best = m
				break
			}
		}
		if best.URL != "" {
			imageURL = "https://www.nytimes.com/" + best.URL
		}
	}

	return domain.Article{
		Title:       doc.Headline.Main,
		Description: description,
		Body:        doc.LeadParagraph,
		URL:         doc.WebURL,
		Provider:    nytimesName,
		Author:      doc.Byline.Original,
		Category:    doc.SectionName,
		PublishedAt: parsePublished(doc.PubDate),
		ImageURL:    imageURL,
		Raw:         raw,
	}, nil
}

func (n *NYTimesSource) debug(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Debug(msg, args...)
	}
}

func (n *NYTimesSource) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}
