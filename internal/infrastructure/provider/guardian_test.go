package provider

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"NewsPulse/internal/ports"
)

func TestGuardianFetch(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query()
		_, _ = w.Write([]byte(`{
			"response": {
				"results": [
					{
						"webTitle": "Match report",
						"webUrl": "https://example.org/sport/match",
						"webPublicationDate": "2026-08-26T10:00:00Z",
						"sectionName": "Football",
						"fields": {
							"trailText": "A close game",
							"body": "<p>Ninety minutes of drama.</p>",
							"byline": "A. Reporter",
							"thumbnail": "https://example.org/thumb.jpg"
						}
					},
					{
						"webTitle": "Broken entry",
						"webPublicationDate": "2026-08-26T11:00:00Z"
					}
				]
			}
		}`))
	}))
	defer server.Close()

	source := NewGuardianSource("secret", server.Client(), nil)
	source.baseURL = server.URL

	from := time.Date(2026, time.August, 25, 0, 0, 0, 0, time.UTC)
	articles, err := source.Fetch(context.Background(), ports.FetchOptions{
		Category: "sports",
		From:     from,
		PageSize: 500,
	})
	if err != nil {
		t.Fatalf("Fetch error: %v", err)
	}

	if got := gotQuery["api-key"]; len(got) != 1 || got[0] != "secret" {
		t.Fatalf("unexpected api-key param: %v", got)
	}
	if got := gotQuery["page-size"]; len(got) != 1 || got[0] != "50" {
		t.Fatalf("page size should be capped at 50, got %v", got)
	}
	if got := gotQuery["section"]; len(got) != 1 || got[0] != "sport" {
		t.Fatalf("sports should map to guardian section sport, got %v", got)
	}
	if got := gotQuery["from-date"]; len(got) != 1 || got[0] != "2026-08-25" {
		t.Fatalf("unexpected from-date: %v", got)
	}

	if len(articles) != 1 {
		t.Fatalf("expected 1 article (invalid entry skipped), got %d", len(articles))
	}

	article := articles[0]
	if article.Title != "Match report" {
		t.Fatalf("unexpected title: %s", article.Title)
	}
	if article.Provider != "Guardian" {
		t.Fatalf("unexpected provider: %s", article.Provider)
	}
	if article.Category != "Football" {
		t.Fatalf("unexpected category: %s", article.Category)
	}
	if article.Description != "A close game" || article.Author != "A. Reporter" {
		t.Fatalf("fields not mapped: %+v", article)
	}
	if article.ImageURL != "https://example.org/thumb.jpg" {
		t.Fatalf("thumbnail not mapped: %s", article.ImageURL)
	}
	want := time.Date(2026, time.August, 26, 10, 0, 0, 0, time.UTC)
	if !article.PublishedAt.Equal(want) {
		t.Fatalf("unexpected published date: %v", article.PublishedAt)
	}
	if len(article.Raw) == 0 {
		t.Fatalf("raw payload should be preserved")
	}
}

func TestGuardianFetchStatusError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusForbidden)
	}))
	defer server.Close()

	source := NewGuardianSource("secret", server.Client(), nil)
	source.baseURL = server.URL

	if _, err := source.Fetch(context.Background(), ports.FetchOptions{}); err == nil {
		t.Fatalf("expected error for non-200 status")
	}
}
