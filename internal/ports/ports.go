package ports

import (
	"context"
	"time"

	"NewsPulse/internal/domain"
)

// FetchOptions parameterizes a single provider fetch. Category is a hint:
// providers with their own taxonomy ignore it on output, providers without
// one use it as the category of every returned article.
type FetchOptions struct {
	Query    string
	Category string
	From     time.Time
	PageSize int
}

// NewsSource pulls articles from one upstream provider and normalizes them.
// Implementations own their endpoint, auth parameter, and page-size ceiling.
type NewsSource interface {
	Name() string
	Fetch(ctx context.Context, opts FetchOptions) ([]domain.Article, error)
	// RateLimitDelay is how long the orchestrator must pause after this
	// provider's batch before calling the next one.
	RateLimitDelay() time.Duration
}

// ArticleStore persists enriched articles and serves the filtered read path.
type ArticleStore interface {
	// Exists reports whether an article with this URL hash is already stored.
	Exists(ctx context.Context, urlHash string) (bool, error)
	// Insert stores the article and returns its surrogate id. A concurrent
	// duplicate insert returns domain.ErrDuplicate, never a second row.
	Insert(ctx context.Context, article domain.StoredArticle) (int64, error)
	// Query returns one page ordered by published_at DESC, id DESC.
	Query(ctx context.Context, filter domain.SearchFilter, offset, limit int) ([]domain.StoredArticle, error)
	// Count returns the total number of rows matching the filter.
	Count(ctx context.Context, filter domain.SearchFilter) (int, error)
	// ByID returns a single article or domain.ErrNotFound.
	ByID(ctx context.Context, id int64) (*domain.StoredArticle, error)
}

// ResultCache is a best-effort page cache. Implementations swallow backend
// failures: Get misses, Set and Delete become no-ops.
type ResultCache interface {
	Get(ctx context.Context, key string) ([]byte, bool)
	Set(ctx context.Context, key string, payload []byte, ttl time.Duration)
	Delete(ctx context.Context, key string)
}

// Scheduler controls when ingestion runs execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
