package usecase

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// SearchOptions tune pagination limits and cache lifetime.
type SearchOptions struct {
	DefaultPageSize int
	MaxPageSize     int
	CacheTTL        time.Duration
}

// SearchEngine serves the filtered, paginated read path with a best-effort
// page cache in front of storage.
type SearchEngine struct {
	store  ports.ArticleStore
	cache  ports.ResultCache
	opts   SearchOptions
	logger *slog.Logger
}

// NewSearchEngine wires storage and the optional cache.
func NewSearchEngine(store ports.ArticleStore, cache ports.ResultCache, opts SearchOptions, logger *slog.Logger) *SearchEngine {
	if opts.DefaultPageSize <= 0 {
		opts.DefaultPageSize = 20
	}
	if opts.MaxPageSize <= 0 {
		opts.MaxPageSize = 100
	}
	if opts.CacheTTL <= 0 {
		opts.CacheTTL = 5 * time.Minute
	}
	return &SearchEngine{store: store, cache: cache, opts: opts, logger: logger}
}

// Search returns one page of matches plus totals. A cache hit returns the
// previously computed page verbatim; cache trouble of any kind falls
// through to storage.
func (e *SearchEngine) Search(ctx context.Context, filter domain.SearchFilter, page, pageSize int) (*domain.SearchResult, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = e.opts.DefaultPageSize
	}
	if pageSize > e.opts.MaxPageSize {
		pageSize = e.opts.MaxPageSize
	}

	key := searchCacheKey(filter, page, pageSize)

	if e.cache != nil {
		if payload, ok := e.cache.Get(ctx, key); ok {
			var cached domain.SearchResult
			if err := json.Unmarshal(payload, &cached); err == nil {
				e.debug("search cache hit", "key", key)
				return &cached, nil
			}
			e.debug("search cache payload corrupt", "key", key)
		}
	}

	offset := (page - 1) * pageSize

	articles, err := e.store.Query(ctx, filter, offset, pageSize)
	if err != nil {
		return nil, fmt.Errorf("query articles: %w", err)
	}

	total, err := e.store.Count(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("count articles: %w", err)
	}

	if articles == nil {
		articles = []domain.StoredArticle{}
	}

	result := &domain.SearchResult{
		Articles:   articles,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages(total, pageSize),
	}

	if e.cache != nil {
		if payload, err := json.Marshal(result); err == nil {
			e.cache.Set(ctx, key, payload, e.opts.CacheTTL)
		}
	}

	return result, nil
}

// ArticleByID returns a single stored article or domain.ErrNotFound.
func (e *SearchEngine) ArticleByID(ctx context.Context, id int64) (*domain.StoredArticle, error) {
	return e.store.ByID(ctx, id)
}

func totalPages(total, pageSize int) int {
	if total == 0 {
		return 0
	}
	return (total + pageSize - 1) / pageSize
}

// searchCacheKey derives a deterministic key from the full filter plus
// pagination. SHA-256 over a length-prefixed field join keeps the key
// stable across processes and restarts, unlike language-level hashes,
// and keeps field boundaries unambiguous whatever the values contain.
func searchCacheKey(filter domain.SearchFilter, page, pageSize int) string {
	fields := []string{
		filter.Query,
		filter.Provider,
		filter.Category,
		formatBound(filter.From),
		formatBound(filter.To),
		strconv.Itoa(page),
		strconv.Itoa(pageSize),
	}

	var b strings.Builder
	for _, field := range fields {
		b.WriteString(strconv.Itoa(len(field)))
		b.WriteByte('|')
		b.WriteString(field)
	}

	sum := sha256.Sum256([]byte(b.String()))
	return "articles:search:" + hex.EncodeToString(sum[:])
}

func formatBound(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

func (e *SearchEngine) debug(msg string, args ...any) {
	if e.logger != nil {
		e.logger.Debug(msg, args...)
	}
}
