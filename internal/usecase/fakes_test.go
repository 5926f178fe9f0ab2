package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"NewsPulse/internal/domain"
	"NewsPulse/internal/ports"
)

// fakeSource serves a fixed batch, optionally failing its first N fetches.
type fakeSource struct {
	name     string
	articles []domain.Article
	failures int
	delay    time.Duration

	mu         sync.Mutex
	fetchCalls int
}

func (f *fakeSource) Name() string                  { return f.name }
func (f *fakeSource) RateLimitDelay() time.Duration { return f.delay }

func (f *fakeSource) Fetch(ctx context.Context, opts ports.FetchOptions) ([]domain.Article, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.fetchCalls++
	if f.failures > 0 {
		f.failures--
		return nil, fmt.Errorf("%s: connection refused", f.name)
	}
	return f.articles, nil
}

// fakeStore keeps rows in memory keyed by URL hash and records read-path
// traffic for cache assertions.
type fakeStore struct {
	mu     sync.Mutex
	rows   map[string]domain.StoredArticle
	nextID int64

	// Search plumbing.
	queryResult []domain.StoredArticle
	countResult int
	queryCalls  int

	// skipExistsCheck simulates the race where two runs both observe "not
	// found" before either inserts.
	skipExistsCheck bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{rows: map[string]domain.StoredArticle{}}
}

func (s *fakeStore) Exists(ctx context.Context, urlHash string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.skipExistsCheck {
		return false, nil
	}
	_, ok := s.rows[urlHash]
	return ok, nil
}

func (s *fakeStore) Insert(ctx context.Context, article domain.StoredArticle) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.rows[article.URLHash]; ok {
		return 0, domain.ErrDuplicate
	}
	s.nextID++
	article.ID = s.nextID
	s.rows[article.URLHash] = article
	return article.ID, nil
}

func (s *fakeStore) Query(ctx context.Context, filter domain.SearchFilter, offset, limit int) ([]domain.StoredArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.queryCalls++
	return s.queryResult, nil
}

func (s *fakeStore) Count(ctx context.Context, filter domain.SearchFilter) (int, error) {
	return s.countResult, nil
}

func (s *fakeStore) ByID(ctx context.Context, id int64) (*domain.StoredArticle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, row := range s.rows {
		if row.ID == id {
			return &row, nil
		}
	}
	return nil, domain.ErrNotFound
}

func (s *fakeStore) len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.rows)
}

// fakeCache is an in-memory ResultCache recording Set TTLs.
type fakeCache struct {
	mu      sync.Mutex
	entries map[string][]byte
	lastTTL time.Duration
	sets    int
}

func newFakeCache() *fakeCache {
	return &fakeCache{entries: map[string][]byte{}}
}

func (c *fakeCache) Get(ctx context.Context, key string) ([]byte, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	payload, ok := c.entries[key]
	return payload, ok
}

func (c *fakeCache) Set(ctx context.Context, key string, payload []byte, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = payload
	c.lastTTL = ttl
	c.sets++
}

func (c *fakeCache) Delete(ctx context.Context, key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}
